package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stompctl.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadClientConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
prompt = ">> "
history_file = "/tmp/history"
history_limit = 50
no_color = true
`)
	cfg, err := loadClientConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Prompt != ">> " {
		t.Fatalf("unexpected prompt: %q", cfg.Prompt)
	}
	if cfg.HistoryFile != "/tmp/history" {
		t.Fatalf("unexpected history file: %q", cfg.HistoryFile)
	}
	if cfg.HistoryLimit != 50 {
		t.Fatalf("unexpected history limit: %d", cfg.HistoryLimit)
	}
	if !cfg.NoColor {
		t.Fatal("expected no_color enabled")
	}
}

func TestLoadClientConfigDefaults(t *testing.T) {
	cfg, err := loadClientConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	def := defaultClientConfig()
	if cfg.Prompt != def.Prompt || cfg.HistoryLimit != def.HistoryLimit {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.NoColor {
		t.Fatal("no_color should default to false")
	}
}

func TestLoadClientConfigMissingFile(t *testing.T) {
	if _, err := loadClientConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestSplitHostPort(t *testing.T) {
	host, port, err := splitHostPort("stomp.example.com:7777")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if host != "stomp.example.com" || port != 7777 {
		t.Fatalf("unexpected host/port: %q %d", host, port)
	}

	for _, bad := range []string{"nohost", "host:", "host:notaport", "host:-1"} {
		if _, _, err := splitHostPort(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
