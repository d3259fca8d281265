package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type clientConfig struct {
	Prompt       string
	HistoryFile  string
	HistoryLimit int
	NoColor      bool
}

type fileConfig struct {
	Prompt       string `toml:"prompt"`
	HistoryFile  string `toml:"history_file"`
	HistoryLimit int    `toml:"history_limit"`
	NoColor      bool   `toml:"no_color"`
}

func defaultClientConfig() clientConfig {
	history := ".stompctl_history"
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, history)
	}
	return clientConfig{
		Prompt:       "stompctl> ",
		HistoryFile:  history,
		HistoryLimit: 500,
	}
}

func loadClientConfig(path string) (clientConfig, error) {
	cfg := defaultClientConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return clientConfig{}, fmt.Errorf("load client config: %w", err)
	}

	if meta.IsDefined("prompt") {
		cfg.Prompt = raw.Prompt
	}
	if meta.IsDefined("history_file") {
		if v := strings.TrimSpace(raw.HistoryFile); v != "" {
			cfg.HistoryFile = v
		}
	}
	if meta.IsDefined("history_limit") && raw.HistoryLimit > 0 {
		cfg.HistoryLimit = raw.HistoryLimit
	}
	if meta.IsDefined("no_color") {
		cfg.NoColor = raw.NoColor
	}
	return cfg, nil
}
