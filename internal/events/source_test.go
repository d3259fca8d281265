package events

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleReport = `{
	"team a": "Germany",
	"team b": "Japan",
	"events": [
		{
			"event name": "kickoff",
			"time": 0,
			"general game updates": {"active": true, "before halftime": true},
			"team a updates": {"goals": 0, "possession": "60%"},
			"team b updates": {"goals": 0},
			"description": "The game has started."
		},
		{
			"event name": "goal",
			"time": 32,
			"general game updates": {},
			"team a updates": {"goals": 1},
			"team b updates": {},
			"description": "Germany scores."
		}
	]
}`

func writeReport(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write report: %v", err)
	}
	return path
}

func TestLoadReport(t *testing.T) {
	rep, err := FileSource{}.LoadReport(writeReport(t, sampleReport))
	if err != nil {
		t.Fatalf("load report: %v", err)
	}
	if rep.TeamA != "Germany" || rep.TeamB != "Japan" {
		t.Fatalf("unexpected teams: %q vs %q", rep.TeamA, rep.TeamB)
	}
	if rep.Channel() != "Germany_Japan" {
		t.Fatalf("unexpected channel: %q", rep.Channel())
	}
	if len(rep.Events) != 2 {
		t.Fatalf("unexpected event count: %d", len(rep.Events))
	}

	first := rep.Events[0]
	if first.Name != "kickoff" || first.Time != 0 {
		t.Fatalf("unexpected first event: %+v", first)
	}
	if first.TeamA != "Germany" || first.TeamB != "Japan" {
		t.Fatalf("team names not stamped on event: %+v", first)
	}
	// Update keys are sorted at load time.
	if len(first.GameUpdates) != 2 || first.GameUpdates[0].Key != "active" || first.GameUpdates[1].Key != "before halftime" {
		t.Fatalf("unexpected game updates: %+v", first.GameUpdates)
	}
	if first.GameUpdates[0].Value != "true" {
		t.Fatalf("bool not flattened: %+v", first.GameUpdates[0])
	}
	if len(first.TeamAUpdates) != 2 || first.TeamAUpdates[0].Key != "goals" || first.TeamAUpdates[0].Value != "0" {
		t.Fatalf("unexpected team a updates: %+v", first.TeamAUpdates)
	}

	second := rep.Events[1]
	if second.Time != 32 || len(second.GameUpdates) != 0 {
		t.Fatalf("unexpected second event: %+v", second)
	}
	if len(second.TeamAUpdates) != 1 || second.TeamAUpdates[0].Value != "1" {
		t.Fatalf("number not kept literal: %+v", second.TeamAUpdates)
	}
}

func TestLoadReportMissingFile(t *testing.T) {
	if _, err := (FileSource{}).LoadReport(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadReportMalformed(t *testing.T) {
	_, err := FileSource{}.LoadReport(writeReport(t, "{not json"))
	if !errors.Is(err, ErrBadReport) {
		t.Fatalf("expected ErrBadReport, got %v", err)
	}
}

func TestLoadReportMissingTeams(t *testing.T) {
	_, err := FileSource{}.LoadReport(writeReport(t, `{"events": []}`))
	if !errors.Is(err, ErrBadReport) {
		t.Fatalf("expected ErrBadReport, got %v", err)
	}
}
