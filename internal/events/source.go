package events

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

var ErrBadReport = errors.New("events: malformed report file")

type reportFile struct {
	TeamA  string      `json:"team a"`
	TeamB  string      `json:"team b"`
	Events []eventFile `json:"events"`
}

type eventFile struct {
	Name         string         `json:"event name"`
	Time         int            `json:"time"`
	GameUpdates  map[string]any `json:"general game updates"`
	TeamAUpdates map[string]any `json:"team a updates"`
	TeamBUpdates map[string]any `json:"team b updates"`
	Description  string         `json:"description"`
}

// FileSource loads event reports from JSON files on disk.
type FileSource struct{}

// LoadReport parses one report file into team names plus the ordered
// event sequence. Update mappings are flattened to string values and
// sorted by key, which pins the body line order for every send.
func (FileSource) LoadReport(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("events: read report (%s): %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw reportFile
	if err := dec.Decode(&raw); err != nil {
		return Report{}, fmt.Errorf("%w: %s: %v", ErrBadReport, path, err)
	}
	if raw.TeamA == "" || raw.TeamB == "" {
		return Report{}, fmt.Errorf("%w: %s: missing team names", ErrBadReport, path)
	}

	out := Report{TeamA: raw.TeamA, TeamB: raw.TeamB}
	for _, ev := range raw.Events {
		out.Events = append(out.Events, Event{
			TeamA:        raw.TeamA,
			TeamB:        raw.TeamB,
			Name:         ev.Name,
			Time:         ev.Time,
			GameUpdates:  sortedUpdates(ev.GameUpdates),
			TeamAUpdates: sortedUpdates(ev.TeamAUpdates),
			TeamBUpdates: sortedUpdates(ev.TeamBUpdates),
			Description:  ev.Description,
		})
	}
	return out, nil
}

func sortedUpdates(in map[string]any) []Update {
	if len(in) == 0 {
		return nil
	}
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Update, 0, len(keys))
	for _, k := range keys {
		out = append(out, Update{Key: k, Value: formatValue(in[k])})
	}
	return out
}

// formatValue renders a JSON scalar the way it appeared in the source
// file; numbers keep their literal form via json.Number.
func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}
