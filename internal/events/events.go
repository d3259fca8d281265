// Package events owns the game-event model: loading report files from
// disk and encoding/decoding events as SEND/MESSAGE frame bodies.
package events

// Update is one key/value stat entry. Updates are kept ordered so the
// frame body line order is deterministic.
type Update struct {
	Key   string
	Value string
}

// Event is one game event as reported by a client.
type Event struct {
	TeamA        string
	TeamB        string
	Name         string
	Time         int
	GameUpdates  []Update
	TeamAUpdates []Update
	TeamBUpdates []Update
	Description  string
}

// Report is the parsed contents of one event report file.
type Report struct {
	TeamA  string
	TeamB  string
	Events []Event
}

// Channel returns the game channel name the report belongs to.
func (r Report) Channel() string {
	return r.TeamA + "_" + r.TeamB
}
