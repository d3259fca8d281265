package session

import "github.com/stompctl/stompctl/internal/events"

type ledgerKey struct {
	channel  string
	reporter string
}

// EventLedger stores the per-(channel, reporter) event history in arrival
// order. Sequences are append-only, never reordered or deduplicated. No
// internal locking; the engine's mutex guards every access.
type EventLedger struct {
	entries map[ledgerKey][]events.Event
}

func NewEventLedger() *EventLedger {
	return &EventLedger{entries: make(map[ledgerKey][]events.Event)}
}

// Record appends one event to the sequence for (channel, reporter),
// creating the entry when absent.
func (l *EventLedger) Record(channel, reporter string, ev events.Event) {
	key := ledgerKey{channel: channel, reporter: reporter}
	l.entries[key] = append(l.entries[key], ev)
}

// Summary is the aggregated view of one ledger entry: last-write-wins
// stat mappings plus the full ordered event sequence.
type Summary struct {
	TeamA      string
	TeamB      string
	General    map[string]string
	TeamAStats map[string]string
	TeamBStats map[string]string
	Events     []events.Event
}

// Aggregate folds the event sequence for (channel, reporter) in arrival
// order. For every stat key the value from the last event that set it
// wins. Team names come from the first event in the sequence.
func (l *EventLedger) Aggregate(channel, reporter string) (Summary, bool) {
	seq, ok := l.entries[ledgerKey{channel: channel, reporter: reporter}]
	if !ok || len(seq) == 0 {
		return Summary{}, false
	}

	sum := Summary{
		TeamA:      seq[0].TeamA,
		TeamB:      seq[0].TeamB,
		General:    make(map[string]string),
		TeamAStats: make(map[string]string),
		TeamBStats: make(map[string]string),
		Events:     seq,
	}
	for _, ev := range seq {
		fold(sum.General, ev.GameUpdates)
		fold(sum.TeamAStats, ev.TeamAUpdates)
		fold(sum.TeamBStats, ev.TeamBUpdates)
	}
	return sum, true
}

func fold(dst map[string]string, updates []events.Update) {
	for _, u := range updates {
		dst[u.Key] = u.Value
	}
}
