package session

import (
	"fmt"
	"io"
	"sort"
)

// RenderSummary writes the fixed summary report layout: the team header,
// the three aggregated stat sections, then every event in arrival order.
// Stat keys are emitted in sorted order so repeated renders of the same
// ledger state are byte-identical.
func RenderSummary(w io.Writer, sum Summary) error {
	if _, err := fmt.Fprintf(w, "%s vs %s\n", sum.TeamA, sum.TeamB); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Game stats:"); err != nil {
		return err
	}
	if err := renderStats(w, "General stats:", sum.General); err != nil {
		return err
	}
	if err := renderStats(w, sum.TeamA+" stats:", sum.TeamAStats); err != nil {
		return err
	}
	if err := renderStats(w, sum.TeamB+" stats:", sum.TeamBStats); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Game event reports:"); err != nil {
		return err
	}
	for _, ev := range sum.Events {
		if _, err := fmt.Fprintf(w, "%d - %s:\n\n%s\n\n", ev.Time, ev.Name, ev.Description); err != nil {
			return err
		}
	}
	return nil
}

func renderStats(w io.Writer, title string, stats map[string]string) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s: %s\n", k, stats[k]); err != nil {
			return err
		}
	}
	return nil
}
