package events

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrNoReporter = errors.New("events: no user field in body")
	ErrBadBody    = errors.New("events: malformed event body")
)

const (
	bodyKeyUser        = "user"
	bodyKeyTeamA       = "team a"
	bodyKeyTeamB       = "team b"
	bodyKeyEventName   = "event name"
	bodyKeyTime        = "time"
	sectionGame        = "general game updates:"
	sectionTeamA       = "team a updates:"
	sectionTeamB       = "team b updates:"
	sectionDescription = "description:"
)

// EncodeBody renders one event as a SEND frame body. Line order is fixed:
// reporter, team names, event name, time, the three update sections, then
// the free-text description.
func EncodeBody(user string, ev Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%s\n", bodyKeyUser, user)
	fmt.Fprintf(&b, "%s:%s\n", bodyKeyTeamA, ev.TeamA)
	fmt.Fprintf(&b, "%s:%s\n", bodyKeyTeamB, ev.TeamB)
	fmt.Fprintf(&b, "%s:%s\n", bodyKeyEventName, ev.Name)
	fmt.Fprintf(&b, "%s:%d\n", bodyKeyTime, ev.Time)
	b.WriteString(sectionGame + "\n")
	writeUpdates(&b, ev.GameUpdates)
	b.WriteString(sectionTeamA + "\n")
	writeUpdates(&b, ev.TeamAUpdates)
	b.WriteString(sectionTeamB + "\n")
	writeUpdates(&b, ev.TeamBUpdates)
	b.WriteString(sectionDescription + "\n")
	b.WriteString(ev.Description)
	return b.String()
}

func writeUpdates(b *strings.Builder, updates []Update) {
	for _, u := range updates {
		fmt.Fprintf(b, "%s:%s\n", u.Key, u.Value)
	}
}

// ReporterFromBody returns the reporter named by the first "user:" line.
func ReporterFromBody(body string) (string, bool) {
	for _, line := range strings.Split(body, "\n") {
		if rest, ok := strings.CutPrefix(line, bodyKeyUser+":"); ok {
			return strings.TrimRight(rest, "\r\n "), true
		}
	}
	return "", false
}

// ParseBody is the inverse of EncodeBody, used on inbound MESSAGE frames.
// Update lines are kept in the order they appear. A body without a user
// line is rejected as malformed.
func ParseBody(body string) (Event, error) {
	if _, ok := ReporterFromBody(body); !ok {
		return Event{}, ErrNoReporter
	}

	var ev Event
	lines := strings.Split(body, "\n")
	section := ""
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		switch line {
		case sectionGame, sectionTeamA, sectionTeamB:
			section = line
			continue
		case sectionDescription:
			ev.Description = strings.Join(lines[i+1:], "\n")
			return ev, nil
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		switch section {
		case sectionGame:
			ev.GameUpdates = append(ev.GameUpdates, Update{Key: key, Value: value})
		case sectionTeamA:
			ev.TeamAUpdates = append(ev.TeamAUpdates, Update{Key: key, Value: value})
		case sectionTeamB:
			ev.TeamBUpdates = append(ev.TeamBUpdates, Update{Key: key, Value: value})
		default:
			switch key {
			case bodyKeyTeamA:
				ev.TeamA = value
			case bodyKeyTeamB:
				ev.TeamB = value
			case bodyKeyEventName:
				ev.Name = value
			case bodyKeyTime:
				n, err := strconv.Atoi(strings.TrimSpace(value))
				if err != nil {
					return Event{}, fmt.Errorf("%w: bad time %q", ErrBadBody, value)
				}
				ev.Time = n
			}
		}
	}
	return ev, nil
}
