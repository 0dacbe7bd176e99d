package event

import "tableflip.dev/lineup/pkg/timeutil"

// Parsed is an Event with its start time resolved to minutes since midnight.
type Parsed struct {
	Event
	Minutes int `json:"minutes"`
}

// Parse resolves the start time of e. It reports false when the time label
// carries no clock value; such events take no part in scheduling.
func Parse(e Event) (Parsed, bool) {
	m, ok := timeutil.ParseClock(e.Time)
	if !ok {
		return Parsed{}, false
	}
	return Parsed{Event: e, Minutes: m}, true
}

// ParseAll parses events in order and drops the ones without a clock value.
func ParseAll(events []Event) []Parsed {
	out := make([]Parsed, 0, len(events))
	for _, e := range events {
		if p, ok := Parse(e); ok {
			out = append(out, p)
		}
	}
	return out
}
