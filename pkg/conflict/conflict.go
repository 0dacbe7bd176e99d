// Package conflict groups favorited performances whose start times fall close
// enough together that they cannot all be watched.
package conflict

import (
	"fmt"
	"sort"
	"strings"

	"tableflip.dev/lineup/pkg/event"
)

// Color identifies the visual tag given to a conflicting group.
type Color string

const (
	Blue      Color = "blue"
	Purple    Color = "purple"
	Yellow    Color = "yellow"
	Brown     Color = "brown"
	Black     Color = "black"
	NeonGreen Color = "neongreen"
)

// Palette is the fixed cycle of colors handed out to conflicting groups in
// discovery order.
var Palette = []Color{Blue, Purple, Yellow, Brown, Black, NeonGreen}

// ColorAt returns the palette color for the n-th (0-based) conflicting group.
func ColorAt(n int) Color {
	if n < 0 {
		n = -n
	}
	return Palette[n%len(Palette)]
}

// Mode selects how a group's window is anchored.
type Mode string

const (
	// StartAnchored measures every candidate against the first member of the
	// group. Members of one group can therefore be further apart than the
	// timeout from each other but never from the group start.
	StartAnchored Mode = "start"
	// ChainAnchored measures every candidate against the previous member, so
	// a chain of close events forms one group of arbitrary span.
	ChainAnchored Mode = "chain"
)

// ParseMode maps a user supplied mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "start", "start-anchored":
		return StartAnchored, nil
	case "chain", "chain-anchored":
		return ChainAnchored, nil
	default:
		return "", fmt.Errorf("unknown grouping mode %q (expected start or chain)", s)
	}
}

// Group is a maximal run of time-sorted events sharing one window.
type Group struct {
	Events      []event.Parsed `json:"events"`
	Start       int            `json:"start"`
	HasConflict bool           `json:"hasConflict"`
	Color       Color          `json:"color,omitempty"`
}

// Len is the number of events in the group.
func (g Group) Len() int {
	return len(g.Events)
}

// Span is the distance in minutes between the first and last member.
func (g Group) Span() int {
	if len(g.Events) == 0 {
		return 0
	}
	return g.Events[len(g.Events)-1].Minutes - g.Events[0].Minutes
}

type options struct {
	mode Mode
}

// Option customizes grouping.
type Option func(*options)

// WithMode selects the window anchoring. The default is StartAnchored.
func WithMode(m Mode) Option {
	return func(o *options) {
		if m != "" {
			o.mode = m
		}
	}
}

// Sorted returns a copy of events stably sorted by start minute. Events that
// start at the same minute keep their input order.
func Sorted(events []event.Parsed) []event.Parsed {
	sorted := make([]event.Parsed, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Minutes < sorted[j].Minutes
	})
	return sorted
}

// Groups partitions events into conflict groups using a greedy forward scan
// over the time-sorted input. With the default start-anchored mode an event
// joins the open group only while event.Minutes - group.Start <= timeout.
// Groups with more than one member are flagged as conflicts and colored from
// Palette in the order they are found.
func Groups(events []event.Parsed, timeout int, opts ...Option) []Group {
	o := options{mode: StartAnchored}
	for _, opt := range opts {
		opt(&o)
	}

	sorted := Sorted(events)
	groups := make([]Group, 0)
	var current []event.Parsed
	anchor := 0

	closeGroup := func() {
		if len(current) == 0 {
			return
		}
		groups = append(groups, Group{
			Events:      current,
			Start:       current[0].Minutes,
			HasConflict: len(current) > 1,
		})
		current = nil
	}

	for _, e := range sorted {
		if len(current) == 0 {
			current = []event.Parsed{e}
			anchor = e.Minutes
			continue
		}
		if e.Minutes-anchor <= timeout {
			current = append(current, e)
			if o.mode == ChainAnchored {
				anchor = e.Minutes
			}
			continue
		}
		closeGroup()
		current = []event.Parsed{e}
		anchor = e.Minutes
	}
	closeGroup()

	colorIndex := 0
	for i := range groups {
		if groups[i].HasConflict {
			groups[i].Color = ColorAt(colorIndex)
			colorIndex++
		}
	}
	return groups
}

// Conflicting returns the number of groups flagged as conflicts.
func Conflicting(groups []Group) int {
	n := 0
	for _, g := range groups {
		if g.HasConflict {
			n++
		}
	}
	return n
}

// Flatten returns the events of all groups in group order.
func Flatten(groups []Group) []event.Parsed {
	out := make([]event.Parsed, 0)
	for _, g := range groups {
		out = append(out, g.Events...)
	}
	return out
}

// ColorByID maps the ID of every event in a conflicting group to the group's
// color. Non-conflicting events are absent.
func ColorByID(groups []Group) map[string]Color {
	out := make(map[string]Color)
	for _, g := range groups {
		if !g.HasConflict {
			continue
		}
		for _, e := range g.Events {
			out[e.ID] = g.Color
		}
	}
	return out
}
