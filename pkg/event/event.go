// Package event defines the performance records extracted from a festival
// schedule page and persisted as favorites.
package event

import (
	"strings"
	"unicode"
)

// Event is one scheduled performance. The JSON shape matches the persisted
// favorites list.
type Event struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Time     string `json:"time"`
	Stage    string `json:"stage"`
	Link     string `json:"link,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// New builds an Event and derives its ID from name, time and stage.
func New(name, time, stage string) Event {
	return Event{
		ID:    GenerateID(name, time, stage),
		Name:  name,
		Time:  time,
		Stage: stage,
	}
}

// WithMeta returns a copy of e carrying the display-only link and image.
func (e Event) WithMeta(link, imageURL string) Event {
	e.Link = link
	e.ImageURL = imageURL
	return e
}

// GenerateID joins name, time and stage, collapses every run of characters
// that are not letters or digits into a single underscore, and trims
// underscores from both ends.
func GenerateID(name, time, stage string) string {
	raw := name + "_" + time + "_" + stage

	var b strings.Builder
	b.Grow(len(raw))
	pending := false
	for _, r := range raw {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

// Normalize recomputes the ID from the identifying fields. Records loaded from
// storage may predate the current ID rules or be hand edited.
func (e Event) Normalize() Event {
	e.ID = GenerateID(e.Name, e.Time, e.Stage)
	return e
}

// Title is the display label used by pickers and logs.
func (e Event) Title() string {
	return e.Time + " " + e.Name + " @ " + e.Stage
}

// Index maps event IDs to their position in events. The first occurrence
// wins when IDs repeat.
func Index(events []Event) map[string]int {
	idx := make(map[string]int, len(events))
	for i, e := range events {
		if _, ok := idx[e.ID]; !ok {
			idx[e.ID] = i
		}
	}
	return idx
}

// Contains reports whether an event with the given ID is in events.
func Contains(events []Event, id string) bool {
	for _, e := range events {
		if e.ID == id {
			return true
		}
	}
	return false
}
