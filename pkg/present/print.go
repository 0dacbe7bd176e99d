package present

import (
	"tableflip.dev/lineup/pkg/conflict"
	"tableflip.dev/lineup/pkg/event"
	"tableflip.dev/lineup/pkg/timeutil"
)

// Card is a single performance in the printable schedule.
type Card struct {
	Time  string `json:"time"`
	Name  string `json:"name"`
	Stage string `json:"stage"`
	// Badge is the 1-based position inside a conflict block, 0 otherwise.
	Badge int `json:"badge,omitempty"`
}

// Entry is either a plain card or a block of conflicting cards.
type Entry struct {
	Conflict bool           `json:"conflict"`
	Color    conflict.Color `json:"color,omitempty"`
	// Start and Span describe the window of a conflict block: the start of
	// its first member and the minutes to its last.
	Start string `json:"start,omitempty"`
	Span  int    `json:"span,omitempty"`
	Cards []Card `json:"cards"`
}

// PrintDocument is the printable personal schedule.
type PrintDocument struct {
	Header  string  `json:"header"`
	Entries []Entry `json:"entries"`
}

// Conflicts returns the number of conflict blocks in the document.
func (d PrintDocument) Conflicts() int {
	n := 0
	for _, e := range d.Entries {
		if e.Conflict {
			n++
		}
	}
	return n
}

// BuildPrintDocument renders groups as a flat list of cards. Conflicting
// groups become one block whose cards are numbered from 1.
func BuildPrintDocument(groups []conflict.Group, header string) PrintDocument {
	doc := PrintDocument{
		Header:  header,
		Entries: make([]Entry, 0, len(groups)),
	}
	for _, g := range groups {
		if len(g.Events) == 1 {
			doc.Entries = append(doc.Entries, Entry{
				Cards: []Card{cardFor(g.Events[0], 0)},
			})
			continue
		}
		entry := Entry{
			Conflict: true,
			Color:    g.Color,
			Start:    timeutil.FormatClock(g.Start),
			Span:     g.Span(),
			Cards:    make([]Card, 0, len(g.Events)),
		}
		if entry.Color == "" {
			entry.Color = conflict.Palette[0]
		}
		for i, e := range g.Events {
			entry.Cards = append(entry.Cards, cardFor(e, i+1))
		}
		doc.Entries = append(doc.Entries, entry)
	}
	return doc
}

func cardFor(e event.Parsed, badge int) Card {
	return Card{
		Time:  e.Time,
		Name:  e.Name,
		Stage: e.Stage,
		Badge: badge,
	}
}
