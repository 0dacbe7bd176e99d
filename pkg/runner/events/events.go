// Package events lists the performances found on the schedule page.
package events

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/lineup/pkg/app"
	"tableflip.dev/lineup/pkg/conflict"
	"tableflip.dev/lineup/pkg/event"
	"tableflip.dev/lineup/pkg/printers"
)

// Events prints the page events that pass the helper's filters.
type Events struct {
	Helper *app.Helper
	Out    io.Writer
	Format printers.Format
	ShowID bool
	// Stages prints the stage names instead of the events.
	Stages bool
}

// Listing is the structured form of the event list.
type Listing struct {
	Day          string        `json:"day,omitempty"`
	Stages       []string      `json:"stages"`
	HiddenStages []string      `json:"hiddenStages"`
	Favorites    []string      `json:"favorites"`
	Events       []event.Event `json:"events"`
	// Conflicts maps each conflicting favorite to its group color.
	Conflicts map[string]conflict.Color `json:"conflicts"`
}

// Do renders the list.
func (e *Events) Do(ctx context.Context) error {
	if e.Helper == nil {
		return errors.New("events: no helper configured")
	}
	h := e.Helper
	pp := &printers.PrettyPrint{Out: e.Out, Catalog: h.Catalog(), ShowID: e.ShowID}
	pp.Notices(h.Notices())

	if e.Stages {
		if e.Format.Structured() {
			return printers.Write(e.Out, e.Format, h.Stages())
		}
		pp.Title(h.Catalog().Get("allStages"))
		for _, s := range h.Stages() {
			pp.Status(s)
		}
		return nil
	}

	visible := h.Visible()
	colors := conflict.ColorByID(h.Schedule().Groups)
	if e.Format.Structured() {
		favs := make([]string, 0)
		for _, v := range visible {
			if h.IsFavorite(v.ID) {
				favs = append(favs, v.ID)
			}
		}
		return printers.Write(e.Out, e.Format, Listing{
			Day:          h.Snapshot().Day,
			Stages:       h.Stages(),
			HiddenStages: h.HiddenStages(),
			Favorites:    favs,
			Events:       visible,
			Conflicts:    colors,
		})
	}

	title := h.Catalog().Get("schedule")
	if day := h.Snapshot().Day; day != "" {
		title += " " + day
	}
	pp.Title(title)
	pp.Events(visible, h.IsFavorite, colors)
	return nil
}
