// Package filter narrows the events shown from a schedule page and derives
// the set of favorites that takes part in conflict detection.
package filter

import (
	"tableflip.dev/lineup/pkg/event"
)

// State holds the user's list filters. An empty SelectedStages lets every
// stage through.
type State struct {
	ShowFavoritesOnly bool     `json:"showFavoritesOnly"`
	SelectedStages    []string `json:"selectedStages,omitempty"`
}

// SelectAll selects every stage in stages.
func (s State) SelectAll(stages []string) State {
	s.SelectedStages = append([]string(nil), stages...)
	return s
}

// StagePasses reports whether stage passes the stage filter.
func (s State) StagePasses(stage string) bool {
	if len(s.SelectedStages) == 0 {
		return true
	}
	for _, sel := range s.SelectedStages {
		if sel == stage {
			return true
		}
	}
	return false
}

// Visible returns the page events that pass st, in page order. With
// ShowFavoritesOnly only events whose ID is among favorites pass.
func Visible(all, favorites []event.Event, st State) []event.Event {
	fav := ids(favorites)
	out := make([]event.Event, 0, len(all))
	for _, e := range all {
		if st.ShowFavoritesOnly {
			if _, ok := fav[e.ID]; !ok {
				continue
			}
		}
		if !st.StagePasses(e.Stage) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// SchedulingSet returns the favorites, in favorites order, whose ID is
// currently present on the page. It ignores the list filters: a schedule
// always covers every favorited event on the page.
func SchedulingSet(favorites, all []event.Event) []event.Event {
	onPage := ids(all)
	out := make([]event.Event, 0, len(favorites))
	for _, f := range favorites {
		if _, ok := onPage[f.ID]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Stages returns the distinct stage names of events in first-seen order.
func Stages(all []event.Event) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, e := range all {
		if _, ok := seen[e.Stage]; ok {
			continue
		}
		seen[e.Stage] = struct{}{}
		out = append(out, e.Stage)
	}
	return out
}

// HiddenStages returns the stages of all that have no event left in visible.
func HiddenStages(all, visible []event.Event) []string {
	shown := make(map[string]struct{})
	for _, e := range visible {
		shown[e.Stage] = struct{}{}
	}
	out := make([]string, 0)
	for _, stage := range Stages(all) {
		if _, ok := shown[stage]; !ok {
			out = append(out, stage)
		}
	}
	return out
}

func ids(events []event.Event) map[string]struct{} {
	out := make(map[string]struct{}, len(events))
	for _, e := range events {
		out[e.ID] = struct{}{}
	}
	return out
}
