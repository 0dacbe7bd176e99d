package app

import (
	"tableflip.dev/lineup/pkg/conflict"
	"tableflip.dev/lineup/pkg/event"
	"tableflip.dev/lineup/pkg/filter"
	"tableflip.dev/lineup/pkg/present"
)

// Status tells why a schedule has or has no content.
type Status string

const (
	StatusReady       Status = "ready"
	StatusNoFavorites Status = "no-favorites"
	StatusNoneOnPage  Status = "none-on-page"
	StatusDisabled    Status = "disabled"
)

var statusMessages = map[Status]string{
	StatusNoFavorites: "noFavorites",
	StatusNoneOnPage:  "noneOnPage",
	StatusDisabled:    "helperDisabled",
}

// Schedule is the conflict-annotated personal schedule.
type Schedule struct {
	Status  Status           `json:"status"`
	Message string           `json:"message,omitempty"`
	Timeout int              `json:"timeout"`
	Mode    conflict.Mode    `json:"mode"`
	Events  []event.Event    `json:"events"`
	Groups  []conflict.Group `json:"groups"`
	Pairs   []conflict.Pair  `json:"pairs"`
}

// Conflicts returns the number of conflicting groups.
func (s Schedule) Conflicts() int {
	return conflict.Conflicting(s.Groups)
}

// Schedule builds the schedule from the favorites present on the page. The
// groups are computed once per generation.
func (h *Helper) Schedule() Schedule {
	s := Schedule{
		Timeout: h.timeout,
		Mode:    h.mode,
		Events:  make([]event.Event, 0),
		Groups:  make([]conflict.Group, 0),
		Pairs:   make([]conflict.Pair, 0),
	}
	switch {
	case !h.settings.ScheduleHelper:
		s.Status = StatusDisabled
	case len(h.favorites) == 0:
		s.Status = StatusNoFavorites
	default:
		s.Events = filter.SchedulingSet(h.favorites, h.snapshot.Events)
		if len(s.Events) == 0 {
			s.Status = StatusNoneOnPage
		}
	}
	if s.Status != "" {
		s.Message = h.catalog.Get(statusMessages[s.Status])
		return s
	}

	parsed := event.ParseAll(s.Events)
	s.Status = StatusReady
	s.Groups = h.cache.Get(h.generation, func() []conflict.Group {
		return conflict.Groups(parsed, h.timeout, conflict.WithMode(h.mode))
	})
	if conflict.Any(parsed, h.timeout) {
		s.Pairs = conflict.Pairs(parsed, h.timeout)
	}
	return s
}

// Rows returns the schedule table rows.
func (h *Helper) Rows() []present.DisplayRow {
	return present.BuildRows(h.Schedule().Groups)
}

// PrintDocument returns the printable schedule headed with the active day.
func (h *Helper) PrintDocument() (present.PrintDocument, error) {
	s := h.Schedule()
	if s.Status != StatusReady || len(s.Groups) == 0 {
		return present.PrintDocument{}, ErrNothingToPrint
	}
	return present.BuildPrintDocument(s.Groups, h.Header()), nil
}

// Header is the title of the personal schedule.
func (h *Helper) Header() string {
	if day := h.snapshot.Day; day != "" {
		return h.catalog.Get("yourSchedule", day)
	}
	return h.catalog.Get("schedule")
}
