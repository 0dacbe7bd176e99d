// Package present turns conflict groups into display records for the
// schedule table and the printable schedule.
package present

import (
	"tableflip.dev/lineup/pkg/conflict"
	"tableflip.dev/lineup/pkg/event"
)

// DisplayRow is one line of the schedule table.
type DisplayRow struct {
	Event      event.Parsed   `json:"event"`
	IsConflict bool           `json:"isConflict"`
	Color      conflict.Color `json:"color,omitempty"`
	// GroupSize is set on the first row of a conflicting group to the number
	// of rows the group spans, and is zero everywhere else.
	GroupSize int `json:"groupSize,omitempty"`
}

// BuildRows flattens groups into table rows in group order.
func BuildRows(groups []conflict.Group) []DisplayRow {
	rows := make([]DisplayRow, 0)
	for _, g := range groups {
		if len(g.Events) == 1 {
			rows = append(rows, DisplayRow{Event: g.Events[0]})
			continue
		}
		for i, e := range g.Events {
			row := DisplayRow{
				Event:      e,
				IsConflict: true,
				Color:      g.Color,
			}
			if i == 0 {
				row.GroupSize = len(g.Events)
			}
			rows = append(rows, row)
		}
	}
	return rows
}
