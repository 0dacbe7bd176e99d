package printers

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/lineup/pkg/conflict"
	"tableflip.dev/lineup/pkg/event"
	"tableflip.dev/lineup/pkg/i18n"
	"tableflip.dev/lineup/pkg/present"
	"tableflip.dev/lineup/pkg/timeutil"
)

type PrettyPrint struct {
	Out     io.Writer
	Catalog *i18n.Catalog
	ShowID  bool
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) msg(key string, subs ...string) string {
	if pp.Catalog == nil {
		pp.Catalog = i18n.MustLoad(i18n.DefaultLocale)
	}
	return pp.Catalog.Get(key, subs...)
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

// Status prints an empty-state or informational line.
func (pp *PrettyPrint) Status(message string) {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprintf(pp.out(), " %s\n\n", message)
}

// Notices prints transient warnings.
func (pp *PrettyPrint) Notices(notices []string) {
	w := color.New(color.FgYellow)
	for _, n := range notices {
		_, _ = w.Fprintf(pp.out(), "! %s\n", n)
	}
}

// Schedule prints the schedule table. Rows of a conflicting group are tinted
// with the group color and joined by a bracket in the first column.
func (pp *PrettyPrint) Schedule(rows []present.DisplayRow) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{"", bold.Sprint(pp.msg("time")), bold.Sprint(pp.msg("artist")), bold.Sprint(pp.msg("stage"))}
	if pp.ShowID {
		header = append(header, bold.Sprint("ID"))
	}
	tbl.AddRow(header...)

	remaining := 0
	for _, r := range rows {
		c := color.New()
		mark := " "
		if r.IsConflict {
			c = colorFor(r.Color)
			switch {
			case r.GroupSize > 0:
				mark = "┌"
				remaining = r.GroupSize - 1
			case remaining == 1:
				mark = "└"
				remaining--
			default:
				mark = "│"
				remaining--
			}
		}
		cells := []interface{}{c.Sprint(mark), c.Sprint(r.Event.Time), c.Sprint(r.Event.Name), r.Event.Stage}
		if pp.ShowID {
			cells = append(cells, color.New(color.Faint).Sprint(r.Event.ID))
		}
		tbl.AddRow(cells...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Events prints the page events by stage, starring favorites. Events found
// in colors belong to a conflict and are tinted with its color.
func (pp *PrettyPrint) Events(events []event.Event, isFavorite func(id string) bool, colors map[string]conflict.Color) {
	if len(events) == 0 {
		pp.Status(pp.msg("noEvents"))
		return
	}
	star := color.New(color.FgHiYellow)
	stage := color.New(color.Bold, color.Underline)

	tbl := uitable.New()
	tbl.Separator = "  "
	current := ""
	for i, e := range events {
		if i == 0 || e.Stage != current {
			if i > 0 {
				tbl.AddRow("")
			}
			tbl.AddRow("", stage.Sprint(e.Stage))
			current = e.Stage
		}
		mark := " "
		if isFavorite != nil && isFavorite(e.ID) {
			mark = star.Sprint("★")
		}
		tint := color.New()
		if c, ok := colors[e.ID]; ok {
			tint = colorFor(c)
		}
		cells := []interface{}{mark, tint.Sprint(e.Time), tint.Sprint(e.Name)}
		if pp.ShowID {
			cells = append(cells, color.New(color.Faint).Sprint(e.ID))
		}
		tbl.AddRow(cells...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Summary prints the conflict count and the active timeout below a schedule.
func (pp *PrettyPrint) Summary(conflicts, timeout int) {
	if conflicts > 0 {
		r := color.New(color.FgRed, color.Bold)
		_, _ = r.Fprintln(pp.out(), pp.msg("conflictsFound", fmt.Sprint(conflicts)))
	}
	f := color.New(color.Faint)
	_, _ = f.Fprintf(pp.out(), "%s: %s\n", pp.msg("conflictTimeout"), timeutil.FormatTimeout(timeout))
}
