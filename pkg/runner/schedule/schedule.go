// Package schedule renders the conflict-annotated personal schedule.
package schedule

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/lineup/pkg/app"
	"tableflip.dev/lineup/pkg/printers"
)

// Schedule prints the schedule built from the favorites on the page.
type Schedule struct {
	Helper *app.Helper
	Out    io.Writer
	Format printers.Format
	// Print renders the printable card layout instead of the table.
	Print  bool
	ShowID bool
}

// Do renders the schedule.
func (s *Schedule) Do(ctx context.Context) error {
	if s.Helper == nil {
		return errors.New("schedule: no helper configured")
	}
	pp := &printers.PrettyPrint{Out: s.Out, Catalog: s.Helper.Catalog(), ShowID: s.ShowID}
	pp.Notices(s.Helper.Notices())

	if s.Print {
		return s.doPrint(pp)
	}

	sched := s.Helper.Schedule()
	if s.Format.Structured() {
		return printers.Write(s.Out, s.Format, sched)
	}

	pp.Title(s.Helper.Header())
	if sched.Status != app.StatusReady {
		pp.Status(sched.Message)
		return nil
	}
	pp.Schedule(s.Helper.Rows())
	pp.Summary(sched.Conflicts(), sched.Timeout)
	return nil
}

func (s *Schedule) doPrint(pp *printers.PrettyPrint) error {
	doc, err := s.Helper.PrintDocument()
	if errors.Is(err, app.ErrNothingToPrint) {
		if s.Format.Structured() {
			return err
		}
		pp.Status(s.Helper.Catalog().Get("noScheduleToPrint"))
		return nil
	}
	if err != nil {
		return err
	}
	if s.Format.Structured() {
		return printers.Write(s.Out, s.Format, doc)
	}
	pp.Cards(doc)
	return nil
}
