// Package favorite toggles performances in and out of the favorites list.
package favorite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"

	"tableflip.dev/lineup/pkg/app"
	"tableflip.dev/lineup/pkg/event"
	"tableflip.dev/lineup/pkg/printers"
)

// Favorite toggles each ID, or lets the user pick one when Interactive.
type Favorite struct {
	Helper      *app.Helper
	IDs         []string
	Interactive bool
	In          io.ReadCloser
	Out         io.Writer
	Format      printers.Format
}

// Result reports the state of one event after toggling.
type Result struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Favorite bool   `json:"favorite"`
}

// Do runs the toggles in order and stops at the first failure.
func (f *Favorite) Do(ctx context.Context) error {
	if f.Helper == nil {
		return errors.New("favorite: no helper configured")
	}
	ids := f.IDs
	if f.Interactive {
		id, err := f.pick()
		if err != nil {
			return err
		}
		ids = []string{id}
	}
	if len(ids) == 0 {
		return errors.New("favorite: no event id given")
	}

	results := make([]Result, 0, len(ids))
	for _, id := range ids {
		now, err := f.Helper.ToggleByID(ctx, id)
		if err != nil {
			return err
		}
		results = append(results, Result{ID: id, Title: f.title(id), Favorite: now})
	}

	if f.Format.Structured() {
		return printers.Write(f.Out, f.Format, results)
	}
	out := f.Out
	if out == nil {
		out = color.Output
	}
	cat := f.Helper.Catalog()
	for _, r := range results {
		label := cat.Get("removeFromFavorites")
		mark := color.New(color.Faint).Sprint("☆")
		if r.Favorite {
			label = cat.Get("addToFavorites")
			mark = color.New(color.FgHiYellow).Sprint("★")
		}
		_, _ = fmt.Fprintf(out, "%s %s: %s\n", mark, label, r.Title)
	}
	return nil
}

func (f *Favorite) title(id string) string {
	for _, e := range f.Helper.Snapshot().Events {
		if e.ID == id {
			return e.Title()
		}
	}
	for _, e := range f.Helper.Favorites() {
		if e.ID == id {
			return e.Title()
		}
	}
	return id
}

type pickItem struct {
	event.Event
	Star string
}

func (f *Favorite) pick() (string, error) {
	visible := f.Helper.Visible()
	if len(visible) == 0 {
		return "", errors.New("favorite: no events on the page")
	}
	items := make([]pickItem, 0, len(visible))
	for _, e := range visible {
		star := " "
		if f.Helper.IsFavorite(e.ID) {
			star = "★"
		}
		items = append(items, pickItem{Event: e, Star: star})
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜ {{ .Star | yellow }} {{ .Time | bold }} {{ .Name | bold }} {{ .Stage | cyan }}",
		Inactive: "  {{ .Star | yellow }} {{ .Time }} {{ .Name }} {{ .Stage | cyan }}",
		Selected: "{{ .Name | bold }}",
		Details: `
--------- Details ----------
{{ .ID }}
{{ .Link }}
`,
	}

	searcher := func(input string, index int) bool {
		e := items[index]
		name := strings.ToLower(e.Name + " " + e.Stage)
		return strings.Contains(name, strings.ToLower(strings.TrimSpace(input)))
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     f.Helper.Catalog().Get("addToFavorites"),
		Items:     items,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     f.In,
	}
	if f.Out != nil {
		prompt.Stdout = nopCloser{f.Out}
	}

	i, _, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return items[i].ID, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
