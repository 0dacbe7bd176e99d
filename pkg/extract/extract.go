// Package extract reads festival schedule markup into events.
package extract

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"tableflip.dev/lineup/pkg/event"
)

// Selectors of the schedule page markup.
const (
	SelectorBlock      = ".schedule_block"
	SelectorBlockTitle = ".schedule_block_title"
	SelectorItem       = ".schedule_item"
	SelectorLink       = ".schedule_link"
	SelectorName       = ".schedule_name"
	SelectorTime       = ".schedule_time"
	SelectorImage      = ".schedule_img img"
	SelectorActiveDay  = ".schedule_day_link.active"
)

// Snapshot is everything read from one rendering of the schedule page. It is
// rebuilt on every scan and never diffed against an earlier one.
type Snapshot struct {
	Events []event.Event `json:"events"`
	Stages []string      `json:"stages"`
	Day    string        `json:"day,omitempty"`
	Blocks int           `json:"blocks"`
}

// Ready reports whether the page rendered any stage block yet.
func (s *Snapshot) Ready() bool {
	return s != nil && s.Blocks > 0
}

// Options tunes extraction.
type Options struct {
	// BaseURL resolves relative links and image sources when set.
	BaseURL *url.URL
}

// Parse reads schedule markup from r.
func Parse(r io.Reader, opts Options) (*Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("extract: parse markup: %w", err)
	}
	return FromDocument(doc, opts), nil
}

// FromDocument extracts a Snapshot from an already parsed document.
func FromDocument(doc *goquery.Document, opts Options) *Snapshot {
	snap := &Snapshot{
		Events: make([]event.Event, 0),
		Stages: make([]string, 0),
	}

	snap.Blocks = doc.Find(SelectorBlock).Length()
	doc.Find(SelectorBlockTitle).Each(func(_ int, s *goquery.Selection) {
		snap.Stages = append(snap.Stages, strings.TrimSpace(s.Text()))
	})
	snap.Day = strings.TrimSpace(doc.Find(SelectorActiveDay).First().Text())

	doc.Find(SelectorItem).Each(func(_ int, s *goquery.Selection) {
		if e, ok := itemEvent(s, opts); ok {
			snap.Events = append(snap.Events, e)
		}
	})
	return snap
}

// itemEvent reads one schedule item. Items without a link, name or time are
// not performances and are skipped.
func itemEvent(s *goquery.Selection, opts Options) (event.Event, bool) {
	link := s.Find(SelectorLink).First()
	name := s.Find(SelectorName).First()
	when := s.Find(SelectorTime).First()
	if link.Length() == 0 || name.Length() == 0 || when.Length() == 0 {
		return event.Event{}, false
	}

	stage := ""
	if block := s.Closest(SelectorBlock); block.Length() > 0 {
		stage = strings.TrimSpace(block.Find(SelectorBlockTitle).First().Text())
	}

	href, _ := link.Attr("href")
	src, _ := s.Find(SelectorImage).First().Attr("src")

	e := event.New(strings.TrimSpace(name.Text()), strings.TrimSpace(when.Text()), stage)
	return e.WithMeta(resolve(opts.BaseURL, href), resolve(opts.BaseURL, src)), true
}

func resolve(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if base == nil || ref == "" {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
