// Package mcp provides the Model Context Protocol server integration for lineup.
package mcp

import (
	"context"
	"errors"
	"strings"
	"sync"

	"tableflip.dev/lineup/pkg/app"
	"tableflip.dev/lineup/pkg/conflict"
	"tableflip.dev/lineup/pkg/event"
	"tableflip.dev/lineup/pkg/extract"
	"tableflip.dev/lineup/pkg/filter"
	"tableflip.dev/lineup/pkg/page"
	"tableflip.dev/lineup/pkg/present"
)

// Service serializes MCP requests onto the helper, which must only be used
// by one goroutine at a time.
type Service struct {
	mu     sync.Mutex
	Helper *app.Helper
	Source page.Source
}

var errNoHelper = errors.New("helper is not configured")

// EventDTO is an event with its favorite flag.
type EventDTO struct {
	event.Event
	Favorite bool `json:"favorite"`
}

// FavoriteDTO is a favorite with whether it is on the scanned page.
type FavoriteDTO struct {
	event.Event
	OnPage bool `json:"onPage"`
}

// ToggleResult reports the state of an event after toggling.
type ToggleResult struct {
	ID       string `json:"id"`
	Favorite bool   `json:"favorite"`
}

// ScheduleOptions override the helper's grouping for one request.
type ScheduleOptions struct {
	Timeout int
	Mode    string
}

// NewService builds a service wrapper around h.
func NewService(h *app.Helper, src page.Source) *Service {
	return &Service{Helper: h, Source: src}
}

// ListEvents returns page events, optionally only favorites or one stage.
func (s *Service) ListEvents(_ context.Context, favoritesOnly bool, stage string) ([]EventDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Helper == nil {
		return nil, errNoHelper
	}
	st := filter.State{ShowFavoritesOnly: favoritesOnly}
	if stage = strings.TrimSpace(stage); stage != "" {
		st.SelectedStages = []string{stage}
	}
	visible := filter.Visible(s.Helper.Snapshot().Events, s.Helper.Favorites(), st)
	out := make([]EventDTO, 0, len(visible))
	for _, e := range visible {
		out = append(out, EventDTO{Event: e, Favorite: s.Helper.IsFavorite(e.ID)})
	}
	return out, nil
}

// ListStages returns the stage names on the page.
func (s *Service) ListStages(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Helper == nil {
		return nil, errNoHelper
	}
	return s.Helper.Stages(), nil
}

// ListFavorites returns every favorite in favorites order.
func (s *Service) ListFavorites(_ context.Context) ([]FavoriteDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Helper == nil {
		return nil, errNoHelper
	}
	onPage := event.Index(s.Helper.Snapshot().Events)
	favs := s.Helper.Favorites()
	out := make([]FavoriteDTO, 0, len(favs))
	for _, f := range favs {
		_, ok := onPage[f.ID]
		out = append(out, FavoriteDTO{Event: f, OnPage: ok})
	}
	return out, nil
}

// ToggleFavorite flips the favorite state of id.
func (s *Service) ToggleFavorite(ctx context.Context, id string) (*ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Helper == nil {
		return nil, errNoHelper
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("id is required")
	}
	now, err := s.Helper.ToggleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{ID: id, Favorite: now}, nil
}

// BuildSchedule returns the conflict-annotated schedule. Non-zero options
// are applied to the helper first and stay in effect.
func (s *Service) BuildSchedule(_ context.Context, opts ScheduleOptions) (*app.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Helper == nil {
		return nil, errNoHelper
	}
	if opts.Timeout != 0 {
		if err := s.Helper.SetTimeout(opts.Timeout); err != nil {
			return nil, err
		}
	}
	if opts.Mode != "" {
		m, err := conflict.ParseMode(opts.Mode)
		if err != nil {
			return nil, err
		}
		s.Helper.SetMode(m)
	}
	sched := s.Helper.Schedule()
	return &sched, nil
}

// PrintSchedule returns the printable schedule.
func (s *Service) PrintSchedule(_ context.Context) (*present.PrintDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Helper == nil {
		return nil, errNoHelper
	}
	doc, err := s.Helper.PrintDocument()
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Rescan fetches the page again and replaces the snapshot when it has
// schedule content.
func (s *Service) Rescan(ctx context.Context) (*extract.Snapshot, error) {
	if s.Source == nil {
		return nil, errors.New("no page source configured")
	}
	snap, err := page.Scan(ctx, s.Source)
	if err != nil {
		return nil, err
	}
	if !snap.Ready() {
		return nil, errors.New("schedule content not found on the page")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Helper == nil {
		return nil, errNoHelper
	}
	s.Helper.SetPage(snap)
	return snap, nil
}
