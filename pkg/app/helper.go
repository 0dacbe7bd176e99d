// Package app owns the schedule helper state: favorites, filters, the
// conflict timeout, and the groups derived from them.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"tableflip.dev/lineup/pkg/conflict"
	"tableflip.dev/lineup/pkg/event"
	"tableflip.dev/lineup/pkg/extract"
	"tableflip.dev/lineup/pkg/filter"
	"tableflip.dev/lineup/pkg/i18n"
	"tableflip.dev/lineup/pkg/store"
	"tableflip.dev/lineup/pkg/timeutil"
)

var (
	ErrHelperDisabled = errors.New("app: schedule helper is disabled")
	ErrUnknownEvent   = errors.New("app: event not found on page")
	ErrNothingToPrint = errors.New("app: no schedule to print")
)

// Helper is the single owner of the engine state. It is not safe for
// concurrent use; one goroutine drives it and every change goes through its
// transition methods.
type Helper struct {
	kv store.KV

	settings  store.Settings
	favorites []event.Event
	snapshot  *extract.Snapshot
	filter    filter.State
	timeout   int
	mode      conflict.Mode
	catalog   *i18n.Catalog

	generation uint64
	cache      conflict.Cache
	notices    []string
}

// Option configures a Helper.
type Option func(*Helper)

// WithTimeout sets the initial conflict timeout in minutes.
func WithTimeout(minutes int) Option {
	return func(h *Helper) {
		if timeutil.ValidTimeout(minutes) {
			h.timeout = minutes
		}
	}
}

// WithMode sets the grouping mode.
func WithMode(m conflict.Mode) Option {
	return func(h *Helper) {
		if m != "" {
			h.mode = m
		}
	}
}

// New returns a Helper backed by kv with default settings. Call Load to read
// the stored state.
func New(kv store.KV, opts ...Option) *Helper {
	h := &Helper{
		kv:        kv,
		settings:  store.DefaultSettings(),
		favorites: make([]event.Event, 0),
		snapshot:  &extract.Snapshot{},
		timeout:   timeutil.DefaultTimeout,
		mode:      conflict.StartAnchored,
		catalog:   i18n.MustLoad(i18n.DefaultLocale),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Load reads settings and favorites. Storage failures fall back to the
// defaults and leave a notice; they are never fatal.
func (h *Helper) Load(ctx context.Context) error {
	if h.kv == nil {
		return errors.New("app: no store configured")
	}
	settings, err := store.LoadSettings(ctx, h.kv)
	if err != nil {
		h.storageFailed(err)
	}
	h.applySettings(settings)

	favs, err := store.LoadFavorites(ctx, h.kv)
	if err != nil {
		h.storageFailed(err)
	}
	h.favorites = favs
	h.bump()
	return nil
}

func (h *Helper) storageFailed(err error) {
	log.Warn().Err(err).Msg("storage unavailable, using defaults")
	h.notices = append(h.notices, h.catalog.Get("storageUnavailable"))
}

func (h *Helper) applySettings(s store.Settings) {
	if s.Language != h.settings.Language || h.catalog == nil {
		h.catalog = i18n.MustLoad(s.Language)
	}
	h.settings = s
}

func (h *Helper) bump() {
	h.generation++
}

// SetPage replaces the page snapshot after a (re)scan.
func (h *Helper) SetPage(snap *extract.Snapshot) {
	if snap == nil {
		snap = &extract.Snapshot{}
	}
	h.snapshot = snap
	h.bump()
}

// ToggleFavorite flips ev between favorite and not favorite, persists the
// whole list, and returns whether ev is now a favorite. The in-memory state
// changes even if the write fails; the error is still returned.
func (h *Helper) ToggleFavorite(ctx context.Context, ev event.Event) (bool, error) {
	if !h.settings.ScheduleHelper {
		return false, ErrHelperDisabled
	}
	ev = ev.Normalize()

	next := make([]event.Event, 0, len(h.favorites)+1)
	removed := false
	for _, f := range h.favorites {
		if f.ID == ev.ID {
			removed = true
			continue
		}
		next = append(next, f)
	}
	if !removed {
		next = append(next, ev)
	}

	err := store.SaveFavorites(ctx, h.kv, next)
	h.favorites = next
	h.bump()
	if err != nil {
		h.storageFailed(err)
		return !removed, fmt.Errorf("app: save favorites: %w", err)
	}
	log.Debug().Str("id", ev.ID).Bool("favorite", !removed).Msg("favorite toggled")
	return !removed, nil
}

// ToggleByID toggles the page event with the given ID. A favorite that is no
// longer on the page can still be removed.
func (h *Helper) ToggleByID(ctx context.Context, id string) (bool, error) {
	for _, e := range h.snapshot.Events {
		if e.ID == id {
			return h.ToggleFavorite(ctx, e)
		}
	}
	for _, f := range h.favorites {
		if f.ID == id {
			return h.ToggleFavorite(ctx, f)
		}
	}
	return false, fmt.Errorf("%w: %s", ErrUnknownEvent, id)
}

// SetShowFavoritesOnly changes list visibility only. The scheduling set does
// not depend on it, so cached groups stay valid.
func (h *Helper) SetShowFavoritesOnly(on bool) {
	h.filter.ShowFavoritesOnly = on
}

// SetSelectedStages limits the list to stages. Empty selects every stage.
func (h *Helper) SetSelectedStages(stages []string) {
	h.filter.SelectedStages = append([]string(nil), stages...)
}

// SelectAllStages selects every stage on the page.
func (h *Helper) SelectAllStages() {
	h.filter = h.filter.SelectAll(filter.Stages(h.snapshot.Events))
}

// SetTimeout changes the conflict threshold.
func (h *Helper) SetTimeout(minutes int) error {
	if !timeutil.ValidTimeout(minutes) {
		return fmt.Errorf("app: timeout %d not one of %v", minutes, timeutil.Timeouts())
	}
	if minutes != h.timeout {
		h.timeout = minutes
		h.bump()
	}
	return nil
}

// SetMode changes how conflict windows are anchored.
func (h *Helper) SetMode(m conflict.Mode) {
	if m != "" && m != h.mode {
		h.mode = m
		h.bump()
	}
}

// ReplaceFavorites adopts a favorites list written elsewhere. It reports
// whether the list differed from the current one.
func (h *Helper) ReplaceFavorites(favs []event.Event) bool {
	if favs == nil {
		favs = make([]event.Event, 0)
	}
	cur, _ := json.Marshal(h.favorites)
	next, _ := json.Marshal(favs)
	if string(cur) == string(next) {
		return false
	}
	h.favorites = append(make([]event.Event, 0, len(favs)), favs...)
	h.bump()
	return true
}

// SetEnabled turns the schedule helper on or off and persists the choice.
func (h *Helper) SetEnabled(ctx context.Context, on bool) error {
	s := h.settings
	s.ScheduleHelper = on
	return h.saveSettings(ctx, s)
}

// SetLanguage switches the message locale and persists the choice.
func (h *Helper) SetLanguage(ctx context.Context, lang string) error {
	s := h.settings
	s.Language = lang
	return h.saveSettings(ctx, s)
}

func (h *Helper) saveSettings(ctx context.Context, s store.Settings) error {
	changed := s != h.settings
	h.applySettings(s)
	if changed {
		h.bump()
	}
	if err := store.SaveSettings(ctx, h.kv, s); err != nil {
		h.storageFailed(err)
		return fmt.Errorf("app: save settings: %w", err)
	}
	return nil
}

// Sync re-reads the keys named in c after an external store change and
// reports whether anything visible changed.
func (h *Helper) Sync(ctx context.Context, c store.Change) (bool, error) {
	changed := false
	if c.Has(store.KeyScheduleHelper) || c.Has(store.KeyLanguage) {
		s, err := store.LoadSettings(ctx, h.kv)
		if err != nil {
			return false, err
		}
		if s != h.settings {
			h.applySettings(s)
			h.bump()
			changed = true
		}
	}
	if c.Has(store.KeyFavorites) {
		favs, err := store.LoadFavorites(ctx, h.kv)
		if err != nil {
			return changed, err
		}
		if h.ReplaceFavorites(favs) {
			changed = true
		}
	}
	return changed, nil
}

// Notices returns the transient messages recorded since the last call and
// clears them.
func (h *Helper) Notices() []string {
	out := h.notices
	h.notices = nil
	return out
}

func (h *Helper) Enabled() bool                  { return h.settings.ScheduleHelper }
func (h *Helper) Settings() store.Settings       { return h.settings }
func (h *Helper) Catalog() *i18n.Catalog         { return h.catalog }
func (h *Helper) Snapshot() *extract.Snapshot    { return h.snapshot }
func (h *Helper) Filter() filter.State           { return h.filter }
func (h *Helper) Timeout() int                   { return h.timeout }
func (h *Helper) Mode() conflict.Mode            { return h.mode }
func (h *Helper) Generation() uint64             { return h.generation }
func (h *Helper) CacheStats() (hits, misses int) { return h.cache.Stats() }

// Favorites returns a copy of the favorites list.
func (h *Helper) Favorites() []event.Event {
	return append(make([]event.Event, 0, len(h.favorites)), h.favorites...)
}

// IsFavorite reports whether id is a favorite.
func (h *Helper) IsFavorite(id string) bool {
	return event.Contains(h.favorites, id)
}

// Stages lists the stages on the page.
func (h *Helper) Stages() []string {
	return filter.Stages(h.snapshot.Events)
}

// Visible returns the page events the list shows. With the helper disabled
// every event is shown.
func (h *Helper) Visible() []event.Event {
	if !h.settings.ScheduleHelper {
		return append(make([]event.Event, 0, len(h.snapshot.Events)), h.snapshot.Events...)
	}
	return filter.Visible(h.snapshot.Events, h.favorites, h.filter)
}

// HiddenStages lists the stages whose events are all filtered out.
func (h *Helper) HiddenStages() []string {
	return filter.HiddenStages(h.snapshot.Events, h.Visible())
}
