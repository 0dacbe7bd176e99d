package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tableflip.dev/lineup/pkg/event"
)

// Storage keys.
const (
	KeyScheduleHelper = "scheduleHelper"
	KeyLanguage       = "language"
	KeyFavorites      = "atlasFavorites"
)

// DefaultLanguage is used when no language was chosen.
const DefaultLanguage = "uk"

// ErrInvalidSettings is returned by Import when the input is not a JSON
// object. The store is left untouched.
var ErrInvalidSettings = errors.New("store: settings must be a JSON object")

// Settings are the user preferences kept next to the favorites.
type Settings struct {
	ScheduleHelper bool   `json:"scheduleHelper" yaml:"scheduleHelper"`
	Language       string `json:"language" yaml:"language"`
}

// DefaultSettings returns the settings of a fresh install.
func DefaultSettings() Settings {
	return Settings{ScheduleHelper: true, Language: DefaultLanguage}
}

func (s Settings) values() map[string]any {
	return map[string]any{
		KeyScheduleHelper: s.ScheduleHelper,
		KeyLanguage:       s.Language,
	}
}

// LoadSettings reads the settings. On any failure the defaults are returned
// together with the error so callers can keep going.
func LoadSettings(ctx context.Context, kv KV) (Settings, error) {
	def := DefaultSettings()
	raw, err := kv.Get(ctx, def.values())
	if err != nil {
		return def, fmt.Errorf("store: load settings: %w", err)
	}
	s := def
	if err := json.Unmarshal(raw[KeyScheduleHelper], &s.ScheduleHelper); err != nil {
		return def, fmt.Errorf("store: decode %s: %w", KeyScheduleHelper, err)
	}
	if err := json.Unmarshal(raw[KeyLanguage], &s.Language); err != nil {
		return def, fmt.Errorf("store: decode %s: %w", KeyLanguage, err)
	}
	if s.Language == "" {
		s.Language = DefaultLanguage
	}
	return s, nil
}

// SaveSettings writes every setting.
func SaveSettings(ctx context.Context, kv KV, s Settings) error {
	return kv.Set(ctx, s.values())
}

// LoadFavorites reads the favorites list. IDs are recomputed from the
// identifying fields. On failure an empty list is returned with the error.
func LoadFavorites(ctx context.Context, kv KV) ([]event.Event, error) {
	raw, err := kv.Get(ctx, map[string]any{KeyFavorites: []event.Event{}})
	if err != nil {
		return []event.Event{}, fmt.Errorf("store: load favorites: %w", err)
	}
	return DecodeFavorites(raw[KeyFavorites])
}

// DecodeFavorites parses a stored favorites document.
func DecodeFavorites(raw json.RawMessage) ([]event.Event, error) {
	favs := make([]event.Event, 0)
	if len(bytes.TrimSpace(raw)) == 0 {
		return favs, nil
	}
	if err := json.Unmarshal(raw, &favs); err != nil {
		return []event.Event{}, fmt.Errorf("store: decode %s: %w", KeyFavorites, err)
	}
	if favs == nil {
		favs = make([]event.Event, 0)
	}
	for i := range favs {
		favs[i] = favs[i].Normalize()
	}
	return favs, nil
}

// SaveFavorites replaces the stored favorites list.
func SaveFavorites(ctx context.Context, kv KV, favs []event.Event) error {
	if favs == nil {
		favs = []event.Event{}
	}
	return kv.Set(ctx, map[string]any{KeyFavorites: favs})
}

// Export dumps every stored key as an indented JSON object.
func Export(ctx context.Context, kv KV) ([]byte, error) {
	raw, err := kv.Get(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store: export: %w", err)
	}
	return json.MarshalIndent(raw, "", "  ")
}

// Import writes every key of a JSON object into the store.
func Import(ctx context.Context, kv KV, data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return ErrInvalidSettings
	}
	values := make(map[string]any, len(obj))
	for k, v := range obj {
		values[k] = v
	}
	if err := kv.Set(ctx, values); err != nil {
		return fmt.Errorf("store: import: %w", err)
	}
	return nil
}

// Reset clears the store and writes the default settings.
func Reset(ctx context.Context, kv KV) error {
	if err := kv.Clear(ctx); err != nil {
		return fmt.Errorf("store: reset: %w", err)
	}
	return SaveSettings(ctx, kv, DefaultSettings())
}
