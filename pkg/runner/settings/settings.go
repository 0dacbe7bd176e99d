// Package settings shows, changes, exports, imports and resets the stored
// preferences.
package settings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/lineup/pkg/app"
	"tableflip.dev/lineup/pkg/i18n"
	"tableflip.dev/lineup/pkg/printers"
	"tableflip.dev/lineup/pkg/store"
)

// Action selects what Settings does.
type Action string

const (
	ActionShow   Action = "show"
	ActionSet    Action = "set"
	ActionExport Action = "export"
	ActionImport Action = "import"
	ActionReset  Action = "reset"
)

// Settings runs one Action against the store.
type Settings struct {
	KV     store.KV
	Helper *app.Helper
	Action Action
	Key    string
	Value  string
	// File is read by import and written by export. Empty or "-" means
	// stdin / Out.
	File   string
	In     io.Reader
	Out    io.Writer
	Format printers.Format
}

// View is the structured form of the current settings.
type View struct {
	store.Settings
	Favorites int      `json:"favorites"`
	Locales   []string `json:"locales"`
}

func (s *Settings) out() io.Writer {
	if s.Out == nil {
		return color.Output
	}
	return s.Out
}

func (s *Settings) catalog() *i18n.Catalog {
	if s.Helper != nil {
		return s.Helper.Catalog()
	}
	return i18n.MustLoad(i18n.DefaultLocale)
}

// Do runs the action.
func (s *Settings) Do(ctx context.Context) error {
	if s.KV == nil {
		return errors.New("settings: no store configured")
	}
	switch s.Action {
	case "", ActionShow:
		return s.show(ctx)
	case ActionSet:
		return s.set(ctx)
	case ActionExport:
		return s.export(ctx)
	case ActionImport:
		return s.importFile(ctx)
	case ActionReset:
		if err := store.Reset(ctx, s.KV); err != nil {
			return fmt.Errorf("%s: %w", s.catalog().Get("errorResettingSettings"), err)
		}
		s.done("settingsResetSuccess")
		return nil
	default:
		return fmt.Errorf("settings: unknown action %q", s.Action)
	}
}

func (s *Settings) show(ctx context.Context) error {
	current, err := store.LoadSettings(ctx, s.KV)
	if err != nil {
		return err
	}
	favs, err := store.LoadFavorites(ctx, s.KV)
	if err != nil {
		return err
	}
	view := View{Settings: current, Favorites: len(favs), Locales: i18n.Locales()}
	format := s.Format
	if !format.Structured() {
		format = printers.FormatYAML
	}
	return printers.Write(s.out(), format, view)
}

func (s *Settings) set(ctx context.Context) error {
	if s.Helper == nil {
		return errors.New("settings: no helper configured")
	}
	var err error
	switch s.Key {
	case store.KeyScheduleHelper, "helper", "enabled":
		var on bool
		on, err = strconv.ParseBool(strings.TrimSpace(s.Value))
		if err != nil {
			return fmt.Errorf("settings: %s expects true or false: %w", store.KeyScheduleHelper, err)
		}
		err = s.Helper.SetEnabled(ctx, on)
	case store.KeyLanguage, "lang":
		lang := strings.ToLower(strings.TrimSpace(s.Value))
		if !known(lang) {
			return fmt.Errorf("settings: unknown language %q, expected one of %v", s.Value, i18n.Locales())
		}
		err = s.Helper.SetLanguage(ctx, lang)
		if err == nil {
			s.done("languageChanged")
			return nil
		}
	default:
		return fmt.Errorf("settings: unknown setting %q", s.Key)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", s.catalog().Get("errorUpdatingSetting"), err)
	}
	s.done("settingUpdatedSuccess")
	return nil
}

func known(lang string) bool {
	for _, l := range i18n.Locales() {
		if l == lang {
			return true
		}
	}
	return false
}

func (s *Settings) export(ctx context.Context) error {
	data, err := store.Export(ctx, s.KV)
	if err != nil {
		return fmt.Errorf("%s: %w", s.catalog().Get("errorExportingSettings"), err)
	}
	if s.File == "" || s.File == "-" {
		_, err = fmt.Fprintln(s.out(), string(data))
		return err
	}
	if err := os.WriteFile(s.File, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("%s: %w", s.catalog().Get("errorExportingSettings"), err)
	}
	s.done("settingsExportedSuccess")
	return nil
}

func (s *Settings) importFile(ctx context.Context) error {
	var (
		data []byte
		err  error
	)
	if s.File == "" || s.File == "-" {
		in := s.In
		if in == nil {
			in = os.Stdin
		}
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(s.File)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", s.catalog().Get("errorImportingSettings"), err)
	}
	if err := store.Import(ctx, s.KV, data); err != nil {
		if errors.Is(err, store.ErrInvalidSettings) {
			return fmt.Errorf("%s: %w", s.catalog().Get("invalidSettingsFile"), err)
		}
		return fmt.Errorf("%s: %w", s.catalog().Get("errorImportingSettings"), err)
	}
	s.done("settingsImportedSuccess")
	return nil
}

func (s *Settings) done(key string) {
	if s.Format.Structured() {
		_ = printers.Write(s.out(), s.Format, map[string]string{"status": s.catalog().Get(key)})
		return
	}
	_, _ = color.New(color.FgGreen).Fprintln(s.out(), s.catalog().Get(key))
}
