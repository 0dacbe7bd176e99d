package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"tableflip.dev/lineup/pkg/app"
	"tableflip.dev/lineup/pkg/commands/options"
	"tableflip.dev/lineup/pkg/conflict"
	"tableflip.dev/lineup/pkg/page"
	"tableflip.dev/lineup/pkg/store"
	"tableflip.dev/lineup/pkg/timeutil"
)

var errNoPage = errors.New("no schedule page: pass --page or set page in .lineup.yaml")

// session is the state every command starts from: config, store and a
// loaded helper, plus the page once scanned.
type session struct {
	cfg    *store.FileConfig
	kv     store.KV
	helper *app.Helper
	source page.Source
}

func openSession(ctx context.Context, so *options.ScheduleOptions) (*session, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}

	var kv store.KV
	if gopts.Ephemeral {
		kv = store.NewMemory()
	} else if kv, err = store.Load(cfg); err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	modeName := cfg.Mode
	if so != nil {
		if s := strings.TrimSpace(so.Timeout); s != "" {
			if timeout, err = timeutil.ParseTimeout(s); err != nil {
				return nil, err
			}
		}
		if so.Mode != "" {
			modeName = so.Mode
		}
	}
	if !timeutil.ValidTimeout(timeout) {
		log.Warn().Int("timeout", timeout).Msg("configured timeout is not supported, using the default")
		timeout = timeutil.DefaultTimeout
	}
	mode, err := conflict.ParseMode(modeName)
	if err != nil {
		return nil, err
	}

	h := app.New(kv, app.WithTimeout(timeout), app.WithMode(mode))
	if err := h.Load(ctx); err != nil {
		return nil, err
	}
	log.Debug().Str("store", cfg.Path).Bool("ephemeral", gopts.Ephemeral).Int("timeout", timeout).
		Str("mode", string(mode)).Int("favorites", len(h.Favorites())).Msg("session loaded")

	return &session{cfg: cfg, kv: kv, helper: h}, nil
}

// openPage resolves the page source without fetching it. An empty source is
// only an error when required.
func (s *session) openPage(po *options.PageOptions, required bool) error {
	ref := s.cfg.Page
	if po != nil && po.Page != "" {
		ref = po.Page
	}
	if ref == "" {
		if required {
			return errNoPage
		}
		return nil
	}
	src, err := page.Open(ref)
	if err != nil {
		return err
	}
	s.source = src
	return nil
}

// scan fetches the page and hands it to the helper. With --wait it polls
// until the schedule blocks show up.
func (s *session) scan(ctx context.Context, po *options.PageOptions) error {
	if s.source == nil {
		return nil
	}
	log.Debug().Str("page", s.source.String()).Msg("scanning")

	if po != nil && po.Wait {
		snap, err := page.WaitForContent(ctx, s.source, page.WaitOptions{
			Interval: po.Interval,
			Fallback: po.Fallback,
		})
		if err != nil {
			return err
		}
		s.helper.SetPage(snap)
		return nil
	}

	snap, err := page.Scan(ctx, s.source)
	if err != nil {
		return err
	}
	if !snap.Ready() {
		return fmt.Errorf("%s: %s", s.source, s.helper.Catalog().Get("contentNotFound"))
	}
	s.helper.SetPage(snap)
	return nil
}

// applyFilter pushes the filter flags into the helper.
func (s *session) applyFilter(fo *options.FilterOptions) {
	if fo == nil {
		return
	}
	s.helper.SetShowFavoritesOnly(fo.FavoritesOnly)
	if len(fo.Stages) > 0 {
		s.helper.SetSelectedStages(fo.Stages)
	}
}
