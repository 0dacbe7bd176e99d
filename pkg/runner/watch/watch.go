// Package watch keeps the schedule on screen up to date as favorites change
// in the store or the page is re-scanned.
package watch

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"tableflip.dev/lineup/pkg/app"
	"tableflip.dev/lineup/pkg/page"
	"tableflip.dev/lineup/pkg/store"
)

// Watch re-renders after every store change and every scheduled re-scan.
// All updates are applied to Helper from the Do goroutine.
type Watch struct {
	Helper *app.Helper
	KV     store.KV
	Source page.Source
	// Refresh is a cron spec for page re-scans, e.g. "@every 5m". Empty
	// disables re-scanning.
	Refresh string
	Render  func(ctx context.Context) error
}

// Do runs until ctx is done.
func (w *Watch) Do(ctx context.Context) error {
	if w.Helper == nil || w.KV == nil || w.Render == nil {
		return errors.New("watch: helper, store and renderer are required")
	}

	changes, err := w.KV.Watch(ctx)
	if err != nil {
		return err
	}

	rescans := make(chan struct{}, 1)
	if w.Refresh != "" && w.Source != nil {
		c := cron.New()
		if _, err := c.AddFunc(w.Refresh, func() {
			select {
			case rescans <- struct{}{}:
			default:
			}
		}); err != nil {
			return fmt.Errorf("watch: refresh schedule %q: %w", w.Refresh, err)
		}
		c.Start()
		defer c.Stop()
	}

	if err := w.Render(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			changed, err := w.Helper.Sync(ctx, change)
			if err != nil {
				log.Warn().Err(err).Msg("reload after store change")
				continue
			}
			if !changed {
				continue
			}
			log.Debug().Strs("keys", change.Keys).Msg("store changed")
			if err := w.Render(ctx); err != nil {
				return err
			}
		case <-rescans:
			snap, err := page.Scan(ctx, w.Source)
			if err != nil {
				log.Warn().Err(err).Str("page", w.Source.String()).Msg("re-scan failed")
				continue
			}
			if !snap.Ready() {
				log.Warn().Str("page", w.Source.String()).Msg("schedule content not found, keeping previous scan")
				continue
			}
			w.Helper.SetPage(snap)
			log.Debug().Int("events", len(snap.Events)).Msg("page re-scanned")
			if err := w.Render(ctx); err != nil {
				return err
			}
		}
	}
}
