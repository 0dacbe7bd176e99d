package page

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"tableflip.dev/lineup/pkg/extract"
)

// WaitOptions tunes WaitForContent.
type WaitOptions struct {
	// Interval between polls. Zero means one second.
	Interval time.Duration
	// Fallback is how long to poll before reporting the content missing and
	// starting over. Zero means ten seconds.
	Fallback time.Duration
	// OnRetry is called each time Fallback elapses without content.
	OnRetry func()
}

const (
	DefaultInterval = time.Second
	DefaultFallback = 10 * time.Second
)

// WaitForContent polls src until the schedule page has at least one stage
// block. When Fallback elapses the wait restarts, so it only returns on
// success or when ctx is done.
func WaitForContent(ctx context.Context, src Source, opts WaitOptions) (*extract.Snapshot, error) {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Fallback <= 0 {
		opts.Fallback = DefaultFallback
	}

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()
	fallback := time.NewTimer(opts.Fallback)
	defer fallback.Stop()

	for {
		snap, err := Scan(ctx, src)
		switch {
		case err != nil:
			log.Debug().Err(err).Str("page", src.String()).Msg("scan failed")
		case snap.Ready():
			return snap, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		case <-fallback.C:
			log.Warn().Str("page", src.String()).Msg("schedule content not found, retrying")
			if opts.OnRetry != nil {
				opts.OnRetry()
			}
			fallback.Reset(opts.Fallback)
		}
	}
}
