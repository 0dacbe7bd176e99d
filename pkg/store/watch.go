package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watch streams change notifications until ctx is cancelled. Callers should
// drain the returned channel to avoid blocking the watcher. The channel is
// closed once ctx is done or the watcher encounters an unrecoverable error.
func (p *diskKV) Watch(ctx context.Context) (<-chan Change, error) {
	if p.basePath == "" {
		return nil, errors.New("store: base path unknown")
	}

	dir := filepath.Join(p.basePath, area)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				log.Warn().Err(err).Msg("store: watcher close")
			}
		})
	}

	if err := watcher.Add(dir); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", dir, err)
	}

	changes := make(chan Change, 64)

	go func() {
		defer close(changes)
		defer closeWatcher()

		send := func(c Change) {
			select {
			case changes <- c:
			default:
				// Consumer is behind; the next change re-reads the store anyway.
			}
		}

		throttle := newChangeThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Debug().Err(err).Msg("store: watcher error")
				// Unclassified, so report the whole store as changed.
				throttle.Enqueue("", send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&fsnotify.Chmod == fsnotify.Chmod {
					continue
				}
				throttle.Enqueue(keyForPath(dir, evt.Name), send)
			}
		}
	}()

	return changes, nil
}

func keyForPath(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." || filepath.Dir(rel) != "." {
		return ""
	}
	return rel
}

// changeThrottle coalesces bursts of writes into one Change so consumers
// re-render once per burst.
type changeThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	all     bool
	stopped bool
	delay   time.Duration
}

func newChangeThrottle(delay time.Duration) *changeThrottle {
	return &changeThrottle{
		delay:   delay,
		pending: make(map[string]struct{}),
	}
}

// Enqueue records key as changed. An empty key marks the whole store.
func (t *changeThrottle) Enqueue(key string, send func(Change)) {
	t.mu.Lock()
	if key == "" {
		t.all = true
	} else {
		t.pending[key] = struct{}{}
	}

	if t.timer == nil && !t.stopped {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

// flush sends while holding the lock so that once Stop returns no send can
// follow; send must not block.
func (t *changeThrottle) flush(send func(Change)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timer = nil
	if t.stopped {
		return
	}
	pending := t.pending
	all := t.all
	t.pending = make(map[string]struct{})
	t.all = false

	if all {
		send(Change{})
		return
	}
	keys := make([]string, 0, len(pending))
	for k := range pending {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	send(Change{Keys: keys})
}

// Stop drops pending changes and waits out a flush already sending.
func (t *changeThrottle) Stop() {
	t.mu.Lock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
