package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// KV is the asynchronous key-value store the helper persists settings and
// favorites in. Every value is a JSON document.
type KV interface {
	// Get returns the stored value for every key in defaults, or the
	// marshalled default when the key is absent. A nil defaults map returns
	// every stored key.
	Get(ctx context.Context, defaults map[string]any) (map[string]json.RawMessage, error)
	Set(ctx context.Context, values map[string]any) error
	Clear(ctx context.Context) error
	Keys(ctx context.Context) ([]string, error)
	// Watch streams change notifications until ctx is cancelled.
	Watch(ctx context.Context) (<-chan Change, error)
}

// Change lists the keys written or erased since the previous notification.
type Change struct {
	Keys []string `json:"keys"`
}

// Has reports whether key is part of the change. An empty change means the
// whole store may have changed.
func (c Change) Has(key string) bool {
	if len(c.Keys) == 0 {
		return true
	}
	for _, k := range c.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// area is the directory all keys live under, mirroring the synced storage
// area of the extension this data was first kept in.
const area = "sync"

// Load creates a KV backed by diskv using the provided config.
func Load(cfg Config) (KV, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &diskKV{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type diskKV struct {
	d        *diskv.Diskv
	basePath string
}

func (p *diskKV) Get(ctx context.Context, defaults map[string]any) (map[string]json.RawMessage, error) {
	if defaults == nil {
		keys, err := p.Keys(ctx)
		if err != nil {
			return nil, err
		}
		out := make(map[string]json.RawMessage, len(keys))
		for _, k := range keys {
			val, err := p.d.Read(k)
			if err != nil {
				return nil, fmt.Errorf("store: read %s: %w", k, err)
			}
			out[k] = json.RawMessage(val)
		}
		return out, nil
	}

	out := make(map[string]json.RawMessage, len(defaults))
	for k, def := range defaults {
		if p.d.Has(k) {
			val, err := p.d.Read(k)
			if err != nil {
				return nil, fmt.Errorf("store: read %s: %w", k, err)
			}
			out[k] = json.RawMessage(val)
			continue
		}
		raw, err := json.Marshal(def)
		if err != nil {
			return nil, fmt.Errorf("store: default %s: %w", k, err)
		}
		out[k] = raw
	}
	return out, nil
}

func (p *diskKV) Set(_ context.Context, values map[string]any) error {
	for k, v := range values {
		if strings.TrimSpace(k) == "" {
			return errors.New("store: empty key")
		}
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("store: encode %s: %w", k, err)
		}
		if err := p.d.Write(k, data); err != nil {
			return fmt.Errorf("store: write %s: %w", k, err)
		}
	}
	return nil
}

// Clear erases every key but keeps the directory tree so watchers stay
// subscribed.
func (p *diskKV) Clear(ctx context.Context) error {
	keys, err := p.Keys(ctx)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := p.d.Erase(k); err != nil {
			return fmt.Errorf("store: erase %s: %w", k, err)
		}
	}
	return nil
}

func (p *diskKV) Keys(ctx context.Context) ([]string, error) {
	if _, err := os.Stat(filepath.Join(p.basePath, area)); errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	keys := make([]string, 0)
	for k := range p.d.Keys(ctx.Done()) {
		keys = append(keys, k)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{area},
		FileName: s,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
