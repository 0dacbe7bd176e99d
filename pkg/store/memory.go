package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Memory is a KV kept in process memory. It backs --ephemeral runs and tests.
type Memory struct {
	mu       sync.Mutex
	data     map[string]json.RawMessage
	watchers []chan Change
	// FailReads makes Get return an error, simulating an unavailable store.
	FailReads bool
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]json.RawMessage)}
}

var errUnavailable = errors.New("store: unavailable")

func (m *Memory) Get(_ context.Context, defaults map[string]any) (map[string]json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads {
		return nil, errUnavailable
	}
	if defaults == nil {
		out := make(map[string]json.RawMessage, len(m.data))
		for k, v := range m.data {
			out[k] = append(json.RawMessage(nil), v...)
		}
		return out, nil
	}
	out := make(map[string]json.RawMessage, len(defaults))
	for k, def := range defaults {
		if v, ok := m.data[k]; ok {
			out[k] = append(json.RawMessage(nil), v...)
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

func (m *Memory) Set(_ context.Context, values map[string]any) error {
	m.mu.Lock()
	keys := make([]string, 0, len(values))
	for k, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			m.mu.Unlock()
			return fmt.Errorf("store: encode %s: %w", k, err)
		}
		m.data[k] = data
		keys = append(keys, k)
	}
	m.mu.Unlock()
	sort.Strings(keys)
	m.notify(Change{Keys: keys})
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	m.data = make(map[string]json.RawMessage)
	m.mu.Unlock()
	sort.Strings(keys)
	m.notify(Change{Keys: keys})
	return nil
}

func (m *Memory) Keys(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *Memory) Watch(ctx context.Context) (<-chan Change, error) {
	ch := make(chan Change, 16)
	m.mu.Lock()
	m.watchers = append(m.watchers, ch)
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, w := range m.watchers {
			if w == ch {
				m.watchers = append(m.watchers[:i], m.watchers[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch, nil
}

func (m *Memory) notify(c Change) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.watchers {
		select {
		case w <- c:
		default:
		}
	}
}
