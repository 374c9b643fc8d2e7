package cache

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"
)

type entry struct {
	value    json.RawMessage
	storedAt time.Time
}

// Memory keeps entries in a process-local map. Freshness is measured with the
// monotonic reading carried by time.Now.
type Memory struct {
	mu       sync.Mutex
	entries  map[string]entry
	duration time.Duration
	now      func() time.Time
}

type MemoryOption func(*Memory)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

// NewMemory returns an empty cache whose entries stay fresh for duration.
// A non-positive duration falls back to DefaultDuration.
func NewMemory(duration time.Duration, opts ...MemoryOption) *Memory {
	if duration <= 0 {
		duration = DefaultDuration
	}
	m := &Memory{
		entries:  make(map[string]entry),
		duration: duration,
		now:      time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Memory) Get(_ context.Context, key string) (json.RawMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if m.now().Sub(e.storedAt) >= m.duration {
		delete(m.entries, key)
		return nil, false
	}
	return slices.Clone(e.value), true
}

func (m *Memory) Set(_ context.Context, key string, value json.RawMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{value: slices.Clone(value), storedAt: m.now()}
}

func (m *Memory) Invalidate(_ context.Context, keys ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(keys) == 0 {
		clear(m.entries)
		return
	}
	for _, k := range keys {
		delete(m.entries, k)
	}
}

// Len reports how many entries are held, fresh or not.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
