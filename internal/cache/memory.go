package cache

import (
	"context"
	"sync"
	"time"
)

const defaultMaxEntries = 1000

// Option mutates memory cache configuration.
type Option func(*Memory)

// WithClock replaces time.Now, mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(m *Memory) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// WithMaxEntries bounds the number of live entries.
func WithMaxEntries(maxEntries int) Option {
	return func(m *Memory) {
		if maxEntries > 0 {
			m.maxEntries = maxEntries
		}
	}
}

// Memory is a process-local Cache.
type Memory struct {
	clock      func() time.Time
	maxEntries int

	mu      sync.Mutex
	entries map[string]entry
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

func NewMemory(options ...Option) *Memory {
	m := &Memory{
		clock:      time.Now,
		maxEntries: defaultMaxEntries,
		entries:    make(map[string]entry),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !m.clock().Before(e.expiresAt) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return append([]byte(nil), e.value...), true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock()
	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.maxEntries {
		m.evictExpiredLocked(now)
		if len(m.entries) >= m.maxEntries {
			m.evictSoonestLocked()
		}
	}

	m.entries[key] = entry{
		value:     append([]byte(nil), value...),
		expiresAt: now.Add(ttl),
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *Memory) Cleanup(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.evictExpiredLocked(m.clock()), nil
}

// Len counts entries including expired ones not yet swept.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) evictExpiredLocked(now time.Time) int {
	removed := 0
	for key, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

func (m *Memory) evictSoonestLocked() {
	var (
		victim  string
		soonest time.Time
		found   bool
	)
	for key, e := range m.entries {
		if !found || e.expiresAt.Before(soonest) {
			victim, soonest, found = key, e.expiresAt, true
		}
	}
	if found {
		delete(m.entries, victim)
	}
}
