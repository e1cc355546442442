package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestMemory(options ...Option) (*Memory, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)}
	return NewMemory(append([]Option{WithClock(clock.Now)}, options...)...), clock
}

func TestMemory_GetSet(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMemory()

	_, ok, err := m.Get(ctx, "missing")
	assert.Equal(t, nil, err)
	assert.Equal(t, false, ok)

	assert.Equal(t, nil, m.Set(ctx, "wordle:2026-10-17", []byte("crane"), time.Hour))

	got, ok, err := m.Get(ctx, "wordle:2026-10-17")
	assert.Equal(t, nil, err)
	assert.Equal(t, true, ok)
	assert.Equal(t, "crane", string(got))
}

func TestMemory_LazyExpiry(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestMemory()

	m.Set(ctx, "k", []byte("v"), time.Minute)
	clock.Advance(59 * time.Second)

	_, ok, _ := m.Get(ctx, "k")
	assert.Equal(t, true, ok)

	clock.Advance(time.Second)
	_, ok, _ = m.Get(ctx, "k")
	assert.Equal(t, false, ok)
	assert.Equal(t, 0, m.Len())
}

func TestMemory_Cleanup(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestMemory()

	m.Set(ctx, "short", []byte("1"), time.Minute)
	m.Set(ctx, "long", []byte("2"), time.Hour)
	clock.Advance(10 * time.Minute)

	removed, err := m.Cleanup(ctx)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, m.Len())

	_, ok, _ := m.Get(ctx, "long")
	assert.Equal(t, true, ok)
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMemory()

	m.Set(ctx, "k", []byte("v"), time.Hour)
	assert.Equal(t, nil, m.Delete(ctx, "k"))

	_, ok, _ := m.Get(ctx, "k")
	assert.Equal(t, false, ok)
}

func TestMemory_MaxEntriesEvictsSoonestExpiry(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMemory(WithMaxEntries(2))

	m.Set(ctx, "a", []byte("a"), time.Minute)
	m.Set(ctx, "b", []byte("b"), time.Hour)
	m.Set(ctx, "c", []byte("c"), time.Hour)

	assert.Equal(t, 2, m.Len())
	_, ok, _ := m.Get(ctx, "a")
	assert.Equal(t, false, ok)
	_, ok, _ = m.Get(ctx, "c")
	assert.Equal(t, true, ok)
}

func TestMemory_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMemory()

	value := []byte("crane")
	m.Set(ctx, "k", value, time.Hour)
	value[0] = 'X'

	got, _, _ := m.Get(ctx, "k")
	assert.Equal(t, "crane", string(got))
}
