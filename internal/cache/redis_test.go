package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/assert/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedis_RoundTripAndExpiry(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()

	c := NewRedis(client)

	_, ok, err := c.Get(ctx, "wordle:2026-10-17")
	assert.Equal(t, nil, err)
	assert.Equal(t, false, ok)

	assert.Equal(t, nil, c.Set(ctx, "wordle:2026-10-17", []byte(`{"word":"crane"}`), time.Minute))
	assert.Equal(t, true, srv.Exists(redisKeyPrefix+"wordle:2026-10-17"))

	got, ok, err := c.Get(ctx, "wordle:2026-10-17")
	assert.Equal(t, nil, err)
	assert.Equal(t, true, ok)
	assert.Equal(t, `{"word":"crane"}`, string(got))

	srv.FastForward(2 * time.Minute)
	_, ok, _ = c.Get(ctx, "wordle:2026-10-17")
	assert.Equal(t, false, ok)

	removed, err := c.Cleanup(ctx)
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, removed)
}

func TestRedis_CleanupSweepsKeysWithoutExpiry(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()

	c := NewRedis(client)
	assert.Equal(t, nil, c.Set(ctx, "wordle:2026-10-16", []byte("stale"), 0))
	assert.Equal(t, nil, c.Set(ctx, "wordle:2026-10-17", []byte("fresh"), time.Hour))
	srv.Set("unrelated", "keep")

	removed, err := c.Cleanup(ctx)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, false, srv.Exists(redisKeyPrefix+"wordle:2026-10-16"))
	assert.Equal(t, true, srv.Exists(redisKeyPrefix+"wordle:2026-10-17"))
	assert.Equal(t, true, srv.Exists("unrelated"))
}

func TestRedis_Delete(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()

	c := NewRedis(client)
	c.Set(ctx, "k", []byte("v"), time.Hour)
	assert.Equal(t, nil, c.Delete(ctx, "k"))
	assert.Equal(t, false, srv.Exists(redisKeyPrefix+"k"))
}
