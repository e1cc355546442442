// Package service fetches the daily puzzles from their configured endpoints,
// caches them by date and falls back to locally generated puzzles when every
// endpoint is down.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amosoni/Wordle-Hint-sub001/internal/cache"
	"github.com/amosoni/Wordle-Hint-sub001/internal/model"
	"github.com/amosoni/Wordle-Hint-sub001/pkg/puzzle"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

var (
	ErrInvalidLevel = errors.New("hint level must be between 1 and 3")
	ErrInvalidDate  = puzzle.ErrInvalidDate
)

const (
	MinHintLevel = 1
	MaxHintLevel = 3
)

// fallbackTTL caps how long a locally generated puzzle is cached, so a
// recovered endpoint is picked up well before the normal TTL runs out.
const fallbackTTL = 10 * time.Minute

// loadTimeout bounds a shared load, which no longer follows any one
// caller's context.
const loadTimeout = 2 * time.Minute

const defaultProbeTimeout = 10 * time.Second

type options struct {
	now   func() time.Time
	retry puzzle.RetryPolicy
}

type Option func(*options)

func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func WithRetryPolicy(p puzzle.RetryPolicy) Option {
	return func(o *options) {
		o.retry = p
	}
}

func (o options) probeTimeout() time.Duration {
	if o.retry.Timeout > 0 {
		return o.retry.Timeout
	}
	return defaultProbeTimeout
}

func buildOptions(opts []Option) options {
	o := options{
		now:   time.Now,
		retry: puzzle.DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// ParseDate reads a YYYY-MM-DD query value. An empty value means today.
func ParseDate(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return puzzle.Day(now), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return t, nil
}

// dailyCache keeps one JSON-encoded puzzle per date and collapses concurrent
// misses for the same date into a single load.
type dailyCache[T any] struct {
	prefix string
	cache  cache.Cache
	ttl    time.Duration
	group  singleflight.Group
}

func newDailyCache[T any](prefix string, c cache.Cache, ttl time.Duration) *dailyCache[T] {
	return &dailyCache[T]{prefix: prefix, cache: c, ttl: ttl}
}

func (d *dailyCache[T]) key(date time.Time) string {
	return d.prefix + ":" + model.DateKey(date)
}

// get returns the cached value for date, or calls load and caches its result.
// load reports whether the value is real so fallbacks get a shorter TTL.
//
// The load is shared by every caller waiting on the same date, so it runs
// detached from ctx. A caller whose ctx ends stops waiting and gets ctx.Err();
// the load carries on and fills the cache for the others.
func (d *dailyCache[T]) get(ctx context.Context, date time.Time, load func(ctx context.Context) (*T, bool)) (*T, error) {
	key := d.key(date)

	if data, ok, err := d.cache.Get(ctx, key); err != nil {
		slog.Warn("cache read failed", "key", key, "error", err)
	} else if ok {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			return &v, nil
		}
		slog.Warn("discarding undecodable cache entry", "key", key)
	}

	ch := d.group.DoChan(key, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		v, isReal := load(loadCtx)
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}

		// A fallback produced because the load ran out of time says nothing
		// about the endpoints, so it is served but not cached.
		if !isReal && loadCtx.Err() != nil {
			slog.Warn("puzzle load timed out, not caching fallback", "key", key)
			return data, nil
		}

		ttl := d.ttl
		if !isReal && ttl > fallbackTTL {
			ttl = fallbackTTL
		}
		if err := d.cache.Set(loadCtx, key, data, ttl); err != nil {
			slog.Warn("cache write failed", "key", key, "error", err)
		}
		return data, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.Err != nil {
		return nil, res.Err
	}

	var v T
	if err := json.Unmarshal(res.Val.([]byte), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (d *dailyCache[T]) forget(ctx context.Context, date time.Time) error {
	return d.cache.Delete(ctx, d.key(date))
}

// fetchFirst tries each source in order under the retry policy and returns
// the first successful result.
func fetchFirst[S puzzle.Source, T any](ctx context.Context, kind string, sources []S, retry puzzle.RetryPolicy, fetch func(ctx context.Context, s S) (*T, error)) (*T, bool) {
	for _, src := range sources {
		var result *T
		err := retry.Do(ctx, func(ctx context.Context) error {
			v, err := fetch(ctx, src)
			if err != nil {
				return err
			}
			result = v
			return nil
		})
		if err == nil {
			return result, true
		}
		slog.Warn("puzzle source failed", "kind", kind, "source", src.Name(), "error", err)
		if ctx.Err() != nil {
			break
		}
	}
	return nil, false
}

// probe hits every source concurrently once, without retries, giving each
// check at most timeout.
func probe[S puzzle.Source](ctx context.Context, sources []S, now time.Time, timeout time.Duration, check func(ctx context.Context, s S) error) model.ConnectionReport {
	report := model.ConnectionReport{
		CheckedAt: now,
		Endpoints: make([]model.EndpointCheck, len(sources)),
	}

	var g errgroup.Group
	for i, src := range sources {
		g.Go(func() error {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			start := time.Now()
			err := check(ctx, src)
			result := model.EndpointCheck{
				Name:      src.Name(),
				URL:       src.Endpoint(),
				OK:        err == nil,
				LatencyMS: time.Since(start).Milliseconds(),
			}
			if err != nil {
				result.Error = err.Error()
			}
			report.Endpoints[i] = result
			return nil
		})
	}
	_ = g.Wait()

	for _, e := range report.Endpoints {
		if e.OK {
			report.OK = true
			break
		}
	}
	return report
}

func checkLevel(level int) error {
	if level < MinHintLevel || level > MaxHintLevel {
		return fmt.Errorf("%w: got %d", ErrInvalidLevel, level)
	}
	return nil
}
