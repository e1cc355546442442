// Package cache provides the TTL key/value caches that sit in front of the
// external puzzle endpoints. Entries expire lazily on read and are swept in
// bulk by Cleanup, which the scheduler calls periodically.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under a TTL.
type Cache interface {
	// Get returns ok=false for missing or expired keys.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Cleanup evicts expired entries and reports how many were removed.
	Cleanup(ctx context.Context) (int, error)
}
