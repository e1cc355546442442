package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "wordlehint:cache:"

// Redis is a Cache shared between processes. Expiry is enforced by the
// server; Cleanup only sweeps keys that were left without one.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, redisKeyPrefix+key, value, ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, redisKeyPrefix+key).Err()
}

// Cleanup deletes cache keys that have no expiry, such as entries set with a
// zero ttl. Everything the services cache is meant to age out.
func (r *Redis) Cleanup(ctx context.Context) (int, error) {
	removed := 0
	iter := r.client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		ttl, err := r.client.TTL(ctx, key).Result()
		if err != nil {
			return removed, err
		}
		// -1 means the key exists without an expiry.
		if ttl != -1 {
			continue
		}
		n, err := r.client.Del(ctx, key).Result()
		if err != nil {
			return removed, err
		}
		removed += int(n)
	}
	return removed, iter.Err()
}
