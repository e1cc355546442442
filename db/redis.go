package db

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/amosoni/Wordle-Hint-sub001/internal/model"
	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

const (
	GenerateQueueKey = "wordlehint:queue:generate"
	DeadLetterKey    = "wordlehint:queue:failed"
)

func ConnectRedis(ctx context.Context, redisURL string) error {
	if redisURL == "" {
		return errors.New("redis url is empty")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	Redis = redis.NewClient(opt)

	_, err = Redis.Ping(ctx).Result()
	return err
}

func CloseRedis() {
	if Redis != nil {
		Redis.Close()
	}
}

// GenerationQueue is a Redis list of pending article generation requests.
// Producers LPUSH, consumers BRPOP, so requests are handled in arrival order.
type GenerationQueue struct {
	client *redis.Client
	key    string
}

func NewGenerationQueue(client *redis.Client) *GenerationQueue {
	return &GenerationQueue{client: client, key: GenerateQueueKey}
}

func (q *GenerationQueue) Push(ctx context.Context, req model.GenerationRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, data).Err()
}

// Pop blocks up to timeout. It returns nil, nil when the queue stayed empty.
func (q *GenerationQueue) Pop(ctx context.Context, timeout time.Duration) (*model.GenerationRequest, error) {
	result, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var req model.GenerationRequest
	if err := json.Unmarshal([]byte(result[1]), &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (q *GenerationQueue) DeadLetter(ctx context.Context, req model.GenerationRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, DeadLetterKey, data).Err()
}

func (q *GenerationQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}
