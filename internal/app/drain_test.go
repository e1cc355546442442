package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amosoni/Wordle-Hint-sub001/internal/article"
	"github.com/amosoni/Wordle-Hint-sub001/internal/model"
	"github.com/go-playground/assert/v2"
)

type memQueue struct {
	items []model.GenerationRequest
	dead  []model.GenerationRequest
}

func (q *memQueue) Push(ctx context.Context, req model.GenerationRequest) error {
	q.items = append([]model.GenerationRequest{req}, q.items...)
	return nil
}

func (q *memQueue) Pop(ctx context.Context, timeout time.Duration) (*model.GenerationRequest, error) {
	if len(q.items) == 0 {
		return nil, nil
	}
	last := q.items[len(q.items)-1]
	q.items = q.items[:len(q.items)-1]
	return &last, nil
}

func (q *memQueue) DeadLetter(ctx context.Context, req model.GenerationRequest) error {
	q.dead = append(q.dead, req)
	return nil
}

type fakeGenerator struct {
	failWords map[string]bool
	calls     []string
}

func (g *fakeGenerator) Generate(ctx context.Context, req article.GenerateRequest) (*article.GenerateResult, error) {
	g.calls = append(g.calls, req.Word)
	if g.failWords[req.Word] {
		return nil, errors.New("llm unavailable")
	}
	return &article.GenerateResult{Word: req.Word, Created: 3}, nil
}

func TestDrainer_ProcessesInOrder(t *testing.T) {
	q := &memQueue{}
	ctx := context.Background()
	_ = q.Push(ctx, model.GenerationRequest{Word: "crane"})
	_ = q.Push(ctx, model.GenerationRequest{Word: "slate"})

	gen := &fakeGenerator{}
	d := NewDrainer(q, gen, time.Millisecond)

	stats, err := d.Run(ctx)
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, stats.Processed)
	assert.Equal(t, []string{"crane", "slate"}, gen.calls)
}

func TestDrainer_RetriesThenDeadLetters(t *testing.T) {
	q := &memQueue{}
	ctx := context.Background()
	_ = q.Push(ctx, model.GenerationRequest{Word: "zesty"})

	gen := &fakeGenerator{failWords: map[string]bool{"zesty": true}}
	d := NewDrainer(q, gen, time.Millisecond)
	d.RetryDelay = 0

	stats, err := d.Run(ctx)
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, stats.Processed)
	assert.Equal(t, 2, stats.Retried)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 3, len(gen.calls))
	assert.Equal(t, 1, len(q.dead))
	assert.Equal(t, 3, q.dead[0].Attempts)
}

func TestDrainer_StopsOnCancel(t *testing.T) {
	q := &memQueue{}
	ctx, cancel := context.WithCancel(context.Background())
	_ = q.Push(ctx, model.GenerationRequest{Word: "crane"})
	cancel()

	gen := &fakeGenerator{}
	stats, err := NewDrainer(q, gen, time.Millisecond).Run(ctx)
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, stats.Processed)
	assert.Equal(t, 0, len(gen.calls))
}
