package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/amosoni/Wordle-Hint-sub001/internal/article"
	"github.com/amosoni/Wordle-Hint-sub001/internal/model"
)

const maxGenerationAttempts = 3

type Queue interface {
	Push(ctx context.Context, req model.GenerationRequest) error
	Pop(ctx context.Context, timeout time.Duration) (*model.GenerationRequest, error)
	DeadLetter(ctx context.Context, req model.GenerationRequest) error
}

type Generator interface {
	Generate(ctx context.Context, req article.GenerateRequest) (*article.GenerateResult, error)
}

type DrainStats struct {
	Processed int
	Retried   int
	Failed    int
}

// Drainer works through queued generation requests. A failed request goes
// back on the queue until it has been tried maxGenerationAttempts times, then
// moves to the dead letter list.
type Drainer struct {
	queue     Queue
	generator Generator
	wait      time.Duration
	// RetryDelay is slept after a failure so a flaky LLM gets a moment.
	RetryDelay time.Duration
}

func NewDrainer(queue Queue, generator Generator, wait time.Duration) *Drainer {
	return &Drainer{queue: queue, generator: generator, wait: wait, RetryDelay: 5 * time.Second}
}

// Run pops until the queue stays empty for the wait period or ctx is done.
func (d *Drainer) Run(ctx context.Context) (DrainStats, error) {
	var stats DrainStats

	for {
		if ctx.Err() != nil {
			return stats, nil
		}

		req, err := d.queue.Pop(ctx, d.wait)
		if err != nil {
			if ctx.Err() != nil {
				return stats, nil
			}
			slog.Error("error popping from generation queue", "error", err)
			return stats, err
		}
		if req == nil {
			return stats, nil
		}

		req.Attempts++
		res, err := d.generator.Generate(ctx, article.GenerateRequest{Word: req.Word, Date: req.Date, Force: req.Force})
		if err == nil {
			stats.Processed++
			slog.Info("queued generation done", "word", res.Word, "date", res.Date, "created", res.Created, "regenerated", res.Regenerated)
			continue
		}

		slog.Error("queued generation failed", "word", req.Word, "attempts", req.Attempts, "error", err)

		if req.Attempts >= maxGenerationAttempts {
			stats.Failed++
			slog.Warn("generation request exceeded max retries, moving to dead letter", "word", req.Word, "attempts", req.Attempts)
			if err := d.queue.DeadLetter(ctx, *req); err != nil {
				slog.Error("error writing dead letter", "error", err)
			}
			continue
		}

		stats.Retried++
		if err := d.queue.Push(ctx, *req); err != nil {
			slog.Error("error requeueing generation request", "error", err)
		}

		select {
		case <-time.After(d.RetryDelay):
		case <-ctx.Done():
			return stats, nil
		}
	}
}
