package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/amosoni/Wordle-Hint-sub001/internal/model"
)

const (
	JobDailyGeneration = "daily-generation"
	JobCacheCleanup    = "cache-cleanup"
	JobWordleRefresh   = "wordle-refresh"
	JobHealthCheck     = "health-check"
)

// dailyMaxAge leaves two hours of slack on top of the 24h cycle.
const dailyMaxAge = 26 * time.Hour

type Generator interface {
	EnsureToday(ctx context.Context) (bool, error)
}

type Refresher interface {
	Refresh(ctx context.Context) (*model.WordleDailyData, error)
}

type Cleaner interface {
	Cleanup(ctx context.Context) (int, error)
}

type JobsConfig struct {
	GenerationHour   int
	GenerationMinute int
	Location         *time.Location
	CleanupInterval  time.Duration
	RefreshInterval  time.Duration
	HealthInterval   time.Duration
}

// RegisterDefaultJobs adds the four site jobs to s.
func RegisterDefaultJobs(s *Scheduler, cfg JobsConfig, gen Generator, wordle Refresher, cache Cleaner) error {
	jobs := []Job{
		{
			Name:       JobDailyGeneration,
			Schedule:   Daily(cfg.GenerationHour, cfg.GenerationMinute, cfg.Location),
			MaxAge:     dailyMaxAge,
			RunOnStart: true,
			Action: func(ctx context.Context) error {
				created, err := gen.EnsureToday(ctx)
				if err != nil {
					return err
				}
				slog.Info("daily generation done", "created", created)
				return nil
			},
		},
		{
			Name:     JobCacheCleanup,
			Schedule: Every(cfg.CleanupInterval),
			Action: func(ctx context.Context) error {
				n, err := cache.Cleanup(ctx)
				if err != nil {
					return err
				}
				slog.Info("cache cleanup done", "evicted", n)
				return nil
			},
		},
		{
			Name:     JobWordleRefresh,
			Schedule: Every(cfg.RefreshInterval),
			Action: func(ctx context.Context) error {
				data, err := wordle.Refresh(ctx)
				if err != nil {
					return err
				}
				slog.Info("wordle refreshed", "number", data.Number, "source", data.Source, "is_real", data.IsReal)
				return nil
			},
		},
		{
			Name:     JobHealthCheck,
			Schedule: Every(cfg.HealthInterval),
			Action: func(ctx context.Context) error {
				report := s.Health()
				if report.Status != model.HealthOK {
					for _, j := range report.Jobs {
						if !j.OK {
							slog.Warn("job unhealthy", "job", j.Name, "reason", j.Reason)
						}
					}
				}
				return nil
			},
		},
	}

	for _, job := range jobs {
		if err := s.Add(job); err != nil {
			return err
		}
	}
	return nil
}
