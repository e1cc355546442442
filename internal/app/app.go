// Package app wires configuration, storage, caches and services together
// for the api server and the generator CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amosoni/Wordle-Hint-sub001/db"
	"github.com/amosoni/Wordle-Hint-sub001/internal/article"
	"github.com/amosoni/Wordle-Hint-sub001/internal/cache"
	"github.com/amosoni/Wordle-Hint-sub001/internal/config"
	"github.com/amosoni/Wordle-Hint-sub001/internal/game"
	"github.com/amosoni/Wordle-Hint-sub001/internal/repository"
	"github.com/amosoni/Wordle-Hint-sub001/internal/scheduler"
	"github.com/amosoni/Wordle-Hint-sub001/internal/service"
	"github.com/amosoni/Wordle-Hint-sub001/pkg/llm"
	"github.com/amosoni/Wordle-Hint-sub001/pkg/puzzle"
)

type App struct {
	Config      *config.Config
	Store       repository.ArticleStore
	Cache       cache.Cache
	Queue       *db.GenerationQueue
	Wordle      *service.WordleService
	Connections *service.ConnectionsService
	Strands     *service.StrandsService
	Articles    *article.Manager
	Games       *game.Manager
	Scheduler   *scheduler.Scheduler
}

// New connects to the configured backends and builds every service. Without
// DATABASE_URL articles live in JSON files under the data dir, and without
// REDIS_URL the cache is in memory and there is no generation queue.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	if cfg.DatabaseURL != "" {
		if err := db.Connect(cfg.DatabaseURL); err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		a.Store = repository.NewArticleRepository(db.DB)
		slog.Info("using postgres article store")
	} else {
		store, err := repository.NewFileArticleRepository(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("opening file store: %w", err)
		}
		a.Store = store
		slog.Info("using file article store", "dir", cfg.DataDir)
	}

	if cfg.RedisURL != "" {
		if err := db.ConnectRedis(ctx, cfg.RedisURL); err != nil {
			a.Close()
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		a.Cache = cache.NewRedis(db.Redis)
		a.Queue = db.NewGenerationQueue(db.Redis)
		slog.Info("using redis cache and generation queue")
	} else {
		a.Cache = cache.NewMemory()
	}

	retry := puzzle.RetryPolicy{
		Attempts:  cfg.HTTP.Retries,
		BaseDelay: cfg.HTTPBackoff(),
		Timeout:   cfg.HTTPTimeout(),
	}
	ttl := cfg.CacheTTLDuration()

	wordleSources, connectionsSources, strandsSources := buildSources(cfg)
	a.Wordle = service.NewWordleService(wordleSources, a.Cache, ttl, service.WithRetryPolicy(retry))
	a.Connections = service.NewConnectionsService(connectionsSources, a.Cache, ttl, service.WithRetryPolicy(retry))
	a.Strands = service.NewStrandsService(strandsSources, a.Cache, ttl, service.WithRetryPolicy(retry))

	writer, err := buildWriter(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Articles = article.NewManager(a.Store, a.Wordle, article.WithWriter(writer))

	games, err := game.NewManager()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Games = games

	hour, minute, err := config.ParseTimeOfDay(cfg.Scheduler.GenerationTime)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Scheduler = scheduler.New()
	err = scheduler.RegisterDefaultJobs(a.Scheduler, scheduler.JobsConfig{
		GenerationHour:   hour,
		GenerationMinute: minute,
		Location:         time.Local,
		CleanupInterval:  cfg.CleanupInterval(),
		RefreshInterval:  cfg.RefreshInterval(),
		HealthInterval:   cfg.HealthInterval(),
	}, a.Articles, a.Wordle, a.Cache)
	if err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

// Close releases database and redis connections.
func (a *App) Close() {
	db.CloseRedis()
	db.Close()
}

func buildSources(cfg *config.Config) ([]puzzle.WordleSource, []puzzle.ConnectionsSource, []puzzle.StrandsSource) {
	timeout := cfg.HTTPTimeout()

	var wordle []puzzle.WordleSource
	for _, e := range cfg.Endpoints.Wordle {
		switch e.Kind {
		case config.EndpointRSS:
			wordle = append(wordle, puzzle.NewRSSClient(e.Name, e.URL, timeout))
		default:
			wordle = append(wordle, puzzle.NewJSONClient(e.Name, e.URL, timeout))
		}
	}

	var connections []puzzle.ConnectionsSource
	for _, e := range cfg.Endpoints.Connections {
		connections = append(connections, puzzle.NewJSONClient(e.Name, e.URL, timeout))
	}

	var strands []puzzle.StrandsSource
	for _, e := range cfg.Endpoints.Strands {
		strands = append(strands, puzzle.NewJSONClient(e.Name, e.URL, timeout))
	}

	return wordle, connections, strands
}

// buildWriter picks the article writer. The template writer is used unless an
// LLM provider and key are configured.
func buildWriter(cfg *config.Config) (article.Writer, error) {
	if !cfg.LLMEnabled() {
		if cfg.LLM.Provider != "" {
			slog.Warn("llm provider set without api key, using templates", "provider", cfg.LLM.Provider)
		}
		return article.TemplateWriter{}, nil
	}

	var client llm.ArticleClient
	switch cfg.LLM.Provider {
	case "openai":
		client = llm.NewOpenAIClient(cfg.LLM.APIKey, cfg.LLM.Model)
	case "anthropic":
		client = llm.NewAnthropicClient(cfg.LLM.APIKey, cfg.LLM.Model)
	case "gemini":
		gemini, err := llm.NewGeminiClient(cfg.LLM.APIKey, cfg.LLM.Model)
		if err != nil {
			return nil, err
		}
		client = gemini
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}

	slog.Info("using llm article writer", "provider", cfg.LLM.Provider)
	return article.NewLLMWriter(client, article.TemplateWriter{}), nil
}
