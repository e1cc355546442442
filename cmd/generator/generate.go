package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/amosoni/Wordle-Hint-sub001/internal/app"
	"github.com/amosoni/Wordle-Hint-sub001/internal/article"
	"github.com/amosoni/Wordle-Hint-sub001/internal/scheduler"
	"github.com/amosoni/Wordle-Hint-sub001/internal/service"

	"github.com/spf13/cobra"
)

var (
	generateWord  string
	generateDate  string
	generateForce bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the article set for a word",
	Long:  "Build the hints, answer and analysis articles. Without --word the day's Wordle answer is used.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			date, err := service.ParseDate(generateDate, time.Now())
			if err != nil {
				return err
			}

			res, err := a.Articles.Generate(ctx, article.GenerateRequest{
				Word:  generateWord,
				Date:  date,
				Force: generateForce,
			})
			if err != nil {
				slog.Error("error generating articles", "word", generateWord, "error", err)
				return err
			}

			slog.Info("generation done", "word", res.Word, "date", res.Date, "created", res.Created, "regenerated", res.Regenerated, "existing", res.Existing)
			return printJSON(res)
		})
	},
}

var ensureTodayCmd = &cobra.Command{
	Use:   "ensure-today",
	Short: "Create today's articles if they are missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			created, err := a.Articles.EnsureToday(ctx)
			if err != nil {
				slog.Error("error ensuring today's articles", "error", err)
				return err
			}
			slog.Info("ensure-today done", "created", created)
			return nil
		})
	},
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Sweep redis puzzle cache keys that have no expiry",
	Long:  "Only useful with REDIS_URL: the in-memory cache belongs to the api process and is swept by its scheduler.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			if a.Config.RedisURL == "" {
				slog.Info("no redis configured, the in-memory cache is swept by the api scheduler")
				return nil
			}
			return a.Scheduler.Trigger(ctx, scheduler.JobCacheCleanup)
		})
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateWord, "word", "", "five-letter word (default: the day's answer)")
	generateCmd.Flags().StringVar(&generateDate, "date", "", "puzzle date, YYYY-MM-DD (default: today)")
	generateCmd.Flags().BoolVar(&generateForce, "force", false, "rewrite articles that already exist")

	rootCmd.AddCommand(generateCmd, ensureTodayCmd, cleanupCmd)
}
