package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amosoni/Wordle-Hint-sub001/internal/app"

	"github.com/spf13/cobra"
)

var drainWait time.Duration

var drainCmd = &cobra.Command{
	Use:   "drain",
	Short: "Process generation requests queued in redis",
	Long:  "Pop queued generation requests until the queue stays empty for --wait. Failed requests are retried up to 3 times, then dead-lettered.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			if a.Queue == nil {
				return errors.New("drain requires REDIS_URL")
			}

			before, err := a.Queue.Len(ctx)
			if err != nil {
				return err
			}
			slog.Info("draining generation queue", "pending", before)

			stats, err := app.NewDrainer(a.Queue, a.Articles, drainWait).Run(ctx)
			slog.Info("drain finished", "processed", stats.Processed, "retried", stats.Retried, "failed", stats.Failed)
			return err
		})
	},
}

func init() {
	drainCmd.Flags().DurationVar(&drainWait, "wait", 5*time.Second, "stop after the queue has been empty this long (minimum 1s)")
	rootCmd.AddCommand(drainCmd)
}
