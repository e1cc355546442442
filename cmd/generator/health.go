package main

import (
	"context"
	"errors"
	"time"

	"github.com/amosoni/Wordle-Hint-sub001/internal/app"
	"github.com/amosoni/Wordle-Hint-sub001/internal/model"

	"github.com/spf13/cobra"
)

type healthOutput struct {
	Status    string                 `json:"status"`
	CheckedAt time.Time              `json:"checked_at"`
	Storage   string                 `json:"storage"`
	Wordle    model.ConnectionReport `json:"wordle"`
}

var errUnhealthy = errors.New("unhealthy")

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check storage and the Wordle endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			out := healthOutput{Status: "healthy", CheckedAt: time.Now(), Storage: "ok"}

			if err := a.Articles.Ping(ctx); err != nil {
				out.Status = "unhealthy"
				out.Storage = err.Error()
			}

			out.Wordle = a.Wordle.TestConnection(ctx)
			if !out.Wordle.OK && out.Status == "healthy" {
				out.Status = "degraded"
			}

			if err := printJSON(out); err != nil {
				return err
			}
			if out.Status == "unhealthy" {
				return errUnhealthy
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
