package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/amosoni/Wordle-Hint-sub001/internal/app"
	"github.com/amosoni/Wordle-Hint-sub001/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "generator",
	Short: "Generate and maintain Wordle hint articles",
	Long: `generator runs the article jobs outside the api process: one-off or forced
generation for a word, the daily ensure step, cache cleanup, and draining the
redis generation queue filled by the webhook.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (defaults to $CONFIG_PATH)")
}

func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withApp loads config, builds the app and hands it to fn with a context
// that is cancelled on SIGINT/SIGTERM.
func withApp(fn func(ctx context.Context, a *app.App) error) error {
	path := configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("error initializing app: %v", err)
	}
	defer a.Close()

	return fn(ctx, a)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
