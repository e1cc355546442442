package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amosoni/Wordle-Hint-sub001/internal/app"
	"github.com/amosoni/Wordle-Hint-sub001/internal/config"
	"github.com/amosoni/Wordle-Hint-sub001/internal/handler"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 10 * time.Second

func main() {

	godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
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

	// The queue is nil without redis; keep the interface nil too.
	var queue handler.GenerationQueue
	if a.Queue != nil {
		queue = a.Queue
	}

	handlers := handler.Handlers{
		Articles: handler.NewArticleHandler(a.Articles),
		Games:    handler.NewGameHandler(a.Games),
		Puzzles:  handler.NewPuzzleHandler(a.Wordle, a.Connections, a.Strands),
		Admin:    handler.NewAdminHandler(a.Scheduler, a.Articles),
		Webhook:  handler.NewWebhookHandler(a.Articles, a.Scheduler, queue),
		Secret:   cfg.WebhookSecret,
	}
	if cfg.WebhookSecret == "" {
		slog.Warn("WEBHOOK_SECRET not set, protected routes only accept loopback requests")
	}

	r := gin.Default()
	if err := r.SetTrustedProxies(nil); err != nil {
		log.Fatalf("error configuring trusted proxies: %v", err)
	}

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "X-Webhook-Token"},
	}))

	handler.RegisterRoutes(r, handlers)

	if err := a.Scheduler.Start(); err != nil {
		log.Fatalf("error starting scheduler: %v", err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("api listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("error starting server: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("error shutting down server", "error", err)
	}
	if err := a.Scheduler.Stop(shutdownTimeout); err != nil {
		slog.Error("error stopping scheduler", "error", err)
	}
}
