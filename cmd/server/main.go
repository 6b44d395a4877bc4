package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spacesedan/emotiflow/config"
	"github.com/spacesedan/emotiflow/internal/analysis"
	"github.com/spacesedan/emotiflow/internal/cache"
	"github.com/spacesedan/emotiflow/internal/classifiers"
	"github.com/spacesedan/emotiflow/internal/clients"
	"github.com/spacesedan/emotiflow/internal/explain"
	"github.com/spacesedan/emotiflow/internal/logging"
	"github.com/spacesedan/emotiflow/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := classifiers.NewSession(cfg.ModelDir)
	if err != nil {
		slog.Error("[Main] Failed to initialize model session", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := session.Destroy(); err != nil {
			slog.Warn("[Main] Failed to destroy model session", slog.String("error", err.Error()))
		}
	}()

	var sentiment analysis.SentimentClassifier
	switch cfg.SentimentBackend {
	case "vader":
		slog.Info("[Main] Using VADER lexicon sentiment backend")
		sentiment = classifiers.NewVaderSentimentClassifier()
	default:
		sentiment = session.SentimentClassifier(cfg.NeutralThreshold)
	}

	generator := explain.NewGenerator(clients.GetAIClient().Client, cfg.OpenAIModel, cfg.GenerationTimeout)

	var resultCache *cache.ResultCache
	if cfg.ValkeyAddress != "" {
		resultCache, err = cache.New(cache.Options{
			InitAddress: cfg.ValkeyAddress,
			Password:    cfg.ValkeyPassword,
			UseTLS:      cfg.ValkeyTLS,
			TTL:         cfg.CacheTTL,
		})
		if err != nil {
			slog.Warn("[Main] Result cache unavailable, continuing without it",
				slog.String("error", err.Error()))
			resultCache = nil
		} else {
			defer resultCache.Close()
		}
	}

	orchestrator := analysis.NewOrchestrator(sentiment, session.EmotionClassifier(), generator, analysis.DefaultTopK)

	healthy := &atomic.Bool{}
	healthy.Store(true)

	handler := server.NewHandler(orchestrator, resultCache, healthy)
	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: handler.Routes(),
	}

	go func() {
		slog.Info("[Main] Listening", slog.String("address", cfg.ServerAddress))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] Server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	healthy.Store(false)
	slog.Info("[Main] Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("[Main] Graceful shutdown failed", slog.String("error", err.Error()))
	}
}
