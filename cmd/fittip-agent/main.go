package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/telex-agents/fittip/agent"
	"github.com/telex-agents/fittip/config"
	"github.com/telex-agents/fittip/llm"
	"github.com/telex-agents/fittip/scheduler"
	"github.com/telex-agents/fittip/tips"
	"github.com/telex-agents/fittip/transport"
)

func main() {
	// --- Basic Setup ---
	loggerConfig := zap.NewProductionConfig()
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := loggerConfig.Build()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Tip Cache ---
	store := tips.NewStore(logger, cfg.CacheFile, cfg.HistorySize)
	if err := store.Ensure(); err != nil {
		logger.Fatal("Failed to initialize cache file", zap.Error(err))
	}

	// --- Generation Client ---
	provider, err := buildProvider(ctx, logger, cfg)
	if err != nil {
		logger.Fatal("Failed to create LLM provider", zap.Error(err))
	}
	client := llm.NewClient(logger, provider, llm.Options{
		MinCallInterval: cfg.MinCallInterval,
		Timeout:         cfg.GenTimeout,
		MaxLength:       cfg.MaxTipLength,
	})

	// --- Dispatcher, HTTP Surface, Daily Job ---
	dispatcher := agent.NewDispatcher(logger, store, client)

	mux := http.NewServeMux()
	transport.NewHandler(logger, dispatcher).Register(mux)

	daily, err := scheduler.New(logger, cfg.DailyTipHourUTC, dispatcher.EnsureDailyTip)
	if err != nil {
		logger.Fatal("Failed to create scheduler", zap.Error(err))
	}
	daily.Start(ctx)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Starting fitness tip agent",
			zap.String("address", cfg.ListenAddr), zap.String("provider", cfg.Provider))
		errChan <- srv.ListenAndServe()
	}()

	// --- Graceful Shutdown ---
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-signalCh:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server listener error", zap.Error(err))
		}
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server shutdown was not clean", zap.Error(err))
	}

	select {
	case <-daily.Stopped():
	case <-shutdownCtx.Done():
		logger.Warn("Shutdown grace period timed out waiting for scheduler")
	}

	logger.Info("Server stopped")
}

// buildProvider selects the configured generation backend.
func buildProvider(ctx context.Context, logger *zap.Logger, cfg *config.Config) (llm.Provider, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		logger.Info("Using OpenAI-compatible provider", zap.String("model", cfg.ModelName))
		return llm.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ModelName), nil
	default:
		logger.Info("Using Gemini provider", zap.String("model", cfg.ModelName))
		return llm.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.ModelName)
	}
}
