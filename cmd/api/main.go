// Command api is the NHL Draft Analytics API server.
//
// Usage:
//
//	draft-api
//	API_PORT=8080 DATA_DIR=./data draft-api

// @title NHL Draft Analytics API
// @version 1.0.0
// @description Datasets derived from NHL draft history: draft-order rank correlations, team seasons with early-pick counts, per-pick aggregates and per-game histograms.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name NHL Draft Analytics
// @license.name MIT
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/albapepper/draft-analytics/internal/analytics"
	"github.com/albapepper/draft-analytics/internal/api"
	"github.com/albapepper/draft-analytics/internal/cache"
	"github.com/albapepper/draft-analytics/internal/config"
	"github.com/albapepper/draft-analytics/internal/metrics"

	_ "github.com/albapepper/draft-analytics/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Datasets
	svc, err := analytics.FromConfig(cfg, metrics.New(prometheus.DefaultRegisterer), logger)
	if err != nil {
		logger.Error("Failed to build analytics service", "error", err)
		os.Exit(1)
	}

	// Warm datasets; failures are retried on demand.
	go func() {
		result := svc.Summarize(ctx)
		if len(result.Errors) > 0 {
			for _, e := range result.Errors {
				logger.Warn("Warm-up dataset error", "error", e)
			}
		}
	}()

	// Initialize cache
	appCache := cache.New(ctx, cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Create router
	router := api.NewRouter(svc, appCache, cfg, nil, logger)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting NHL Draft Analytics API",
			"addr", addr,
			"environment", cfg.Environment,
			"data_dir", cfg.DataDir,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
