package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"novelcore/internal/app"
	"novelcore/internal/config"
	"novelcore/internal/http"
	"novelcore/internal/metrics"
	"novelcore/internal/syncer"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API serves full-text search, index maintenance, library edits and
// remote sync for a local novel-writing workspace.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Novelcore API
//   description: |
//     Local API for searching chapters and ideas, keeping the search index fresh,
//     editing novels and syncing them with a remote backend.
//   version: 1.0.0
// schemes:
//   - http
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := metrics.NewRegistry()

	a, err := app.Open(ctx, cfg, reg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer func() {
		_ = a.Close()
	}()

	if err := a.PrepareIndex(ctx); err != nil {
		slog.Error("Failed to prepare search index", "error", err)
	}

	if a.Syncer != nil && cfg.SyncInterval > 0 {
		go syncer.NewRunner(a.Syncer, cfg.SyncInterval).Run(ctx)
	}

	// Create router with dependencies
	deps := &http.Deps{
		Searcher:     a.Searcher,
		Index:        a.Indexer,
		Library:      a.Library,
		Syncer:       a.Syncer,
		DB:           a.DB,
		IndexStatus:  a.Index,
		Metrics:      reg,
		DefaultLimit: cfg.SearchDefaultLimit,
		MaxLimit:     cfg.SearchMaxLimit,
	}
	router := http.NewRouter(deps)

	// Start API server
	srv := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("API server shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting API server", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		log.Fatalf("API server failed to start: %v", err)
	}
	slog.Info("API server stopped")
}
