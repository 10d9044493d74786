// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

// Package main is the entry point for the StudioPulse server.
//
// StudioPulse is a retention and revenue analytics engine for subscription
// studio businesses. It ingests subscription lifecycle events, visit events,
// and revenue period summaries into an embedded DuckDB store, and serves a
// single aggregate dashboard: churn and survival curves, revenue
// projections, acquisition cohorts, and the non-subscriber conversion pool.
//
// Startup order:
//
//  1. Configuration: layered defaults, config file, environment (koanf)
//  2. Logging: zerolog, JSON or console format
//  3. Database: embedded DuckDB record store
//  4. Aggregation engine and response cache
//  5. Supervisor tree: cache janitor (data layer), HTTP server (api layer)
//
// The server shuts down gracefully on SIGINT and SIGTERM: new connections
// stop, in-flight requests get the configured drain window, and the
// database checkpoints on close.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/studiopulse/studiopulse/internal/analytics"
	"github.com/studiopulse/studiopulse/internal/api"
	"github.com/studiopulse/studiopulse/internal/cache"
	"github.com/studiopulse/studiopulse/internal/config"
	"github.com/studiopulse/studiopulse/internal/database"
	"github.com/studiopulse/studiopulse/internal/logging"
	"github.com/studiopulse/studiopulse/internal/supervisor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().Msg("StudioPulse starting")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Str("path", cfg.Database.Path).Msg("Database initialized")

	responseCache := cache.New(cfg.API.CacheTTL)
	aggregator := analytics.NewAggregator(db, &cfg.Engine)
	handler := api.NewHandler(db, responseCache, aggregator, cfg)
	router := api.NewRouter(handler, &cfg.API)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// sutureslog needs an slog.Logger; bridge it from zerolog.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddDataService(supervisor.NewCacheJanitor(responseCache, time.Minute))
	tree.AddAPIService(supervisor.NewHTTPService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("StudioPulse stopped gracefully")
}
