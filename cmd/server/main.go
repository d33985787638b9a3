// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

// Package main is the entry point for the Praedictus server.
//
// Praedictus is a self-hosted employee attrition prediction service.
// It trains gradient-boosted tree, random forest, or logistic
// regression classifiers on employee records, scores workforces into
// risk tiers, estimates per-employee feature attributions, and
// produces ranked retention recommendations.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered settings from defaults, config.yaml, and
//     PRAEDICTUS_-prefixed environment variables (Koanf v2)
//  2. Logging: structured zerolog output (json or console)
//  3. Model store: BadgerDB-backed persistence of trained bundles
//  4. HTTP API: Chi router with CORS, rate limiting, optional JWT auth
//  5. Supervisor tree: suture-managed storage and API layers
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting new connections, waits for in-flight requests up to the
// configured shutdown timeout, then closes the model store.
//
// # Example Usage
//
// Development mode without authentication:
//
//	export PRAEDICTUS_AUTH_MODE=none
//	export PRAEDICTUS_STORE_PATH=/tmp/praedictus
//	./praedictus
//
// Production mode with JWT auth:
//
//	export PRAEDICTUS_AUTH_MODE=jwt
//	export PRAEDICTUS_JWT_SECRET=<32+ character secret>
//	./praedictus
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/praedictus/internal/api"
	"github.com/tomtom215/praedictus/internal/config"
	"github.com/tomtom215/praedictus/internal/logging"
	"github.com/tomtom215/praedictus/internal/store"
	"github.com/tomtom215/praedictus/internal/supervisor"
	"github.com/tomtom215/praedictus/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config not yet available; the default logger applies.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	logging.Info().
		Str("store_path", cfg.Store.Path).
		Str("auth_mode", cfg.Security.AuthMode).
		Str("default_algorithm", cfg.Training.DefaultAlgorithm).
		Msg("Configuration loaded")

	st, err := store.Open(store.Config{
		Path:     cfg.Store.Path,
		InMemory: cfg.Store.InMemory,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open model store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing model store")
		}
	}()

	handler := api.NewHandler(st, cfg.Training)
	middleware := api.NewMiddleware(api.MiddlewareConfig{
		CORSAllowedOrigins: cfg.Security.CORSOrigins,
		RateLimitRequests:  cfg.Security.RateLimitReqs,
		RateLimitWindow:    cfg.Security.RateLimitWindow,
		RateLimitDisabled:  cfg.Security.RateLimitDisabled,
		AuthMode:           cfg.Security.AuthMode,
		JWTSecret:          cfg.Security.JWTSecret,
	})
	router := api.NewRouter(handler, middleware, cfg.Server.MaxBodyBytes)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})

	if !cfg.Store.InMemory {
		tree.AddStorageService(services.NewStoreGCService(st, cfg.Store.GCInterval))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
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

	logging.Info().Msg("Application stopped gracefully")
}
