// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

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

	"github.com/spf13/cobra"

	"github.com/tomtom215/bookrec/internal/api"
	"github.com/tomtom215/bookrec/internal/config"
	"github.com/tomtom215/bookrec/internal/logging"
	"github.com/tomtom215/bookrec/internal/metrics"
	"github.com/tomtom215/bookrec/internal/supervisor"
	"github.com/tomtom215/bookrec/internal/supervisor/services"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Build the engine and serve the HTTP API",
		Long: `Start the HTTP API and build the recommendation engine in the
background. Data endpoints return 503 until the build finishes;
/api/v1/health/ready reports when it has.

A malformed or missing input file stops the server with an error.`,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	metrics.SetAppInfo(version)
	logging.Info().
		Str("version", version).
		Str("commit", commit).
		Str("config", cfg.String()).
		Msg("Starting bookrec")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A fatal engine build cancels the whole tree with its error as cause.
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	handler := api.NewHandler(version, nil)
	server := newHTTPServer(cfg, handler)

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("creating supervisor tree: %w", err)
	}

	engineLogger := logging.WithComponent("engine")
	tree.AddEngineService(services.NewEngineService(
		newEngineBuilder(cfg, engineLogger),
		handler.SetEngine,
		cancel,
		engineLogger,
	))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	errCh := tree.ServeBackground(ctx)
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, context.Canceled) {
		return fmt.Errorf("engine build failed: %w", cause)
	}

	logging.Info().Msg("Stopped gracefully")
	return nil
}

func newHTTPServer(cfg *config.Config, handler *api.Handler) *http.Server {
	chiMiddleware := api.NewChiMiddlewareFromSecurity(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	router := api.NewRouter(handler, chiMiddleware, cfg.Server.Timeout)

	return &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
}
