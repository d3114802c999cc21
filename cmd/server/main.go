// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	_ "github.com/tomtom215/flipitnews/docs" // Import generated swagger docs
	"github.com/tomtom215/flipitnews/internal/api"
	"github.com/tomtom215/flipitnews/internal/auth"
	"github.com/tomtom215/flipitnews/internal/classify"
	"github.com/tomtom215/flipitnews/internal/config"
	"github.com/tomtom215/flipitnews/internal/events"
	"github.com/tomtom215/flipitnews/internal/logging"
	"github.com/tomtom215/flipitnews/internal/metrics"
	"github.com/tomtom215/flipitnews/internal/modelstore"
	"github.com/tomtom215/flipitnews/internal/supervisor"
	"github.com/tomtom215/flipitnews/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
		Dir:    cfg.Logging.Dir,
	})
	defer func() {
		if err := logging.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing log files")
		}
	}()

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Msg("Starting FlipItNews")
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === SUPERVISOR TREE INITIALIZATION ===
	treeCfg := supervisor.DefaultTreeConfig()
	if cfg.Server.ShutdownTimeout > 0 {
		treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	}
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeCfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// === MODEL STORE ===
	store, err := modelstore.Open(cfg.Model.Store, cfg.Model.Path)
	if err != nil {
		// The custom strategy reports itself unavailable; the other
		// strategies still serve.
		logging.Warn().Err(err).Str("store", cfg.Model.Store).Msg("Failed to open model store, custom strategy disabled")
	} else {
		defer func() {
			if err := store.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing model store")
			}
		}()
	}

	// === PREDICTION EVENTS ===
	var publisher classify.Publisher
	if cfg.Events.Enabled {
		bus, err := events.NewBus(events.Config{
			Topic:      cfg.Events.Topic,
			BufferSize: cfg.Events.BufferSize,
			NATSURL:    cfg.Events.NATSURL,
		}, events.NewWatermillLogger(logging.WithComponent("events")))
		if err != nil {
			logging.Warn().Err(err).Msg("Failed to create event bus, prediction events disabled")
		} else {
			defer func() {
				if err := bus.Close(); err != nil {
					logging.Error().Err(err).Msg("Error closing event bus")
				}
			}()
			publisher = bus
			tree.AddMessagingService(events.NewPredictionLogConsumer(bus, logging.NewPredictionLogger(cfg.Prediction.LogTextLength)))
			logging.Info().Str("transport", bus.Transport()).Str("topic", bus.Topic()).Msg("Prediction event bus started")
		}
	}

	// === CLASSIFICATION ===
	opts, err := classifierOptions(cfg, store, publisher)
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid prediction configuration")
	}
	classifier := classify.NewService(opts)
	if err := classifier.Load(ctx); err != nil {
		logging.Warn().Err(err).Msg("Some classification strategies failed to load")
	}
	for st, status := range classifier.Status() {
		logging.Info().Str("strategy", string(st)).Str("state", string(status.State)).Str("model", status.Model).Msg("Strategy status")
	}

	// Model reloads on SIGHUP go through the data layer.
	hupCh := make(chan os.Signal, 1)
	signal.Notify(hupCh, syscall.SIGHUP)
	defer signal.Stop(hupCh)
	tree.AddDataService(services.NewModelReloadService(classifier, hupCh, 0, logging.WithComponent("reload")))

	// === AUTHENTICATION ===
	tokens, err := auth.NewService(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize authentication")
	}
	if !tokens.Signed() {
		logging.Warn().Msg("JWT_SECRET not set, /token returns the static demo token")
	}

	// === HTTP API ===
	handler := api.NewHandler(api.HandlerConfig{
		Classifier: classifier,
		Tokens:     tokens,
		Version:    version,
	})
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromSecurity(&cfg.Security))
	server := newHTTPServer(&cfg.Server, router.SetupChi())

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
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
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
