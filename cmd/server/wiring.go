// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/flipitnews/internal/classify"
	"github.com/tomtom215/flipitnews/internal/config"
	"github.com/tomtom215/flipitnews/internal/modelstore"
)

// zeroShotOptions maps the zero-shot configuration onto classifier options.
// Nil means the strategy is disabled.
func zeroShotOptions(cfg *config.ZeroShotConfig) *classify.ZeroShotConfig {
	if !cfg.Enabled {
		return nil
	}
	return &classify.ZeroShotConfig{
		URL:               cfg.URL,
		Model:             cfg.Model,
		APIToken:          cfg.APIToken,
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
		BreakerFailures:   cfg.BreakerFailures,
		BreakerTimeout:    cfg.BreakerTimeout,
	}
}

// classifierOptions builds the classification service options. A nil store
// disables the custom strategy; a nil publisher disables prediction events.
func classifierOptions(cfg *config.Config, store modelstore.Store, pub classify.Publisher) (classify.Options, error) {
	opts := classify.Options{
		Store:     store,
		ZeroShot:  zeroShotOptions(&cfg.ZeroShot),
		Rules:     cfg.Rules.Enabled,
		Publisher: pub,
	}
	if cfg.Prediction.DefaultStrategy != "" {
		st, err := classify.ParseStrategy(cfg.Prediction.DefaultStrategy)
		if err != nil {
			return classify.Options{}, fmt.Errorf("prediction.default_strategy: %w", err)
		}
		opts.DefaultStrategy = st
	}
	return opts, nil
}

// newHTTPServer applies the server timeouts to handler.
func newHTTPServer(cfg *config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Timeout,
		IdleTimeout:       60 * time.Second,
	}
}
