// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package services

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Reloader re-reads a served model. classify.Service satisfies it.
type Reloader interface {
	Reload(ctx context.Context) error
}

// ModelReloadService reloads the custom model each time a signal arrives
// on its trigger channel, typically SIGHUP.
type ModelReloadService struct {
	reloader Reloader
	trigger  <-chan os.Signal
	timeout  time.Duration
	logger   zerolog.Logger
	name     string
}

// NewModelReloadService creates the service. Each reload gets at most
// timeout; a non-positive timeout becomes one minute.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewModelReloadService(r Reloader, trigger <-chan os.Signal, timeout time.Duration, logger zerolog.Logger) *ModelReloadService {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &ModelReloadService{
		reloader: r,
		trigger:  trigger,
		timeout:  timeout,
		logger:   logger.With().Str("service", "model-reload").Logger(),
		name:     "model-reload",
	}
}

// Serve implements suture.Service. Reload failures are logged and the
// service keeps waiting; the previous model keeps serving.
func (s *ModelReloadService) Serve(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case sig, ok := <-s.trigger:
			if !ok {
				<-ctx.Done()
				return ctx.Err()
			}
			s.reload(ctx, sig)
		}
	}
}

func (s *ModelReloadService) reload(ctx context.Context, sig os.Signal) {
	reloadCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	s.logger.Info().Stringer("signal", sig).Msg("Reloading custom model")
	if err := s.reloader.Reload(reloadCtx); err != nil {
		s.logger.Warn().Err(err).Msg("Custom model reload failed")
		return
	}
	s.logger.Info().Dur("duration", time.Since(start)).Msg("Custom model reloaded")
}

func (s *ModelReloadService) String() string {
	return s.name
}
