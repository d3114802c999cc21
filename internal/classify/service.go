// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package classify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/flipitnews/internal/events"
	"github.com/tomtom215/flipitnews/internal/logging"
	"github.com/tomtom215/flipitnews/internal/metrics"
	"github.com/tomtom215/flipitnews/internal/modelstore"
)

// Publisher receives every served prediction.
type Publisher interface {
	Publish(ctx context.Context, ev events.PredictionEvent) error
}

// Options configures a Service. A strategy whose option is left zero is
// disabled and answers with ErrUnavailable.
type Options struct {
	// Store holds the custom pipeline. Nil disables the custom strategy.
	Store modelstore.Store

	// ZeroShot enables the zero-shot strategy when non-nil.
	ZeroShot *ZeroShotConfig

	// Rules enables the rules strategy.
	Rules bool

	// DefaultStrategy, when set, serves requests for any strategy that is
	// not loaded. Only StrategyRules is meaningful.
	DefaultStrategy Strategy

	// Publisher, when set, receives a PredictionEvent per prediction.
	Publisher Publisher
}

// StrategyStatus describes one strategy slot.
type StrategyStatus struct {
	State State  `json:"state"`
	Model string `json:"model,omitempty"`
	Error string `json:"error,omitempty"`
}

type slot struct {
	state      State
	classifier Classifier
	err        error
}

// Service owns the loaded strategies. Create it with NewService, call Load
// once at startup, then share it across handlers.
type Service struct {
	opts Options

	mu    sync.RWMutex
	slots map[Strategy]*slot
}

// NewService creates a service with every strategy unloaded.
func NewService(opts Options) *Service {
	s := &Service{
		opts:  opts,
		slots: make(map[Strategy]*slot, len(Strategies)),
	}
	for _, st := range Strategies {
		s.slots[st] = &slot{state: StateUnloaded}
		metrics.SetStrategyState(string(st), StateUnloaded.metricValue())
	}
	return s
}

// Load loads every enabled strategy. A strategy that fails to load is
// marked failed and the others still load; the returned error joins the
// individual failures. Disabled strategies stay unloaded.
func (s *Service) Load(ctx context.Context) error {
	var errs []error
	if s.opts.Store != nil {
		if err := s.loadCustom(ctx); err != nil {
			errs = append(errs, fmt.Errorf("custom: %w", err))
		}
	}
	if s.opts.ZeroShot != nil {
		zs, err := NewZeroShotClassifier(*s.opts.ZeroShot)
		if err != nil {
			s.set(StrategyZeroShot, nil, err)
			errs = append(errs, fmt.Errorf("zeroshot: %w", err))
		} else {
			s.set(StrategyZeroShot, zs, nil)
		}
	}
	if s.opts.Rules {
		s.set(StrategyRules, NewRuleClassifier(), nil)
	}
	return errors.Join(errs...)
}

// Reload re-reads the custom pipeline from the store. On failure the
// currently served pipeline, if any, stays in place.
func (s *Service) Reload(ctx context.Context) error {
	if s.opts.Store == nil {
		return fmt.Errorf("%w: custom strategy disabled", ErrUnavailable)
	}

	mc, err := s.readCustom(ctx)
	metrics.RecordModelReload(err)
	if err != nil {
		log := logging.WithComponent("classify")
		log.Warn().Err(err).Msg("Custom model reload failed; keeping current model")
		return err
	}
	s.set(StrategyCustom, mc, nil)
	return nil
}

func (s *Service) loadCustom(ctx context.Context) error {
	mc, err := s.readCustom(ctx)
	if err != nil {
		s.set(StrategyCustom, nil, err)
		return err
	}
	s.set(StrategyCustom, mc, nil)
	return nil
}

func (s *Service) readCustom(ctx context.Context) (*ModelClassifier, error) {
	p, err := s.opts.Store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load model from %s: %w", s.opts.Store.Location(), err)
	}
	return NewModelClassifier(p)
}

// set records a load outcome. A nil classifier with a not-found error marks
// the slot unloaded rather than failed.
func (s *Service) set(st Strategy, c Classifier, err error) {
	sl := &slot{classifier: c, err: err}
	switch {
	case err == nil && c != nil:
		sl.state = StateLoaded
	case errors.Is(err, modelstore.ErrNotFound):
		sl.state = StateUnloaded
	default:
		sl.state = StateFailed
	}

	s.mu.Lock()
	s.slots[st] = sl
	s.mu.Unlock()

	metrics.SetStrategyState(string(st), sl.state.metricValue())
	log := logging.WithComponent("classify")
	if sl.state == StateLoaded {
		log.Info().Str("strategy", string(st)).Str("model", c.ModelName()).Msg("Strategy loaded")
	} else {
		log.Warn().Err(err).Str("strategy", string(st)).Str("state", string(sl.state)).Msg("Strategy not loaded")
	}
}

// Status reports every strategy's state.
func (s *Service) Status() map[Strategy]StrategyStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[Strategy]StrategyStatus, len(s.slots))
	for st, sl := range s.slots {
		status := StrategyStatus{State: sl.state}
		if sl.classifier != nil {
			status.Model = sl.classifier.ModelName()
		}
		if sl.err != nil {
			status.Error = sl.err.Error()
		}
		out[st] = status
	}
	return out
}

// Loaded reports whether st can serve requests.
func (s *Service) Loaded(st Strategy) bool {
	return s.classifier(st) != nil
}

func (s *Service) classifier(st Strategy) Classifier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sl, ok := s.slots[st]; ok && sl.state == StateLoaded {
		return sl.classifier
	}
	return nil
}

// Classify classifies text with the requested strategy. When that strategy
// is not loaded and a default strategy is configured and loaded, the
// default serves the request instead.
func (s *Service) Classify(ctx context.Context, st Strategy, text string) (Prediction, error) {
	if _, err := ParseStrategy(string(st)); err != nil {
		return Prediction{}, fmt.Errorf("%w: %q", err, st)
	}

	served := st
	c := s.classifier(st)
	if c == nil && s.opts.DefaultStrategy != "" && s.opts.DefaultStrategy != st {
		if c = s.classifier(s.opts.DefaultStrategy); c != nil {
			served = s.opts.DefaultStrategy
		}
	}
	if c == nil {
		metrics.RecordPredictionError(string(st), "unavailable")
		return Prediction{}, fmt.Errorf("%w: %s strategy not loaded", ErrUnavailable, st)
	}

	start := time.Now()
	pred, err := c.Classify(ctx, text)
	if err != nil {
		reason := "processing"
		if errors.Is(err, ErrUnavailable) {
			reason = "unavailable"
		} else if !errors.Is(err, ErrProcessing) {
			err = fmt.Errorf("%w: %w", ErrProcessing, err)
		}
		metrics.RecordPredictionError(string(served), reason)
		return Prediction{}, err
	}

	pred.Strategy = served
	pred.Confidence = clamp01(pred.Confidence)
	metrics.RecordPrediction(string(served), pred.Category, pred.Confidence, time.Since(start))
	s.publish(ctx, pred, text)
	return pred, nil
}

func (s *Service) publish(ctx context.Context, pred Prediction, text string) {
	if s.opts.Publisher == nil {
		return
	}
	ev := events.NewPredictionEvent(
		logging.RequestIDFromContext(ctx),
		string(pred.Strategy),
		pred.ModelUsed,
		pred.Category,
		pred.Confidence,
		text,
	)
	if err := s.opts.Publisher.Publish(context.WithoutCancel(ctx), ev); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Failed to publish prediction event")
	}
}
