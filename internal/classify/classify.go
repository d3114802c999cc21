// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

// Package classify serves news classifications through three interchangeable
// strategies:
//
//   - custom: the TF-IDF pipeline produced by cmd/train, loaded from a model
//     store and fed normalized text
//   - zeroshot: a remote zero-shot-classification endpoint fed the raw text
//     and the five fixed categories
//   - rules: keyword counting over fixed per-category keyword lists
//
// A Service owns one slot per strategy. Slots are loaded explicitly at
// startup with Load; a strategy that is disabled or failed to load answers
// with ErrUnavailable. Any failure while producing a prediction is reported
// as ErrProcessing.
package classify

import (
	"context"
	"errors"
)

// Categories are the fixed labels of the zero-shot and rules strategies, in
// tie-breaking order.
var Categories = []string{"Technology", "Business", "Sports", "Entertainment", "Politics"}

// Strategy names a classification strategy.
type Strategy string

// Supported strategies.
const (
	StrategyCustom   Strategy = "custom"
	StrategyZeroShot Strategy = "zeroshot"
	StrategyRules    Strategy = "rules"
)

// Strategies lists every strategy in reporting order.
var Strategies = []Strategy{StrategyCustom, StrategyZeroShot, StrategyRules}

// ParseStrategy maps a name onto a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	for _, st := range Strategies {
		if string(st) == s {
			return st, nil
		}
	}
	return "", ErrUnknownStrategy
}

// State is a strategy's load state.
type State string

// Load states. The numeric form is exported as a metric.
const (
	StateUnloaded State = "unloaded"
	StateLoaded   State = "loaded"
	StateFailed   State = "failed"
)

func (s State) metricValue() int {
	switch s {
	case StateLoaded:
		return 1
	case StateFailed:
		return 2
	default:
		return 0
	}
}

// Errors returned by classifiers and the Service.
var (
	// ErrUnavailable means the requested strategy cannot serve: it is
	// disabled, not loaded, or its upstream circuit is open.
	ErrUnavailable = errors.New("classifier unavailable")

	// ErrProcessing wraps any failure while producing a prediction.
	ErrProcessing = errors.New("prediction failed")

	ErrUnknownStrategy    = errors.New("unknown classification strategy")
	ErrNormalizerMismatch = errors.New("model was trained with a different text normalizer")
)

// Prediction is a served classification.
type Prediction struct {
	Category   string   `json:"category"`
	Confidence float64  `json:"confidence"`
	ModelUsed  string   `json:"model_used"`
	Strategy   Strategy `json:"-"`
}

// Classifier is one strategy's prediction function. Implementations are
// safe for concurrent use.
type Classifier interface {
	Classify(ctx context.Context, text string) (Prediction, error)
	ModelName() string
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
