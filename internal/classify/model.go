// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package classify

import (
	"context"
	"fmt"

	"github.com/tomtom215/flipitnews/internal/ml"
	"github.com/tomtom215/flipitnews/internal/textnorm"
)

// customSuffix is appended to the pipeline name in ModelUsed.
const customSuffix = " (Custom Trained on FlipItNews Data)"

// ModelClassifier serves a trained pipeline. The pipeline is read-only
// after construction and shared by all requests.
type ModelClassifier struct {
	pipeline *ml.Pipeline
}

// NewModelClassifier wraps a fitted pipeline. Pipelines trained with a
// different normalizer are rejected so that serving always cleans text the
// same way training did.
func NewModelClassifier(p *ml.Pipeline) (*ModelClassifier, error) {
	if !p.Fitted() {
		return nil, ml.ErrNotFitted
	}
	if p.Normalizer != textnorm.Version {
		return nil, fmt.Errorf("%w: artifact %q, server %q", ErrNormalizerMismatch, p.Normalizer, textnorm.Version)
	}
	return &ModelClassifier{pipeline: p}, nil
}

// ModelName implements Classifier.
func (c *ModelClassifier) ModelName() string {
	return c.pipeline.Name + customSuffix
}

// Pipeline returns the served pipeline.
func (c *ModelClassifier) Pipeline() *ml.Pipeline {
	return c.pipeline
}

// Classify normalizes text and predicts its category. Text that normalizes
// to nothing is still classified, from an all-zero feature vector.
func (c *ModelClassifier) Classify(ctx context.Context, text string) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, fmt.Errorf("%w: %w", ErrProcessing, err)
	}
	label, confidence, err := c.pipeline.Predict(textnorm.Normalize(text))
	if err != nil {
		return Prediction{}, fmt.Errorf("%w: %w", ErrProcessing, err)
	}
	return Prediction{
		Category:   label,
		Confidence: clamp01(confidence),
		ModelUsed:  c.ModelName(),
		Strategy:   StrategyCustom,
	}, nil
}
