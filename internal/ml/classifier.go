// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package ml

import (
	"context"
	"errors"
	"fmt"
)

// Errors returned by classifiers.
var (
	ErrNotFitted     = errors.New("classifier not fitted")
	ErrEmptyDataset  = errors.New("empty dataset")
	ErrShapeMismatch = errors.New("feature and label counts differ")
)

// Classifier is a multi-class model over sparse feature rows.
//
// Labels are dense integers in [0, nClasses). Probabilities returns one
// value per class summing to 1; prediction takes the first maximum.
type Classifier interface {
	// Fit trains the model. Implementations must be deterministic for a
	// fixed configuration and input.
	Fit(ctx context.Context, X []SparseVector, y []int, nClasses, nFeatures int) error

	// Probabilities returns the class distribution for x. It returns nil
	// when the model is not fitted.
	Probabilities(x SparseVector) []float64
}

// Predict returns the predicted class and its probability.
func Predict(c Classifier, x SparseVector) (int, float64) {
	proba := c.Probabilities(x)
	best := argmax(proba)
	if best < 0 {
		return -1, 0
	}
	return best, clamp01(proba[best])
}

// PredictAll returns the predicted class of every row.
func PredictAll(c Classifier, X []SparseVector) []int {
	out := make([]int, len(X))
	for i, x := range X {
		out[i], _ = Predict(c, x)
	}
	return out
}

// checkTrainingInput validates the common Fit arguments.
func checkTrainingInput(X []SparseVector, y []int, nClasses, nFeatures int) error {
	if len(X) == 0 {
		return ErrEmptyDataset
	}
	if len(X) != len(y) {
		return fmt.Errorf("%w: %d rows, %d labels", ErrShapeMismatch, len(X), len(y))
	}
	if nClasses < 1 || nFeatures < 1 {
		return fmt.Errorf("%w: %d classes, %d features", ErrEmptyDataset, nClasses, nFeatures)
	}
	for i, label := range y {
		if label < 0 || label >= nClasses {
			return fmt.Errorf("label %d at row %d out of range [0,%d)", label, i, nClasses)
		}
	}
	return nil
}
