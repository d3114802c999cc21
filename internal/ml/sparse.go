// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package ml

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"
)

// SparseVector is a row of a document-term matrix. Indices are strictly
// increasing.
type SparseVector struct {
	Indices []int     `json:"i"`
	Values  []float64 `json:"v"`
}

// Len returns the number of stored (non-zero) entries.
func (v SparseVector) Len() int {
	return len(v.Indices)
}

// Dot returns the dot product of v with the dense vector w.
// Indices beyond len(w) are ignored.
func (v SparseVector) Dot(w []float64) float64 {
	var sum float64
	for k, idx := range v.Indices {
		if idx < len(w) {
			sum += v.Values[k] * w[idx]
		}
	}
	return sum
}

// SquaredNorm returns the squared L2 norm.
func (v SparseVector) SquaredNorm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return sum
}

// AddTo performs w += scale * v.
func (v SparseVector) AddTo(w []float64, scale float64) {
	for k, idx := range v.Indices {
		if idx < len(w) {
			w[idx] += scale * v.Values[k]
		}
	}
}

// softmax converts scores into probabilities in place and returns them.
func softmax(scores []float64) []float64 {
	if len(scores) == 0 {
		return scores
	}
	maxScore := floats.Max(scores)
	for i, s := range scores {
		scores[i] = math.Exp(s - maxScore)
	}
	floats.Scale(1/floats.Sum(scores), scores)
	return scores
}

// argmax returns the index of the first maximum value, or -1 for an empty slice.
func argmax(values []float64) int {
	if len(values) == 0 {
		return -1
	}
	return floats.MaxIdx(values)
}

// ContextCancelled reports whether ctx is done without blocking.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// clamp01 bounds x to [0,1], mapping NaN to 0.
func clamp01(x float64) float64 {
	switch {
	case math.IsNaN(x) || x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}
