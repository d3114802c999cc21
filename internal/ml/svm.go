// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package ml

import (
	"context"
	"math"
	"math/rand"
)

// SVMConfig contains configuration for the linear SVM.
type SVMConfig struct {
	// C is the inverse L2 regularization strength.
	C float64 `json:"c"`

	// MaxIter bounds the number of passes over the data per class.
	MaxIter int `json:"max_iter"`

	// Tol stops a class once the projected gradient spread falls below it.
	Tol float64 `json:"tol"`

	// Seed drives the per-pass permutation of training rows.
	Seed int64 `json:"seed"`
}

// DefaultSVMConfig returns the training defaults.
func DefaultSVMConfig() SVMConfig {
	return SVMConfig{
		C:       1.0,
		MaxIter: 1000,
		Tol:     1e-4,
		Seed:    42,
	}
}

// LinearSVM is a one-vs-rest linear SVM with squared hinge loss and an L2
// penalty, fitted by dual coordinate descent. A constant bias feature is
// appended to every row, so the intercept is regularized with the weights.
//
// Probabilities are the softmax of the per-class margins.
type LinearSVM struct {
	Config      SVMConfig   `json:"config"`
	Weights     [][]float64 `json:"weights"`
	Intercept   []float64   `json:"intercept"`
	NumFeatures int         `json:"num_features"`
}

// NewLinearSVM creates an unfitted model.
func NewLinearSVM(cfg SVMConfig) *LinearSVM {
	def := DefaultSVMConfig()
	if cfg.C <= 0 {
		cfg.C = def.C
	}
	if cfg.MaxIter <= 0 {
		cfg.MaxIter = def.MaxIter
	}
	if cfg.Tol <= 0 {
		cfg.Tol = def.Tol
	}
	return &LinearSVM{Config: cfg}
}

// Fit trains one binary classifier per class.
func (m *LinearSVM) Fit(ctx context.Context, X []SparseVector, y []int, nClasses, nFeatures int) error {
	if err := checkTrainingInput(X, y, nClasses, nFeatures); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(m.Config.Seed)) //nolint:gosec // deterministic model training

	// Q_ii = x_i.x_i + bias^2 + 1/(2C)
	diag := 1 / (2 * m.Config.C)
	qii := make([]float64, len(X))
	for i, x := range X {
		qii[i] = x.SquaredNorm() + 1 + diag
	}

	weights := make([][]float64, nClasses)
	intercept := make([]float64, nClasses)
	for k := 0; k < nClasses; k++ {
		if ContextCancelled(ctx) {
			return ctx.Err()
		}
		w, b := m.fitBinary(X, y, k, qii, diag, nFeatures, rng)
		weights[k] = w
		intercept[k] = b
	}

	m.Weights = weights
	m.Intercept = intercept
	m.NumFeatures = nFeatures
	return nil
}

func (m *LinearSVM) fitBinary(X []SparseVector, y []int, class int, qii []float64, diag float64, nFeatures int, rng *rand.Rand) ([]float64, float64) {
	n := len(X)
	w := make([]float64, nFeatures)
	var b float64
	alpha := make([]float64, n)
	sign := make([]float64, n)
	for i := range sign {
		if y[i] == class {
			sign[i] = 1
		} else {
			sign[i] = -1
		}
	}

	for iter := 0; iter < m.Config.MaxIter; iter++ {
		pgMax, pgMin := math.Inf(-1), math.Inf(1)
		for _, i := range rng.Perm(n) {
			g := sign[i]*(X[i].Dot(w)+b) - 1 + diag*alpha[i]

			pg := g
			if alpha[i] == 0 && g > 0 {
				pg = 0
			}
			pgMax = math.Max(pgMax, pg)
			pgMin = math.Min(pgMin, pg)

			if math.Abs(pg) > 1e-12 {
				old := alpha[i]
				alpha[i] = math.Max(alpha[i]-g/qii[i], 0)
				delta := (alpha[i] - old) * sign[i]
				X[i].AddTo(w, delta)
				b += delta
			}
		}
		if pgMax-pgMin <= m.Config.Tol {
			break
		}
	}
	return w, b
}

// DecisionFunction returns the signed margin of every one-vs-rest classifier.
func (m *LinearSVM) DecisionFunction(x SparseVector) []float64 {
	if len(m.Weights) == 0 {
		return nil
	}
	margins := make([]float64, len(m.Weights))
	for k, w := range m.Weights {
		margins[k] = x.Dot(w) + m.Intercept[k]
	}
	return margins
}

// Probabilities maps the margins into [0,1] with a softmax.
func (m *LinearSVM) Probabilities(x SparseVector) []float64 {
	margins := m.DecisionFunction(x)
	if margins == nil {
		return nil
	}
	return softmax(margins)
}
