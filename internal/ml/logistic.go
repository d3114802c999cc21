// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package ml

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

// LogisticConfig contains configuration for multinomial logistic regression.
type LogisticConfig struct {
	// C is the inverse L2 regularization strength.
	C float64 `json:"c"`

	// MaxIter bounds the number of L-BFGS major iterations.
	MaxIter int `json:"max_iter"`

	// Tol is the gradient infinity-norm stopping tolerance.
	Tol float64 `json:"tol"`
}

// DefaultLogisticConfig returns the training defaults.
func DefaultLogisticConfig() LogisticConfig {
	return LogisticConfig{
		C:       1.0,
		MaxIter: 1000,
		Tol:     1e-4,
	}
}

// LogisticRegression is a multinomial (softmax) linear classifier.
//
// Fitting minimizes the mean cross-entropy plus ||W||^2 / (2*C*n); the
// intercept is not penalized.
type LogisticRegression struct {
	Config      LogisticConfig `json:"config"`
	Weights     [][]float64    `json:"weights"`
	Intercept   []float64      `json:"intercept"`
	NumFeatures int            `json:"num_features"`
	Iterations  int            `json:"iterations"`
}

// NewLogisticRegression creates an unfitted model, applying defaults for
// zero-valued settings.
func NewLogisticRegression(cfg LogisticConfig) *LogisticRegression {
	def := DefaultLogisticConfig()
	if cfg.C <= 0 {
		cfg.C = def.C
	}
	if cfg.MaxIter <= 0 {
		cfg.MaxIter = def.MaxIter
	}
	if cfg.Tol <= 0 {
		cfg.Tol = def.Tol
	}
	return &LogisticRegression{Config: cfg}
}

// Fit trains the model with gonum's L-BFGS.
func (m *LogisticRegression) Fit(ctx context.Context, X []SparseVector, y []int, nClasses, nFeatures int) error {
	if err := checkTrainingInput(X, y, nClasses, nFeatures); err != nil {
		return err
	}

	obj := newSoftmaxObjective(X, y, nClasses, nFeatures, m.Config.C)
	theta := make([]float64, obj.dim())
	settings := &optimize.Settings{
		MajorIterations:   m.Config.MaxIter,
		GradientThreshold: m.Config.Tol,
		Converger: &optimize.FunctionConverge{
			Relative:   lbfgsFuncTol,
			Iterations: 5,
		},
		Recorder: contextRecorder{ctx: ctx},
	}

	result, err := optimize.Minimize(optimize.Problem{
		Func: obj.value,
		Grad: obj.gradient,
	}, theta, settings, &optimize.LBFGS{Store: lbfgsMemory})
	switch {
	case err == nil:
	case ctx.Err() != nil:
		return ctx.Err()
	case result != nil && stalled(err):
		// The line search cannot improve further; keep the best point.
	default:
		return fmt.Errorf("logistic regression: %w", err)
	}
	theta = result.X

	K, D := nClasses, nFeatures
	m.Weights = make([][]float64, K)
	for k := 0; k < K; k++ {
		m.Weights[k] = append([]float64(nil), theta[k*D:(k+1)*D]...)
	}
	m.Intercept = append([]float64(nil), theta[K*D:]...)
	m.NumFeatures = D
	m.Iterations = result.Stats.MajorIterations
	return nil
}

const (
	lbfgsMemory  = 10
	lbfgsFuncTol = 2.220446049250313e-09
)

func stalled(err error) bool {
	return errors.Is(err, optimize.ErrLinesearcherFailure) || errors.Is(err, optimize.ErrNoProgress)
}

// softmaxObjective is the regularized mean cross-entropy over sparse rows.
// theta holds K weight rows of length D followed by K intercepts.
//
// gonum asks for the value and the gradient separately, usually at the
// same point; both come out of one pass over X and the last point is
// cached.
type softmaxObjective struct {
	X       []SparseVector
	y       []int
	K, D    int
	penalty float64

	lastX    []float64
	lastF    float64
	lastGrad []float64
}

func newSoftmaxObjective(X []SparseVector, y []int, nClasses, nFeatures int, c float64) *softmaxObjective {
	return &softmaxObjective{
		X:       X,
		y:       y,
		K:       nClasses,
		D:       nFeatures,
		penalty: 1 / (c * float64(len(X))),
	}
}

func (o *softmaxObjective) dim() int { return o.K*o.D + o.K }

func (o *softmaxObjective) value(theta []float64) float64 {
	o.evaluate(theta)
	return o.lastF
}

func (o *softmaxObjective) gradient(grad, theta []float64) {
	o.evaluate(theta)
	copy(grad, o.lastGrad)
}

func (o *softmaxObjective) evaluate(theta []float64) {
	if o.lastX != nil && floats.Equal(o.lastX, theta) {
		return
	}
	K, D := o.K, o.D
	n := float64(len(o.X))
	if o.lastGrad == nil {
		o.lastGrad = make([]float64, o.dim())
		o.lastX = make([]float64, o.dim())
	}
	grad := o.lastGrad
	for i := range grad {
		grad[i] = 0
	}

	scores := make([]float64, K)
	var loss float64
	for i, x := range o.X {
		for k := 0; k < K; k++ {
			scores[k] = x.Dot(theta[k*D:(k+1)*D]) + theta[K*D+k]
		}
		maxScore := floats.Max(scores)
		var sum float64
		for _, s := range scores {
			sum += math.Exp(s - maxScore)
		}
		logZ := maxScore + math.Log(sum)
		loss += logZ - scores[o.y[i]]

		for k := 0; k < K; k++ {
			coef := math.Exp(scores[k] - logZ)
			if k == o.y[i] {
				coef--
			}
			coef /= n
			x.AddTo(grad[k*D:(k+1)*D], coef)
			grad[K*D+k] += coef
		}
	}
	loss /= n

	weights := theta[:K*D]
	floats.AddScaled(grad[:K*D], o.penalty, weights)
	o.lastF = loss + 0.5*o.penalty*floats.Dot(weights, weights)
	copy(o.lastX, theta)
}

// contextRecorder stops the optimizer once ctx is done.
type contextRecorder struct {
	ctx context.Context
}

func (r contextRecorder) Init() error { return r.ctx.Err() }

func (r contextRecorder) Record(*optimize.Location, optimize.Operation, *optimize.Stats) error {
	return r.ctx.Err()
}

// DecisionFunction returns the per-class linear scores.
func (m *LogisticRegression) DecisionFunction(x SparseVector) []float64 {
	if len(m.Weights) == 0 {
		return nil
	}
	scores := make([]float64, len(m.Weights))
	for k, w := range m.Weights {
		scores[k] = x.Dot(w) + m.Intercept[k]
	}
	return scores
}

// Probabilities returns the softmax of the decision scores.
func (m *LogisticRegression) Probabilities(x SparseVector) []float64 {
	scores := m.DecisionFunction(x)
	if scores == nil {
		return nil
	}
	return softmax(scores)
}
