// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package ml

import (
	"context"
	"math"
)

// NaiveBayesConfig contains configuration for multinomial naive Bayes.
type NaiveBayesConfig struct {
	// Alpha is the additive (Laplace/Lidstone) smoothing parameter.
	Alpha float64 `json:"alpha"`
}

// DefaultNaiveBayesConfig returns the training defaults.
func DefaultNaiveBayesConfig() NaiveBayesConfig {
	return NaiveBayesConfig{Alpha: 1.0}
}

// NaiveBayes is a multinomial naive Bayes classifier. Feature values are
// treated as fractional counts, so TF-IDF rows are accepted directly.
type NaiveBayes struct {
	Config         NaiveBayesConfig `json:"config"`
	ClassLogPrior  []float64        `json:"class_log_prior"`
	FeatureLogProb [][]float64      `json:"feature_log_prob"`
	NumFeatures    int              `json:"num_features"`
}

// NewNaiveBayes creates an unfitted model.
func NewNaiveBayes(cfg NaiveBayesConfig) *NaiveBayes {
	if cfg.Alpha <= 0 {
		cfg.Alpha = DefaultNaiveBayesConfig().Alpha
	}
	return &NaiveBayes{Config: cfg}
}

// Fit estimates class priors and smoothed per-class feature distributions.
func (m *NaiveBayes) Fit(ctx context.Context, X []SparseVector, y []int, nClasses, nFeatures int) error {
	if err := checkTrainingInput(X, y, nClasses, nFeatures); err != nil {
		return err
	}
	if ContextCancelled(ctx) {
		return ctx.Err()
	}

	classCount := make([]float64, nClasses)
	featureCount := make([][]float64, nClasses)
	for k := range featureCount {
		featureCount[k] = make([]float64, nFeatures)
	}
	for i, x := range X {
		classCount[y[i]]++
		x.AddTo(featureCount[y[i]], 1)
	}

	n := float64(len(X))
	m.ClassLogPrior = make([]float64, nClasses)
	m.FeatureLogProb = make([][]float64, nClasses)
	for k := 0; k < nClasses; k++ {
		m.ClassLogPrior[k] = math.Log(classCount[k] / n)

		total := m.Config.Alpha * float64(nFeatures)
		for _, c := range featureCount[k] {
			total += c
		}
		logTotal := math.Log(total)
		row := make([]float64, nFeatures)
		for j, c := range featureCount[k] {
			row[j] = math.Log(c+m.Config.Alpha) - logTotal
		}
		m.FeatureLogProb[k] = row
	}
	m.NumFeatures = nFeatures
	return nil
}

// JointLogLikelihood returns log P(c) + log P(x|c) for every class.
func (m *NaiveBayes) JointLogLikelihood(x SparseVector) []float64 {
	if len(m.ClassLogPrior) == 0 {
		return nil
	}
	jll := make([]float64, len(m.ClassLogPrior))
	for k := range jll {
		jll[k] = m.ClassLogPrior[k] + x.Dot(m.FeatureLogProb[k])
	}
	return jll
}

// Probabilities returns the normalized class posterior.
func (m *NaiveBayes) Probabilities(x SparseVector) []float64 {
	jll := m.JointLogLikelihood(x)
	if jll == nil {
		return nil
	}
	return softmax(jll)
}
