// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

// Package ml implements the text classification primitives used by the
// offline trainer and the custom inference strategy.
//
// # Components
//
//   - TfidfVectorizer: bag-of-words TF-IDF with a vocabulary cap and English
//     stop words, producing L2-normalized sparse rows
//   - LogisticRegression: multinomial, L2-regularized, fitted with L-BFGS
//   - NaiveBayes: multinomial with additive smoothing
//   - RandomForest: bagged gini decision trees with per-split feature sampling
//   - LinearSVM: one-vs-rest squared-hinge SVM fitted by dual coordinate descent
//   - StratifiedSplit: seeded per-class train/test partition
//   - Accuracy, ConfusionMatrix, ClassificationReport: held-out evaluation
//   - Pipeline: a fitted vectorizer + classifier pair that can be encoded as an
//     opaque artifact
//
// # Determinism
//
// Every stochastic step draws from a math/rand source seeded from
// configuration. Fitting the same pipeline on the same data twice yields
// identical parameters and identical predictions.
//
// # Thread Safety
//
// Fit must not run concurrently with anything else on the same value.
// Once fitted, all prediction methods are read-only and safe for concurrent
// use.
package ml
