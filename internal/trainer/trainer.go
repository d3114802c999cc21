// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

// Package trainer fits the candidate classification pipelines on a labeled
// news corpus, selects the most accurate one on a held-out split, persists
// it through a model store and renders the evaluation report.
package trainer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tomtom215/flipitnews/internal/corpus"
	"github.com/tomtom215/flipitnews/internal/logging"
	"github.com/tomtom215/flipitnews/internal/metrics"
	"github.com/tomtom215/flipitnews/internal/ml"
	"github.com/tomtom215/flipitnews/internal/modelstore"
	"github.com/tomtom215/flipitnews/internal/textnorm"
)

// ErrNoCandidates is returned when the candidate factory yields nothing to fit.
var ErrNoCandidates = errors.New("no candidate pipelines")

// Config holds training settings.
type Config struct {
	// DataPath is the corpus file.
	DataPath string

	// ReportPath receives the evaluation report. Empty skips the report.
	ReportPath string

	// TestSize is the held-out fraction, in (0, 1).
	TestSize float64

	// Seed drives the split and every stochastic candidate.
	Seed int64
}

// DefaultConfig returns the standard 80/20 split with seed 42.
func DefaultConfig() Config {
	return Config{
		DataPath:   "flipitnews-data.csv",
		ReportPath: "model_training_results.txt",
		TestSize:   0.2,
		Seed:       42,
	}
}

// CandidateResult is the held-out evaluation of one fitted candidate.
type CandidateResult struct {
	Name      string
	Kind      ml.Kind
	Accuracy  float64
	Report    string
	Confusion [][]int
	Duration  time.Duration
}

// Result describes a completed training run.
type Result struct {
	DataPath      string
	Generated     time.Time
	TotalSamples  int
	Categories    []string
	Distribution  []corpus.CategoryCount
	TrainSamples  int
	TestSamples   int
	Candidates    []CandidateResult
	Best          int
	Model         *ml.Pipeline
	ModelLocation string
}

// BestCandidate returns the selected candidate's evaluation.
func (r *Result) BestCandidate() CandidateResult {
	return r.Candidates[r.Best]
}

// Trainer runs the offline training contract.
type Trainer struct {
	cfg        Config
	loader     corpus.Loader
	store      modelstore.Store
	candidates func(seed int64) []*ml.Pipeline
	now        func() time.Time
}

// New creates a trainer reading with loader and persisting to store.
func New(cfg Config, loader corpus.Loader, store modelstore.Store) *Trainer {
	defaults := DefaultConfig()
	if cfg.TestSize <= 0 || cfg.TestSize >= 1 {
		cfg.TestSize = defaults.TestSize
	}
	return &Trainer{
		cfg:        cfg,
		loader:     loader,
		store:      store,
		candidates: ml.DefaultCandidates,
		now:        time.Now,
	}
}

// Run loads and normalizes the corpus, splits it, fits and scores every
// candidate, persists the best one and writes the report. A corpus that
// cannot be loaded aborts the run before anything is written.
func (t *Trainer) Run(ctx context.Context) (*Result, error) {
	log := logging.WithComponent("trainer")
	generated := t.now()

	log.Info().Str("path", t.cfg.DataPath).Msg("Loading corpus")
	records, err := t.loader.Load(ctx, t.cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("load corpus %s: %w", t.cfg.DataPath, err)
	}

	// Missing text cells train as empty documents.
	docs := textnorm.NormalizeAll(corpus.TextCells(records))
	labels := corpus.Labels(records)

	trainIdx, testIdx, err := ml.StratifiedSplit(labels, t.cfg.TestSize, t.cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("split corpus: %w", err)
	}
	trainDocs, trainLabels := subset(docs, labels, trainIdx)
	testDocs, testLabels := subset(docs, labels, testIdx)

	res := &Result{
		DataPath:     t.cfg.DataPath,
		Generated:    generated,
		TotalSamples: len(records),
		Categories:   corpus.Categories(records),
		Distribution: corpus.Distribution(records),
		TrainSamples: len(trainIdx),
		TestSamples:  len(testIdx),
	}
	log.Info().
		Int("samples", res.TotalSamples).
		Int("train", res.TrainSamples).
		Int("test", res.TestSamples).
		Strs("categories", res.Categories).
		Msg("Corpus split")

	pipelines := t.candidates(t.cfg.Seed)
	if len(pipelines) == 0 {
		return nil, ErrNoCandidates
	}

	accuracies := make([]float64, 0, len(pipelines))
	for _, p := range pipelines {
		if ml.ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		cr, err := evaluate(ctx, p, trainDocs, trainLabels, testDocs, testLabels)
		if err != nil {
			return nil, err
		}
		metrics.RecordTrainingRun(cr.Name, cr.Accuracy, cr.Duration)
		log.Info().
			Str("model", cr.Name).
			Float64("accuracy", cr.Accuracy).
			Dur("duration", cr.Duration).
			Msg("Candidate evaluated")

		res.Candidates = append(res.Candidates, cr)
		accuracies = append(accuracies, cr.Accuracy)
	}

	res.Best = SelectBest(accuracies)
	res.Model = pipelines[res.Best]

	if err := t.store.Save(ctx, res.Model); err != nil {
		return nil, fmt.Errorf("save model: %w", err)
	}
	res.ModelLocation = t.store.Location()
	log.Info().
		Str("model", res.Model.Name).
		Float64("accuracy", res.BestCandidate().Accuracy).
		Str("location", res.ModelLocation).
		Msg("Best model saved")

	if t.cfg.ReportPath != "" {
		if err := WriteReport(t.cfg.ReportPath, res); err != nil {
			return nil, err
		}
		log.Info().Str("path", t.cfg.ReportPath).Msg("Report written")
	}

	return res, nil
}

// evaluate fits p on the training split and scores it on the test split.
func evaluate(ctx context.Context, p *ml.Pipeline, trainDocs, trainLabels, testDocs, testLabels []string) (CandidateResult, error) {
	start := time.Now()

	p.Normalizer = textnorm.Version
	if err := p.Fit(ctx, trainDocs, trainLabels); err != nil {
		return CandidateResult{}, fmt.Errorf("train %s: %w", p.Name, err)
	}
	yPred, err := p.PredictIndices(testDocs)
	if err != nil {
		return CandidateResult{}, fmt.Errorf("evaluate %s: %w", p.Name, err)
	}
	yTrue := p.LabelIndices(testLabels)

	cm := ml.ConfusionMatrix(yTrue, yPred, len(p.Labels))
	return CandidateResult{
		Name:      p.Name,
		Kind:      p.Kind,
		Accuracy:  ml.Accuracy(yTrue, yPred),
		Report:    ml.ClassificationReport(yTrue, yPred, p.Labels),
		Confusion: cm,
		Duration:  time.Since(start),
	}, nil
}

// SelectBest returns the index of the highest accuracy. Only a strictly
// greater accuracy replaces the current best, so ties keep the earliest
// candidate.
func SelectBest(accuracies []float64) int {
	best := 0
	for i := 1; i < len(accuracies); i++ {
		if accuracies[i] > accuracies[best] {
			best = i
		}
	}
	return best
}

func subset(docs, labels []string, idx []int) ([]string, []string) {
	d := make([]string, len(idx))
	l := make([]string, len(idx))
	for i, k := range idx {
		d[i] = docs[k]
		l[i] = labels[k]
	}
	return d, l
}

// WriteReport renders res and writes it to path, creating parent directories.
func WriteReport(path string, res *Result) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(Report(res)), 0o600); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
