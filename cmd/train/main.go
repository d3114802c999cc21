// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

// Command train fits the candidate news classifiers on a labeled corpus,
// persists the most accurate one and writes the evaluation report.
//
// Usage:
//
//	train [-config config.yaml] [-data flipitnews-data.csv] [-model models/custom_model.model]
//	      [-report model_training_results.txt] [-store file|badger] [-engine csv|duckdb]
//
// Flags override the configuration file and environment (see internal/config).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/flipitnews/internal/config"
	"github.com/tomtom215/flipitnews/internal/corpus"
	"github.com/tomtom215/flipitnews/internal/logging"
	"github.com/tomtom215/flipitnews/internal/modelstore"
	"github.com/tomtom215/flipitnews/internal/trainer"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		logging.Error().Err(err).Msg("Training failed")
		os.Exit(1)
	}
}

// trainFlags holds the command-line overrides. Empty values keep the
// configured setting.
type trainFlags struct {
	configPath   string
	dataPath     string
	modelPath    string
	reportPath   string
	storeBackend string
	engine       string
}

func parseFlags(args []string) (trainFlags, error) {
	var f trainFlags
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.StringVar(&f.configPath, "config", "", "configuration file (default: search standard locations)")
	fs.StringVar(&f.dataPath, "data", "", "corpus CSV file")
	fs.StringVar(&f.modelPath, "model", "", "model artifact path (file) or database directory (badger)")
	fs.StringVar(&f.reportPath, "report", "", "evaluation report output file")
	fs.StringVar(&f.storeBackend, "store", "", "model store backend: file or badger")
	fs.StringVar(&f.engine, "engine", "", "corpus engine: csv or duckdb")
	if err := fs.Parse(args); err != nil {
		return trainFlags{}, err
	}
	if fs.NArg() > 0 {
		return trainFlags{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return f, nil
}

// applyFlags overlays the set flags onto cfg.
func applyFlags(cfg *config.Config, f trainFlags) {
	override(&cfg.Training.DataPath, f.dataPath)
	override(&cfg.Training.ReportPath, f.reportPath)
	override(&cfg.Training.Engine, f.engine)
	override(&cfg.Model.Path, f.modelPath)
	override(&cfg.Model.Store, f.storeBackend)
}

func run(args []string) error {
	flags, err := parseFlags(args)
	if err != nil {
		return err
	}

	var cfg *config.Config
	if flags.configPath != "" {
		cfg, err = config.LoadFromPath(flags.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	applyFlags(cfg, flags)

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
		Dir:    cfg.Logging.Dir,
	})
	defer func() {
		if cerr := logging.Close(); cerr != nil {
			logging.Warn().Err(cerr).Msg("Failed to close log files")
		}
	}()

	loader, err := corpus.NewLoader(cfg.Training.Engine, corpus.Options{
		TextColumn:  cfg.Training.TextColumn,
		LabelColumn: cfg.Training.LabelColumn,
	})
	if err != nil {
		return err
	}

	store, err := modelstore.Open(cfg.Model.Store, cfg.Model.Path)
	if err != nil {
		return fmt.Errorf("open model store: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logging.Warn().Err(cerr).Msg("Failed to close model store")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().
		Str("data", cfg.Training.DataPath).
		Str("engine", cfg.Training.Engine).
		Str("store", cfg.Model.Store).
		Float64("test_size", cfg.Training.TestSize).
		Int64("seed", cfg.Training.Seed).
		Msg("Starting training run")

	res, err := trainer.New(trainer.Config{
		DataPath:   cfg.Training.DataPath,
		ReportPath: cfg.Training.ReportPath,
		TestSize:   cfg.Training.TestSize,
		Seed:       cfg.Training.Seed,
	}, loader, store).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println(trainer.Summary(res))
	logging.Info().
		Str("model", res.Model.Name).
		Float64("accuracy", res.BestCandidate().Accuracy).
		Msg("Training complete")
	return nil
}

// override replaces *dst with v when v is set.
func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
