// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

// Package corpus loads labeled news articles for offline training.
//
// A corpus is a CSV file with a header row. Two engines read it: the
// standard CSV reader and DuckDB's read_csv table function, which handles
// large or loosely quoted files. Both produce the same []Record.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errors returned by loaders.
var (
	ErrMissingColumn = errors.New("corpus column not found")
	ErrEmptyCorpus   = errors.New("corpus contains no records")
	ErrMissingLabel  = errors.New("corpus record has no label")
	ErrUnknownEngine = errors.New("unknown corpus engine")
)

// Engine names accepted by NewLoader.
const (
	EngineCSV    = "csv"
	EngineDuckDB = "duckdb"
)

// Record is one labeled article. Valid is false when the text cell was
// missing or empty; such records keep an empty Text.
type Record struct {
	Text  string
	Label string
	Valid bool
}

// Options selects the columns to read.
type Options struct {
	TextColumn  string
	LabelColumn string
}

// DefaultOptions returns the column names of the FlipItNews dataset.
func DefaultOptions() Options {
	return Options{
		TextColumn:  "Article",
		LabelColumn: "Category",
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.TextColumn == "" {
		o.TextColumn = def.TextColumn
	}
	if o.LabelColumn == "" {
		o.LabelColumn = def.LabelColumn
	}
	return o
}

// Loader reads a corpus file.
type Loader interface {
	Load(ctx context.Context, path string) ([]Record, error)
}

// NewLoader returns the loader for engine.
func NewLoader(engine string, opts Options) (Loader, error) {
	opts = opts.withDefaults()
	switch strings.ToLower(engine) {
	case "", EngineCSV:
		return &CSVLoader{opts: opts}, nil
	case EngineDuckDB:
		return &DuckDBLoader{opts: opts}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
}

// Cell returns the text cell as loaded: nil when it was missing or empty.
func (r Record) Cell() any {
	if !r.Valid {
		return nil
	}
	return r.Text
}

// TextCells returns the text cell of every record (see Record.Cell).
func TextCells(records []Record) []any {
	out := make([]any, len(records))
	for i, r := range records {
		out[i] = r.Cell()
	}
	return out
}

// Labels returns the label of every record.
func Labels(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Label
	}
	return out
}

// Categories returns the distinct labels in order of first appearance.
func Categories(records []Record) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		if _, ok := seen[r.Label]; !ok {
			seen[r.Label] = struct{}{}
			out = append(out, r.Label)
		}
	}
	return out
}

// CategoryCount is a label and its number of records.
type CategoryCount struct {
	Category string
	Count    int
}

// Distribution counts records per label, most frequent first. Equal counts
// keep first-appearance order.
func Distribution(records []Record) []CategoryCount {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Label]++
	}
	categories := Categories(records)
	out := make([]CategoryCount, len(categories))
	for i, c := range categories {
		out[i] = CategoryCount{Category: c, Count: counts[c]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// buildRecord assembles a record from raw cells, rejecting missing labels.
func buildRecord(line int, text string, textValid bool, label string, labelValid bool) (Record, error) {
	label = strings.TrimSpace(label)
	if !labelValid || label == "" {
		return Record{}, fmt.Errorf("%w: row %d", ErrMissingLabel, line)
	}
	if !textValid || text == "" {
		return Record{Label: label}, nil
	}
	return Record{Text: text, Label: label, Valid: true}, nil
}
