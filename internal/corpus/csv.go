// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package corpus

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// CSVLoader reads a corpus with encoding/csv.
type CSVLoader struct {
	opts Options
}

// Load opens path and reads every record.
func (l *CSVLoader) Load(ctx context.Context, path string) ([]Record, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer func() { _ = f.Close() }()

	return l.Read(ctx, f)
}

// Read parses a corpus from r.
func (l *CSVLoader) Read(ctx context.Context, r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyCorpus
	}
	if err != nil {
		return nil, fmt.Errorf("read corpus header: %w", err)
	}

	textCol, labelCol := -1, -1
	for i, name := range header {
		switch name {
		case l.opts.TextColumn:
			textCol = i
		case l.opts.LabelColumn:
			labelCol = i
		}
	}
	if textCol < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, l.opts.TextColumn)
	}
	if labelCol < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, l.opts.LabelColumn)
	}

	var records []Record
	for line := 1; ; line++ {
		if line%1000 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read corpus row %d: %w", line, err)
		}

		var text, label string
		textValid := textCol < len(row)
		if textValid {
			text = row[textCol]
		}
		labelValid := labelCol < len(row)
		if labelValid {
			label = row[labelCol]
		}

		rec, err := buildRecord(line, text, textValid, label, labelValid)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrEmptyCorpus
	}
	return records, nil
}
