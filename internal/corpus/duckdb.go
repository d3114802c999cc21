// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"
)

// DuckDBLoader reads a corpus through an in-memory DuckDB instance using
// read_csv with every column typed as VARCHAR.
type DuckDBLoader struct {
	opts Options
}

// Load queries path with read_csv and returns its records in file order.
func (l *DuckDBLoader) Load(ctx context.Context, path string) ([]Record, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}

	// Disable auto-install/auto-load so a missing network never blocks training.
	db, err := sql.Open("duckdb", ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer func() { _ = db.Close() }()

	source := fmt.Sprintf("read_csv(%s, header=true, all_varchar=true)", quoteLiteral(path))

	columns, err := l.columns(ctx, db, source)
	if err != nil {
		return nil, err
	}
	for _, want := range []string{l.opts.TextColumn, l.opts.LabelColumn} {
		if _, ok := columns[want]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, want)
		}
	}

	query := fmt.Sprintf("SELECT %s, %s FROM %s",
		quoteIdent(l.opts.TextColumn), quoteIdent(l.opts.LabelColumn), source)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query corpus: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for line := 1; rows.Next(); line++ {
		var text, label sql.NullString
		if err := rows.Scan(&text, &label); err != nil {
			return nil, fmt.Errorf("scan corpus row %d: %w", line, err)
		}
		rec, err := buildRecord(line, text.String, text.Valid, label.String, label.Valid)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate corpus: %w", err)
	}

	if len(records) == 0 {
		return nil, ErrEmptyCorpus
	}
	return records, nil
}

func (l *DuckDBLoader) columns(ctx context.Context, db *sql.DB, source string) (map[string]struct{}, error) {
	rows, err := db.QueryContext(ctx, "SELECT * FROM "+source+" LIMIT 0")
	if err != nil {
		return nil, fmt.Errorf("describe corpus: %w", err)
	}
	defer func() { _ = rows.Close() }()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("describe corpus: %w", err)
	}
	out := make(map[string]struct{}, len(names))
	for _, name := range names {
		out[name] = struct{}{}
	}
	return out, nil
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
