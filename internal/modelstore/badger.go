// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package modelstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/flipitnews/internal/ml"
)

// currentModelKey holds the active artifact.
const currentModelKey = "model:current"

// BadgerStore keeps the artifact under a single BadgerDB key.
type BadgerStore struct {
	db     *badger.DB
	path   string
	ownsDB bool
}

// OpenBadgerStore opens (or creates) a BadgerDB at dir.
func OpenBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db, path: dir, ownsDB: true}, nil
}

// NewBadgerStore wraps an already open database. Close leaves it open.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db, path: "badger"}
}

// Save replaces the current artifact.
func (s *BadgerStore) Save(ctx context.Context, p *ml.Pipeline) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(p)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(currentModelKey), data); err != nil {
			return fmt.Errorf("set model: %w", err)
		}
		return nil
	})
}

// Load returns the current artifact.
func (s *BadgerStore) Load(ctx context.Context) (*ml.Pipeline, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(currentModelKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get model: %w", err)
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Location returns the database directory and key.
func (s *BadgerStore) Location() string {
	return s.path + "#" + currentModelKey
}

// Close closes the database when the store opened it.
func (s *BadgerStore) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}
