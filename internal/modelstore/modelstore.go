// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

// Package modelstore persists trained classification pipelines.
//
// An artifact is a 5-byte magic header followed by a zstd stream of the
// pipeline's JSON encoding. Two backends hold artifacts: a plain file
// (the default) and a BadgerDB key, for deployments that already keep
// state in Badger.
package modelstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"

	"github.com/tomtom215/flipitnews/internal/ml"
)

// Errors returned by stores.
var (
	ErrNotFound        = errors.New("model artifact not found")
	ErrCorruptArtifact = errors.New("model artifact is corrupt")
	ErrUnknownBackend  = errors.New("unknown model store backend")
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
)

// magic identifies artifact format version 1.
var magic = []byte("FINM\x01")

// Store saves and loads the current pipeline.
type Store interface {
	Save(ctx context.Context, p *ml.Pipeline) error
	Load(ctx context.Context) (*ml.Pipeline, error)
	// Location describes where the artifact lives, for logs and reports.
	Location() string
	Close() error
}

// Open returns the store for backend rooted at path. For the file backend
// path is the artifact file; for badger it is the database directory.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(backend) {
	case "", BackendFile:
		return NewFileStore(path), nil
	case BackendBadger:
		store, err := OpenBadgerStore(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Encode serializes p into the artifact format.
func Encode(p *ml.Pipeline) ([]byte, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode pipeline: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(magic)
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, fmt.Errorf("create zstd writer: %w", err)
	}
	if _, err := enc.Write(payload); err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("compress pipeline: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("compress pipeline: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses an artifact produced by Encode.
func Decode(data []byte) (*ml.Pipeline, error) {
	if !bytes.HasPrefix(data, magic) {
		return nil, fmt.Errorf("%w: bad header", ErrCorruptArtifact)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd reader: %w", err)
	}
	defer dec.Close()

	payload, err := dec.DecodeAll(data[len(magic):], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArtifact, err)
	}

	var p ml.Pipeline
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArtifact, err)
	}
	if !p.Fitted() {
		return nil, fmt.Errorf("%w: pipeline %q is not fitted", ErrCorruptArtifact, p.Name)
	}
	return &p, nil
}
