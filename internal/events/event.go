// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

// Package events carries served predictions from the inference service to
// asynchronous consumers over a Watermill topic.
//
// The default transport is Watermill's in-process GoChannel. Builds with the
// nats tag can route the topic through NATS JetStream instead by setting
// events.nats_url. The only consumer shipped with the server is the
// prediction log, which writes one PREDICTION line per event.
package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// DefaultTopic is the topic predictions are published on.
const DefaultTopic = "predictions"

// Errors returned by the events package.
var (
	ErrInvalidEvent     = errors.New("invalid prediction event")
	ErrNATSNotAvailable = errors.New("NATS transport not compiled in (build with -tags nats)")
	ErrBusClosed        = errors.New("event bus is closed")
)

// PredictionEvent records one served classification.
type PredictionEvent struct {
	EventID    string    `json:"event_id"`
	RequestID  string    `json:"request_id,omitempty"`
	Strategy   string    `json:"strategy"`
	ModelUsed  string    `json:"model_used"`
	Category   string    `json:"category"`
	Confidence float64   `json:"confidence"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewPredictionEvent creates an event with a fresh ID and the current time.
func NewPredictionEvent(requestID, strategy, modelUsed, category string, confidence float64, text string) PredictionEvent {
	return PredictionEvent{
		EventID:    uuid.NewString(),
		RequestID:  requestID,
		Strategy:   strategy,
		ModelUsed:  modelUsed,
		Category:   category,
		Confidence: confidence,
		Text:       text,
		Timestamp:  time.Now().UTC(),
	}
}

// Validate checks the fields every consumer relies on.
func (e *PredictionEvent) Validate() error {
	switch {
	case e.EventID == "":
		return fmt.Errorf("%w: missing event_id", ErrInvalidEvent)
	case e.Strategy == "":
		return fmt.Errorf("%w: missing strategy", ErrInvalidEvent)
	case e.Category == "":
		return fmt.Errorf("%w: missing category", ErrInvalidEvent)
	case e.Confidence < 0 || e.Confidence > 1:
		return fmt.Errorf("%w: confidence %v outside [0,1]", ErrInvalidEvent, e.Confidence)
	}
	return nil
}

// Marshal encodes the event as JSON.
func (e *PredictionEvent) Marshal() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal prediction event: %w", err)
	}
	return data, nil
}

// UnmarshalPredictionEvent decodes and validates an event payload.
func UnmarshalPredictionEvent(data []byte) (PredictionEvent, error) {
	var e PredictionEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return PredictionEvent{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if err := e.Validate(); err != nil {
		return PredictionEvent{}, err
	}
	return e, nil
}
