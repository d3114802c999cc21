// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/flipitnews/internal/logging"
	"github.com/tomtom215/flipitnews/internal/metrics"
)

// Subscriber is the part of Bus a consumer needs.
type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan *message.Message, error)
}

// PredictionLogConsumer writes a PREDICTION log line for every event on the
// topic. It implements suture.Service.
type PredictionLogConsumer struct {
	sub    Subscriber
	logger *logging.PredictionLogger
}

// NewPredictionLogConsumer creates a consumer reading from sub.
func NewPredictionLogConsumer(sub Subscriber, logger *logging.PredictionLogger) *PredictionLogConsumer {
	return &PredictionLogConsumer{sub: sub, logger: logger}
}

// Serve consumes until ctx is canceled. Malformed payloads are logged and
// acked so they are not redelivered.
func (c *PredictionLogConsumer) Serve(ctx context.Context) error {
	messages, err := c.sub.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe to predictions: %w", err)
	}

	log := logging.WithComponent("prediction-log")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("prediction subscription closed")
			}
			c.handle(msg, &log)
		}
	}
}

func (c *PredictionLogConsumer) handle(msg *message.Message, log *zerolog.Logger) {
	defer msg.Ack()

	ev, err := UnmarshalPredictionEvent(msg.Payload)
	if err != nil {
		log.Warn().Err(err).Str("message_id", msg.UUID).Msg("Dropping malformed prediction event")
		return
	}
	c.logger.LogPrediction(ev.RequestID, ev.ModelUsed, ev.Text, ev.Category, ev.Confidence)
	metrics.RecordEventConsumed()
}

// String implements fmt.Stringer for suture logs.
func (c *PredictionLogConsumer) String() string {
	return "prediction-log-consumer"
}
