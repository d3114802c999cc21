// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/tomtom215/flipitnews/internal/metrics"
)

// Config selects the bus transport.
type Config struct {
	Topic string

	// BufferSize bounds the GoChannel output buffer per subscriber.
	BufferSize int

	// NATSURL switches to NATS JetStream when set. Requires the nats build tag.
	NATSURL string
}

// DefaultConfig returns an in-process bus on DefaultTopic.
func DefaultConfig() Config {
	return Config{
		Topic:      DefaultTopic,
		BufferSize: 256,
	}
}

// Bus publishes prediction events and hands them to subscribers.
type Bus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	topic      string
	transport  string
	shared     bool // publisher and subscriber are the same GoChannel

	mu     sync.RWMutex
	closed bool
}

// NewBus creates a bus for cfg. Without a NATS URL it uses an in-process
// GoChannel; with one it connects to NATS JetStream, which fails with
// ErrNATSNotAvailable in builds without the nats tag.
func NewBus(cfg Config, logger watermill.LoggerAdapter) (*Bus, error) {
	if cfg.Topic == "" {
		cfg.Topic = DefaultTopic
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultConfig().BufferSize
	}
	if logger == nil {
		logger = watermill.NopLogger{}
	}

	if cfg.NATSURL != "" {
		pub, sub, err := newNATSPubSub(cfg.NATSURL, logger)
		if err != nil {
			return nil, err
		}
		return &Bus{publisher: pub, subscriber: sub, topic: cfg.Topic, transport: "nats"}, nil
	}

	ch := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: int64(cfg.BufferSize),
	}, logger)
	return &Bus{publisher: ch, subscriber: ch, topic: cfg.Topic, transport: "gochannel", shared: true}, nil
}

// Topic returns the topic events are published on.
func (b *Bus) Topic() string {
	return b.topic
}

// Transport names the underlying transport: "gochannel" or "nats".
func (b *Bus) Transport() string {
	return b.transport
}

// Publish sends ev to the topic. The event ID becomes the message UUID.
func (b *Bus) Publish(ctx context.Context, ev PredictionEvent) (err error) {
	defer func() { metrics.RecordEventPublish(err) }()

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBusClosed
	}

	if err := ev.Validate(); err != nil {
		return err
	}
	payload, err := ev.Marshal()
	if err != nil {
		return err
	}

	msg := message.NewMessage(ev.EventID, payload)
	msg.Metadata.Set("strategy", ev.Strategy)
	msg.Metadata.Set("category", ev.Category)
	msg.SetContext(ctx)

	if err := b.publisher.Publish(b.topic, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", b.topic, err)
	}
	return nil
}

// Subscribe returns the message stream for the topic. The channel closes
// when ctx is canceled or the bus is closed.
func (b *Bus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil, ErrBusClosed
	}
	return b.subscriber.Subscribe(ctx, b.topic)
}

// Close shuts down the transport. It is safe to call more than once.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	err := b.publisher.Close()
	if !b.shared {
		err = errors.Join(err, b.subscriber.Close())
	}
	return err
}
