// Package events pushes booking-state-changed events to Kafka. The outbox
// row written inside the transaction is the durable record; this publisher
// only shortens the latency for live consumers.
package events

import (
	"context"
	"encoding/json"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/pkg/config"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/shared"

	"github.com/segmentio/kafka-go"
)

type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewPublisher returns a Kafka-backed publisher, or a no-op one when event
// publishing is disabled in config.
func NewPublisher(cfg config.EventsConfig) (shared.EventPublisher, func()) {
	if !cfg.Enabled {
		return NoopPublisher{}, func() {}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{}, // hash by key keeps per-booking ordering
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}
	p := &KafkaPublisher{writer: writer}
	cleanup := func() { _ = writer.Close() }
	return p, cleanup
}

func (p *KafkaPublisher) PublishStateChanged(ctx context.Context, ev booking.StateChanged) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return errs.Wrap(err, "failed to encode state-changed event")
	}

	msg := kafka.Message{
		// Keyed by booking so one booking's transitions stay ordered.
		Key:   []byte(ev.BookingID.String()),
		Value: payload,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("booking.state-changed")},
			{Key: "booking_code", Value: []byte(ev.Code)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errs.Wrap(err, "failed to publish state-changed event")
	}
	return nil
}

// NoopPublisher drops events; the outbox still records them.
type NoopPublisher struct{}

func (NoopPublisher) PublishStateChanged(context.Context, booking.StateChanged) error {
	return nil
}
