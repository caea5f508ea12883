package shared

import (
	"context"

	"stayhub/internal/domain/booking"
)

// EventPublisher pushes booking-state-changed events to the message bus.
// Publishing is best effort after commit; the outbox row written in the same
// transaction is the durable record.
type EventPublisher interface {
	PublishStateChanged(ctx context.Context, ev booking.StateChanged) error
}
