package payment

import (
	"time"

	"stayhub/internal/domain/booking"
)

// RefundPolicy decides how much of a completed payment is returned when a
// booking is cancelled. The proration formula is deliberately pluggable;
// the engine only guarantees the refund is applied atomically with the
// cancellation.
type RefundPolicy interface {
	RefundAmount(paid booking.Money, checkIn time.Time, cancelledAt time.Time) booking.Money
}

// FreeCancellationPolicy refunds in full when the cancellation lands at
// least FreeCancellationDays before check-in on a listing that offers free
// cancellation, and nothing otherwise.
type FreeCancellationPolicy struct {
	Enabled              bool
	FreeCancellationDays int
}

func (p FreeCancellationPolicy) RefundAmount(paid booking.Money, checkIn, cancelledAt time.Time) booking.Money {
	if !p.Enabled {
		return booking.Money{}
	}
	deadline := checkIn.AddDate(0, 0, -p.FreeCancellationDays)
	if cancelledAt.After(deadline) {
		return booking.Money{}
	}
	return paid
}

// NoRefundPolicy keeps every cancellation non-refundable.
type NoRefundPolicy struct{}

func (NoRefundPolicy) RefundAmount(booking.Money, time.Time, time.Time) booking.Money {
	return booking.Money{}
}
