package booking

import (
	"errors"
	"strings"
	"time"

	"stayhub/internal/domain/availability"

	"github.com/google/uuid"
)

var (
	ErrNoGuests           = errors.New("booking requires at least one adult guest")
	ErrNegativeGuestCount = errors.New("guest counts cannot be negative")
	ErrEmptyReason        = errors.New("a non-empty reason is required")
	ErrNotRepriceable     = errors.New("only pending bookings can be repriced")
)

type GuestCount struct {
	Adults   int32
	Children int32
}

func NewGuestCount(adults, children int32) (GuestCount, error) {
	if adults < 0 || children < 0 {
		return GuestCount{}, ErrNegativeGuestCount
	}
	if adults == 0 {
		return GuestCount{}, ErrNoGuests
	}
	return GuestCount{Adults: adults, Children: children}, nil
}

func (g GuestCount) Total() int32 { return g.Adults + g.Children }

type Booking struct {
	id        uuid.UUID
	code      Code
	listingID uuid.UUID
	guestID   uuid.UUID
	stay      availability.DateRange
	guests    GuestCount
	price     PriceBreakdown
	status    Status

	paymentExpiresAt   *time.Time
	createdAt          time.Time
	updatedAt          time.Time
	cancelledAt        *time.Time
	cancelledBy        *uuid.UUID
	cancellationReason *string
}

// NewBooking creates a fresh hold: a Pending booking whose dates are
// provisionally occupied until payment or expiry.
func NewBooking(
	listingID, guestID uuid.UUID,
	stay availability.DateRange,
	guests GuestCount,
	price PriceBreakdown,
	holdDuration time.Duration,
	now time.Time,
) (*Booking, error) {
	if err := stay.ValidateNotPast(now); err != nil {
		return nil, err
	}

	expiresAt := now.Add(holdDuration)
	return &Booking{
		id:               uuid.New(),
		code:             NewCode(),
		listingID:        listingID,
		guestID:          guestID,
		stay:             stay,
		guests:           guests,
		price:            price,
		status:           StatusPending,
		paymentExpiresAt: &expiresAt,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	code Code,
	listingID, guestID uuid.UUID,
	stay availability.DateRange,
	guests GuestCount,
	price PriceBreakdown,
	status Status,
	paymentExpiresAt *time.Time,
	createdAt, updatedAt time.Time,
	cancelledAt *time.Time,
	cancelledBy *uuid.UUID,
	cancellationReason *string,
) *Booking {
	return &Booking{
		id:                 id,
		code:               code,
		listingID:          listingID,
		guestID:            guestID,
		stay:               stay,
		guests:             guests,
		price:              price,
		status:             status,
		paymentExpiresAt:   paymentExpiresAt,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
		cancelledAt:        cancelledAt,
		cancelledBy:        cancelledBy,
		cancellationReason: cancellationReason,
	}
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) Code() Code                   { return b.code }
func (b *Booking) ListingID() uuid.UUID         { return b.listingID }
func (b *Booking) GuestID() uuid.UUID           { return b.guestID }
func (b *Booking) Stay() availability.DateRange { return b.stay }
func (b *Booking) Guests() GuestCount           { return b.guests }
func (b *Booking) Price() PriceBreakdown        { return b.price }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) PaymentExpiresAt() *time.Time { return b.paymentExpiresAt }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }
func (b *Booking) CancelledAt() *time.Time      { return b.cancelledAt }
func (b *Booking) CancelledBy() *uuid.UUID      { return b.cancelledBy }
func (b *Booking) CancellationReason() *string  { return b.cancellationReason }

// Reprice replaces the breakdown after a coupon is attached or detached.
// Only allowed while the booking is still an unpaid hold.
func (b *Booking) Reprice(price PriceBreakdown, now time.Time) error {
	if b.status != StatusPending {
		return ErrNotRepriceable
	}
	b.price = price
	b.updatedAt = now
	return nil
}

// HoldExpired reports whether the payment deadline of a Pending hold has passed.
func (b *Booking) HoldExpired(now time.Time) bool {
	return b.status == StatusPending && b.paymentExpiresAt != nil && b.paymentExpiresAt.Before(now)
}

// Confirm moves a paid hold to Confirmed and clears the payment deadline.
func (b *Booking) Confirm(now time.Time) error {
	if !b.status.CanTransitionTo(StatusConfirmed) {
		return invalidTransition(b.status, StatusConfirmed)
	}
	b.status = StatusConfirmed
	b.paymentExpiresAt = nil
	b.updatedAt = now
	return nil
}

// Reject declines a Pending hold, releasing its dates. Reason must be
// non-empty; length policy is a boundary concern.
func (b *Booking) Reject(reason string, now time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrEmptyReason
	}
	if !b.status.CanTransitionTo(StatusRejected) {
		return invalidTransition(b.status, StatusRejected)
	}
	b.status = StatusRejected
	b.paymentExpiresAt = nil
	b.cancellationReason = &reason
	b.cancelledAt = &now
	b.updatedAt = now
	return nil
}

// Cancel is allowed from Pending, Confirmed and CheckedIn; it records who
// cancelled and why, and releases the dates. Refunding any completed payment
// is the reconciler's follow-up, not done here.
func (b *Booking) Cancel(by uuid.UUID, reason string, now time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrEmptyReason
	}
	if !b.status.CanTransitionTo(StatusCancelled) {
		return invalidTransition(b.status, StatusCancelled)
	}
	b.status = StatusCancelled
	b.paymentExpiresAt = nil
	b.cancelledAt = &now
	b.cancelledBy = &by
	b.cancellationReason = &reason
	b.updatedAt = now
	return nil
}

func (b *Booking) CheckIn(now time.Time) error {
	if !b.status.CanTransitionTo(StatusCheckedIn) {
		return invalidTransition(b.status, StatusCheckedIn)
	}
	b.status = StatusCheckedIn
	b.updatedAt = now
	return nil
}

func (b *Booking) CheckOut(now time.Time) error {
	if !b.status.CanTransitionTo(StatusCheckedOut) {
		return invalidTransition(b.status, StatusCheckedOut)
	}
	b.status = StatusCheckedOut
	b.updatedAt = now
	return nil
}

// Complete finishes a checked-out stay. Calling it on an already Completed
// booking is an idempotent no-op.
func (b *Booking) Complete(now time.Time) error {
	if b.status == StatusCompleted {
		return nil
	}
	if !b.status.CanTransitionTo(StatusCompleted) {
		return invalidTransition(b.status, StatusCompleted)
	}
	b.status = StatusCompleted
	b.updatedAt = now
	return nil
}

func (b *Booking) MarkNoShow(now time.Time) error {
	if !b.status.CanTransitionTo(StatusNoShow) {
		return invalidTransition(b.status, StatusNoShow)
	}
	b.status = StatusNoShow
	b.updatedAt = now
	return nil
}
