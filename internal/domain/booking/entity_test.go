//go:build unit

package booking_test

import (
	"testing"
	"time"

	"stayhub/internal/domain/availability"
	"stayhub/internal/domain/booking"
	"stayhub/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	errIs  error
}

func TestNewBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusPending, actual.Status())
		assert.Equal(t, 3, actual.Stay().Nights())
		require.NotNil(t, actual.PaymentExpiresAt())
		assert.Equal(t, b.Now.Add(30*time.Minute), *actual.PaymentExpiresAt())

		_, err = booking.ParseCode(actual.Code().String())
		assert.NoError(t, err)
	})

	t.Run("stay validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name: "same-day stay",
				mutate: func(b *builder.BookingBuilder) {
					b.CheckOut = b.CheckIn
				},
				errIs: availability.ErrEmptyStay,
			},
			{
				name: "inverted stay",
				mutate: func(b *builder.BookingBuilder) {
					b.CheckIn, b.CheckOut = b.CheckOut, b.CheckIn
				},
				errIs: availability.ErrInvertedStay,
			},
			{
				name: "stay entirely in the past",
				mutate: func(b *builder.BookingBuilder) {
					b.CheckIn = b.Now.AddDate(0, 0, -10)
					b.CheckOut = b.Now.AddDate(0, 0, -7)
				},
				errIs: availability.ErrStayInPast,
			},
			{
				name: "stay longer than a year",
				mutate: func(b *builder.BookingBuilder) {
					b.CheckOut = b.CheckIn.AddDate(0, 0, availability.MaxStayNights+1)
				},
				errIs: availability.ErrStayTooLong,
			},
		})
	})

	t.Run("guest validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "no adults",
				mutate: func(b *builder.BookingBuilder) { b.Adults = 0 },
				errIs:  booking.ErrNoGuests,
			},
			{
				name:   "negative children",
				mutate: func(b *builder.BookingBuilder) { b.Children = -1 },
				errIs:  booking.ErrNegativeGuestCount,
			},
			{
				name:   "children only counts as no adults",
				mutate: func(b *builder.BookingBuilder) { b.Adults = 0; b.Children = 2 },
				errIs:  booking.ErrNoGuests,
			},
		})
	})
}

func TestBookingTransitions(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	transitions := map[booking.Status]func(*booking.Booking) error{
		booking.StatusConfirmed:  func(b *booking.Booking) error { return b.Confirm(now) },
		booking.StatusRejected:   func(b *booking.Booking) error { return b.Reject("unit is double-booked offline", now) },
		booking.StatusCancelled:  func(b *booking.Booking) error { return b.Cancel(uuid.New(), "change of plans", now) },
		booking.StatusCheckedIn:  func(b *booking.Booking) error { return b.CheckIn(now) },
		booking.StatusCheckedOut: func(b *booking.Booking) error { return b.CheckOut(now) },
		booking.StatusNoShow:     func(b *booking.Booking) error { return b.MarkNoShow(now) },
		booking.StatusCompleted:  func(b *booking.Booking) error { return b.Complete(now) },
	}

	allowed := map[booking.Status][]booking.Status{
		booking.StatusPending:    {booking.StatusConfirmed, booking.StatusRejected, booking.StatusCancelled},
		booking.StatusConfirmed:  {booking.StatusCheckedIn, booking.StatusCancelled, booking.StatusNoShow},
		booking.StatusCheckedIn:  {booking.StatusCheckedOut, booking.StatusCancelled},
		booking.StatusCheckedOut: {booking.StatusCompleted},
		booking.StatusRejected:   {},
		booking.StatusCancelled:  {},
		booking.StatusNoShow:     {},
		booking.StatusCompleted:  {},
	}

	for from, targets := range allowed {
		permitted := make(map[booking.Status]bool, len(targets))
		for _, target := range targets {
			permitted[target] = true
		}

		for target, apply := range transitions {
			if target == from {
				continue
			}
			name := from.String() + " to " + target.String()
			t.Run(name, func(t *testing.T) {
				b := builder.NewBookingBuilder().MustBuildInStatus(from)
				err := apply(b)

				if permitted[target] {
					require.NoError(t, err)
					assert.Equal(t, target, b.Status())
				} else {
					require.ErrorIs(t, err, booking.ErrInvalidTransition)
					assert.Equal(t, from, b.Status())
				}
			})
		}
	}

	t.Run("complete is idempotent", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildInStatus(booking.StatusCompleted)
		require.NoError(t, b.Complete(now))
		assert.Equal(t, booking.StatusCompleted, b.Status())
	})

	t.Run("confirm clears the payment deadline", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildInStatus(booking.StatusPending)
		require.NotNil(t, b.PaymentExpiresAt())
		require.NoError(t, b.Confirm(now))
		assert.Nil(t, b.PaymentExpiresAt())
	})

	t.Run("cancel records who and why", func(t *testing.T) {
		by := uuid.New()
		b := builder.NewBookingBuilder().MustBuildInStatus(booking.StatusConfirmed)
		require.NoError(t, b.Cancel(by, "  flight was cancelled  ", now))

		require.NotNil(t, b.CancelledBy())
		assert.Equal(t, by, *b.CancelledBy())
		require.NotNil(t, b.CancellationReason())
		assert.Equal(t, "flight was cancelled", *b.CancellationReason())
		require.NotNil(t, b.CancelledAt())
		assert.Equal(t, now, *b.CancelledAt())
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildInStatus(booking.StatusPending)
		require.ErrorIs(t, b.Reject("   ", now), booking.ErrEmptyReason)
		assert.Equal(t, booking.StatusPending, b.Status())
	})

	t.Run("cancel requires a reason", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildInStatus(booking.StatusPending)
		require.ErrorIs(t, b.Cancel(uuid.New(), "", now), booking.ErrEmptyReason)
	})
}

func TestHoldExpired(t *testing.T) {
	b := builder.NewBookingBuilder()
	entity, err := b.BuildDomain()
	require.NoError(t, err)

	assert.False(t, entity.HoldExpired(b.Now))
	assert.False(t, entity.HoldExpired(b.Now.Add(30*time.Minute)))
	assert.True(t, entity.HoldExpired(b.Now.Add(31*time.Minute)))

	require.NoError(t, entity.Confirm(b.Now))
	assert.False(t, entity.HoldExpired(b.Now.Add(24*time.Hour)))
}

func TestReprice(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	discounted := builder.DefaultPrice()
	discounted.Discount = booking.MustMoney(500_000)

	t.Run("pending booking can be repriced", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildInStatus(booking.StatusPending)
		require.NoError(t, b.Reprice(discounted, now))
		assert.Equal(t, discounted.Total(), b.Price().Total())
		assert.Equal(t, now, b.UpdatedAt())
	})

	t.Run("confirmed booking cannot", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildInStatus(booking.StatusConfirmed)
		require.ErrorIs(t, b.Reprice(discounted, now), booking.ErrNotRepriceable)
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewBookingBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
