//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"stayhub/internal/domain/availability"
	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/coupon"
	"stayhub/internal/infra"
	"stayhub/internal/usecase/commands"
	"stayhub/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reserveInput(listingID uuid.UUID) commands.CreateBookingInput {
	return commands.CreateBookingInput{
		ListingID: listingID,
		CheckIn:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:  time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
		Adults:    2,
	}
}

func TestCreateBooking(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("places a pending hold and records the outbox event", func(t *testing.T) {
		t.Parallel()
		env := newCommandEnv()
		listing := builder.NewListingBuilder().Build()
		env.tx.listings.add(listing)
		guestID := uuid.New()

		svc := commands.NewBookingCommands(env.uow, env.queries, env.publisher, env.clock, testSettings())
		view, err := svc.CreateBooking(ctx, reserveInput(listing.ID), guestID)

		require.NoError(t, err)
		assert.Equal(t, "pending", view.Status)
		assert.Equal(t, int32(3), view.Nights)
		// 3 weekday nights at 1,000,000 plus cleaning, flat service fee and 10% tax.
		assert.Equal(t, int64(3_650_000), view.TotalCents)

		require.Len(t, env.tx.bookings.byID, 1)
		stored, err := env.tx.bookings.FindByID(ctx, view.ID)
		require.NoError(t, err)
		assert.Equal(t, listing.ID, env.tx.availabilities.held[stored.ID()])
		require.NotNil(t, stored.PaymentExpiresAt())
		assert.Equal(t, env.clock.Now().Add(30*time.Minute), *stored.PaymentExpiresAt())

		require.Len(t, env.tx.outbox.jobs, 1)
		assert.Equal(t, "event", env.tx.outbox.jobs[0].kind)
		assert.Equal(t, "booking_created", env.tx.outbox.jobs[0].topic)

		require.Len(t, env.publisher.events, 1)
		assert.Equal(t, booking.Status(""), env.publisher.events[0].From)
		assert.Equal(t, booking.StatusPending, env.publisher.events[0].To)
	})

	t.Run("overlapping booking rejects the stay", func(t *testing.T) {
		t.Parallel()
		env := newCommandEnv()
		listing := builder.NewListingBuilder().Build()
		env.tx.listings.add(listing)
		env.tx.bookings.overlap = true

		svc := commands.NewBookingCommands(env.uow, env.queries, env.publisher, env.clock, testSettings())
		_, err := svc.CreateBooking(ctx, reserveInput(listing.ID), uuid.New())

		assert.ErrorIs(t, err, commands.ErrDateRangeConflict)
		assert.Empty(t, env.tx.bookings.byID)
	})

	t.Run("blocked calendar day rejects the stay", func(t *testing.T) {
		t.Parallel()
		env := newCommandEnv()
		listing := builder.NewListingBuilder().Build()
		env.tx.listings.add(listing)
		env.tx.availabilities.days = []availability.AvailabilityDay{{
			ListingID:   listing.ID,
			Date:        time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
			IsAvailable: true,
			IsBlocked:   true,
		}}

		svc := commands.NewBookingCommands(env.uow, env.queries, env.publisher, env.clock, testSettings())
		_, err := svc.CreateBooking(ctx, reserveInput(listing.ID), uuid.New())

		assert.ErrorIs(t, err, commands.ErrDateRangeConflict)
	})

	t.Run("unique constraint on hold maps to a date conflict", func(t *testing.T) {
		t.Parallel()
		env := newCommandEnv()
		listing := builder.NewListingBuilder().Build()
		env.tx.listings.add(listing)
		env.tx.availabilities.holdErr = infra.WrapRepoErr("booking_days", nil, infra.KindDuplicateKey)

		svc := commands.NewBookingCommands(env.uow, env.queries, env.publisher, env.clock, testSettings())
		_, err := svc.CreateBooking(ctx, reserveInput(listing.ID), uuid.New())

		assert.ErrorIs(t, err, commands.ErrDateRangeConflict)
	})

	t.Run("party larger than capacity", func(t *testing.T) {
		t.Parallel()
		env := newCommandEnv()
		listing := builder.NewListingBuilder().Build()
		env.tx.listings.add(listing)

		input := reserveInput(listing.ID)
		input.Adults = 3
		input.Children = 2

		svc := commands.NewBookingCommands(env.uow, env.queries, env.publisher, env.clock, testSettings())
		_, err := svc.CreateBooking(ctx, input, uuid.New())

		assert.ErrorIs(t, err, commands.ErrTooManyGuests)
	})

	t.Run("stay in the past", func(t *testing.T) {
		t.Parallel()
		env := newCommandEnv()
		listing := builder.NewListingBuilder().Build()
		env.tx.listings.add(listing)

		input := reserveInput(listing.ID)
		input.CheckIn = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		input.CheckOut = time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC)

		svc := commands.NewBookingCommands(env.uow, env.queries, env.publisher, env.clock, testSettings())
		_, err := svc.CreateBooking(ctx, input, uuid.New())

		assert.ErrorIs(t, err, commands.ErrInvalidStay)
	})

	t.Run("unknown listing", func(t *testing.T) {
		t.Parallel()
		env := newCommandEnv()

		svc := commands.NewBookingCommands(env.uow, env.queries, env.publisher, env.clock, testSettings())
		_, err := svc.CreateBooking(ctx, reserveInput(uuid.New()), uuid.New())

		assert.ErrorIs(t, err, commands.ErrListingNotFound)
	})
}

func TestCreateBookingWithCoupon(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("valid coupon discounts the total and records a usage", func(t *testing.T) {
		t.Parallel()
		env := newCommandEnv()
		listing := builder.NewListingBuilder().Build()
		env.tx.listings.add(listing)
		cfg := builder.NewCouponBuilder().Config
		env.tx.coupons.configs[cfg.Code] = &cfg
		guestID := uuid.New()

		input := reserveInput(listing.ID)
		input.CouponCode = &cfg.Code

		svc := commands.NewBookingCommands(env.uow, env.queries, env.publisher, env.clock, testSettings())
		view, err := svc.CreateBooking(ctx, input, guestID)

		require.NoError(t, err)
		// 20% of the undiscounted 3,650,000 total.
		assert.Equal(t, int64(730_000), view.DiscountCents)
		assert.Equal(t, int64(2_920_000), view.TotalCents)

		require.Len(t, env.tx.coupons.usages, 1)
		assert.Equal(t, cfg.ID, env.tx.coupons.usages[0].CouponID)
		assert.Equal(t, view.ID, env.tx.coupons.usages[0].BookingID)
		assert.Equal(t, int64(730_000), env.tx.coupons.usages[0].DiscountCents)
	})

	t.Run("unknown coupon code", func(t *testing.T) {
		t.Parallel()
		env := newCommandEnv()
		listing := builder.NewListingBuilder().Build()
		env.tx.listings.add(listing)

		code := "NOPE2026"
		input := reserveInput(listing.ID)
		input.CouponCode = &code

		svc := commands.NewBookingCommands(env.uow, env.queries, env.publisher, env.clock, testSettings())
		_, err := svc.CreateBooking(ctx, input, uuid.New())

		assert.ErrorIs(t, err, commands.ErrCouponNotFound)
		assert.Empty(t, env.tx.bookings.byID)
	})

	t.Run("inactive coupon rejects the hold outright", func(t *testing.T) {
		t.Parallel()
		env := newCommandEnv()
		listing := builder.NewListingBuilder().Build()
		env.tx.listings.add(listing)
		cfg := builder.NewCouponBuilder().With(func(c *coupon.Config) {
			c.Active = false
		}).Config
		env.tx.coupons.configs[cfg.Code] = &cfg

		input := reserveInput(listing.ID)
		input.CouponCode = &cfg.Code

		svc := commands.NewBookingCommands(env.uow, env.queries, env.publisher, env.clock, testSettings())
		_, err := svc.CreateBooking(ctx, input, uuid.New())

		assert.ErrorIs(t, err, commands.ErrCouponRejected)
	})

	t.Run("publish failure does not fail the booking", func(t *testing.T) {
		t.Parallel()
		env := newCommandEnv()
		env.publisher.err = assert.AnError
		listing := builder.NewListingBuilder().Build()
		env.tx.listings.add(listing)

		svc := commands.NewBookingCommands(env.uow, env.queries, env.publisher, env.clock, testSettings())
		view, err := svc.CreateBooking(ctx, reserveInput(listing.ID), uuid.New())

		require.NoError(t, err)
		assert.Equal(t, "pending", view.Status)
		// The outbox row is the durable record regardless.
		require.Len(t, env.tx.outbox.jobs, 1)
	})
}

func TestCreateBookingConcurrentHolds(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// The per-night uniqueness backstop must let exactly one of N racing
	// holds through, regardless of interleaving.
	env := newCommandEnv()
	env.tx.availabilities.claimed = map[string]uuid.UUID{}
	listing := builder.NewListingBuilder().Build()
	env.tx.listings.add(listing)

	svc := commands.NewBookingCommands(env.uow, env.queries, env.publisher, env.clock, testSettings())

	const racers = 8
	results := make([]error, racers)
	var wg sync.WaitGroup
	for i := range racers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[i] = svc.CreateBooking(ctx, reserveInput(listing.ID), uuid.New())
		}()
	}
	wg.Wait()

	var won, lost int
	for _, err := range results {
		switch {
		case err == nil:
			won++
		case errors.Is(err, commands.ErrDateRangeConflict):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, racers-1, lost)
	assert.Len(t, env.tx.availabilities.held, 1)
	// Three nights claimed by the single winner.
	assert.Len(t, env.tx.availabilities.claimed, 3)
}
