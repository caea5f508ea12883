//go:build unit

package commands_test

import (
	"context"
	"testing"

	"stayhub/internal/domain/booking"
	"stayhub/internal/usecase/commands"
	"stayhub/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type couponEnv struct {
	*commandEnv
	svc    commands.CouponCommands
	entity *booking.Booking
	guest  booking.Actor
	code   string
}

func newCouponEnv(t *testing.T, status booking.Status) *couponEnv {
	t.Helper()
	env := newCommandEnv()
	lb := builder.NewListingBuilder()
	env.tx.listings.add(lb.Build())
	cfg := builder.NewCouponBuilder().Config
	env.tx.coupons.configs[cfg.Code] = &cfg

	guestID := uuid.New()
	entity := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.ListingID = lb.Snapshot.ID
		b.GuestID = guestID
	}).MustBuildInStatus(status)
	require.NoError(t, env.tx.bookings.Create(context.Background(), entity))

	return &couponEnv{
		commandEnv: env,
		svc:        commands.NewCouponCommands(env.uow, env.queries, env.clock, testSettings()),
		entity:     entity,
		guest:      booking.Actor{ID: guestID, Role: booking.RoleGuest},
		code:       cfg.Code,
	}
}

func TestAttachCoupon(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("attach reprices the hold and records the usage", func(t *testing.T) {
		t.Parallel()
		env := newCouponEnv(t, booking.StatusPending)

		view, err := env.svc.Attach(ctx, env.entity.Code().String(), env.code, env.guest)

		require.NoError(t, err)
		assert.Equal(t, int64(730_000), view.DiscountCents)
		assert.Equal(t, int64(2_920_000), view.TotalCents)
		require.Len(t, env.tx.coupons.usages, 1)
		assert.Equal(t, int64(730_000), env.tx.coupons.usages[0].DiscountCents)
	})

	t.Run("attaching the same coupon twice", func(t *testing.T) {
		t.Parallel()
		env := newCouponEnv(t, booking.StatusPending)

		_, err := env.svc.Attach(ctx, env.entity.Code().String(), env.code, env.guest)
		require.NoError(t, err)
		_, err = env.svc.Attach(ctx, env.entity.Code().String(), env.code, env.guest)

		assert.ErrorIs(t, err, commands.ErrCouponAlreadyAttached)
		assert.Len(t, env.tx.coupons.usages, 1)
	})

	t.Run("unknown coupon code", func(t *testing.T) {
		t.Parallel()
		env := newCouponEnv(t, booking.StatusPending)

		_, err := env.svc.Attach(ctx, env.entity.Code().String(), "NOPE2026", env.guest)

		assert.ErrorIs(t, err, commands.ErrCouponNotFound)
	})

	t.Run("coupons cannot change once the hold is paid", func(t *testing.T) {
		t.Parallel()
		env := newCouponEnv(t, booking.StatusConfirmed)

		_, err := env.svc.Attach(ctx, env.entity.Code().String(), env.code, env.guest)

		assert.ErrorIs(t, err, booking.ErrInvalidTransition)
	})

	t.Run("another guest may not touch the booking", func(t *testing.T) {
		t.Parallel()
		env := newCouponEnv(t, booking.StatusPending)
		stranger := booking.Actor{ID: uuid.New(), Role: booking.RoleGuest}

		_, err := env.svc.Attach(ctx, env.entity.Code().String(), env.code, stranger)

		assert.ErrorIs(t, err, commands.ErrForbidden)
	})
}

func TestDetachCoupon(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("detach restores the undiscounted price", func(t *testing.T) {
		t.Parallel()
		env := newCouponEnv(t, booking.StatusPending)

		_, err := env.svc.Attach(ctx, env.entity.Code().String(), env.code, env.guest)
		require.NoError(t, err)

		view, err := env.svc.Detach(ctx, env.entity.Code().String(), env.code, env.guest)

		require.NoError(t, err)
		assert.Equal(t, int64(0), view.DiscountCents)
		assert.Equal(t, int64(3_650_000), view.TotalCents)
		assert.Empty(t, env.tx.coupons.usages)
	})

	t.Run("detaching a coupon that was never attached", func(t *testing.T) {
		t.Parallel()
		env := newCouponEnv(t, booking.StatusPending)

		_, err := env.svc.Detach(ctx, env.entity.Code().String(), env.code, env.guest)

		assert.ErrorIs(t, err, commands.ErrCouponNotAttached)
	})
}
