package commands

import (
	"context"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"
)

var (
	ErrCouponAlreadyAttached = errs.New("coupon already attached to booking")
	ErrCouponNotAttached     = errs.New("coupon is not attached to booking")
)

// CouponCommands attaches and detaches coupons on an unpaid hold. Both
// operations reprice the booking in the same transaction; discounts of all
// attached coupons accumulate and the total still floors at zero.
type CouponCommands interface {
	Attach(ctx context.Context, code string, couponCode string, actor booking.Actor) (*queries.BookingView, error)
	Detach(ctx context.Context, code string, couponCode string, actor booking.Actor) (*queries.BookingView, error)
}

type couponCommandsImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
	clock          clock.Clock
	settings       Settings
}

func NewCouponCommands(
	uow shared.UnitOfWork,
	bookingQueries queries.BookingQueries,
	clock clock.Clock,
	settings Settings,
) CouponCommands {
	return &couponCommandsImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
		clock:          clock,
		settings:       settings,
	}
}

type couponMutator func(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) error

func (c *couponCommandsImpl) Attach(
	ctx context.Context,
	code string,
	couponCode string,
	actor booking.Actor,
) (*queries.BookingView, error) {
	return c.reprice(ctx, code, actor, func(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) error {
		cfg, err := tx.Coupons().FindByCode(ctx, couponCode)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrCouponNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		usages, err := tx.Coupons().UsagesForBooking(ctx, b.ID())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		existing := booking.Money{}
		for _, u := range usages {
			if u.CouponID == cfg.ID {
				return ErrCouponAlreadyAttached
			}
			existing = existing.Add(booking.MustMoney(u.DiscountCents))
		}

		listing, err := findListing(ctx, tx, b.ListingID())
		if err != nil {
			return err
		}

		price, applied, err := priceStay(ctx, tx, listing, b.Stay(), b.GuestID(), &couponCode, &existing, now, c.settings.TaxRateBP)
		if err != nil {
			return err
		}

		if err := b.Reprice(price, now); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		if err := tx.Bookings().UpdatePriceCAS(ctx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Coupons().AddUsage(ctx, shared.CouponUsage{
			CouponID:      applied.CouponID,
			BookingID:     b.ID(),
			DiscountCents: applied.Discount.Amount(),
			UsedAt:        now,
		}); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *couponCommandsImpl) Detach(
	ctx context.Context,
	code string,
	couponCode string,
	actor booking.Actor,
) (*queries.BookingView, error) {
	return c.reprice(ctx, code, actor, func(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) error {
		cfg, err := tx.Coupons().FindByCode(ctx, couponCode)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrCouponNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		usages, err := tx.Coupons().UsagesForBooking(ctx, b.ID())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		attached := false
		remaining := booking.Money{}
		for _, u := range usages {
			if u.CouponID == cfg.ID {
				attached = true
				continue
			}
			remaining = remaining.Add(booking.MustMoney(u.DiscountCents))
		}
		if !attached {
			return ErrCouponNotAttached
		}

		if err := tx.Coupons().RemoveUsage(ctx, cfg.ID, b.ID()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		listing, err := findListing(ctx, tx, b.ListingID())
		if err != nil {
			return err
		}
		price, _, err := priceStay(ctx, tx, listing, b.Stay(), b.GuestID(), nil, &remaining, now, c.settings.TaxRateBP)
		if err != nil {
			return err
		}
		if err := b.Reprice(price, now); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		if err := tx.Bookings().UpdatePriceCAS(ctx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *couponCommandsImpl) reprice(
	ctx context.Context,
	code string,
	actor booking.Actor,
	mutate couponMutator,
) (*queries.BookingView, error) {
	parsed, err := booking.ParseCode(code)
	if err != nil {
		return nil, errs.Mark(err, ErrBookingNotFound)
	}

	now := c.clock.Now()
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := loadBooking(ctx, tx, parsed)
		if err != nil {
			return err
		}
		if actor.Role == booking.RoleGuest && b.GuestID() != actor.ID {
			return ErrForbidden
		}
		if b.Status() != booking.StatusPending {
			return errs.Mark(errs.New("coupons can only change on an unpaid hold"), booking.ErrInvalidTransition)
		}
		return mutate(ctx, tx, b, now)
	})
	if err != nil {
		return nil, err
	}

	view, err := c.bookingQueries.GetByCodeSystem(ctx, parsed.String())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}
