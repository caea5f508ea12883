package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"stayhub/internal/domain/availability"
	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/coupon"
	"stayhub/internal/domain/pricing"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrListingNotFound         = errs.New("listing not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrCouponNotFound          = errs.New("coupon not found")
	ErrInvalidStay             = errs.New("invalid stay range")
	ErrDateRangeConflict       = errs.New("dates are not bookable")
	ErrTooManyGuests           = errs.New("party exceeds listing capacity")
	ErrCouponRejected          = errs.New("coupon rejected")
	ErrForbidden               = errs.New("actor may not perform this action")
	ErrTransitionConflict      = errs.New("booking changed concurrently")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// Settings carries the engine-level knobs commands need beyond listing data.
type Settings struct {
	HoldDuration time.Duration
	TaxRateBP    int64
}

type CreateBookingInput struct {
	ListingID  uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
	Adults     int32
	Children   int32
	CouponCode *string
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, input CreateBookingInput, guestID uuid.UUID) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
	publisher      shared.EventPublisher
	clock          clock.Clock
	settings       Settings
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	bookingQueries queries.BookingQueries,
	publisher shared.EventPublisher,
	clock clock.Clock,
	settings Settings,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
		publisher:      publisher,
		clock:          clock,
		settings:       settings,
	}
}

// CreateBooking places a Pending hold on the stay. The per-listing advisory
// lock serializes competing holds inside one process group; the per-night
// unique constraint in booking_days backstops everything else.
func (c *bookingCommandsImpl) CreateBooking(
	ctx context.Context,
	input CreateBookingInput,
	guestID uuid.UUID,
) (*queries.BookingView, error) {
	now := c.clock.Now()

	stay, err := availability.NewDateRange(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStay)
	}
	if err := stay.ValidateNotPast(now); err != nil {
		return nil, errs.Mark(err, ErrInvalidStay)
	}

	guests, err := booking.NewGuestCount(input.Adults, input.Children)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var bookingID uuid.UUID
	var event booking.StateChanged
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		listing, err := findListing(ctx, tx, input.ListingID)
		if err != nil {
			return err
		}
		if guests.Total() > listing.MaxGuests {
			return ErrTooManyGuests
		}

		if err := tx.Availability().LockListing(ctx, listing.ID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := checkRangeBookable(ctx, tx, listing.ID, stay); err != nil {
			return err
		}

		price, applied, err := priceStay(ctx, tx, listing, stay, guestID, input.CouponCode, nil, now, c.settings.TaxRateBP)
		if err != nil {
			return err
		}

		b, err := booking.NewBooking(listing.ID, guestID, stay, guests, price, c.settings.HoldDuration, now)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.Bookings().Create(ctx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Availability().HoldDates(ctx, b.ID(), listing.ID, stay); err != nil {
			// A writer outside the advisory lock (different database, stale
			// replica promotion) took one of our nights; the unique
			// constraint turns that into a conflict, not a double booking.
			if infra.IsKind(err, infra.KindDuplicateKey) || infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrDateRangeConflict)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if applied != nil {
			usage := shared.CouponUsage{
				CouponID:      applied.CouponID,
				BookingID:     b.ID(),
				DiscountCents: applied.Discount.Amount(),
				UsedAt:        now,
			}
			if err := tx.Coupons().AddUsage(ctx, usage); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		// Creation is modeled as a transition from the empty state.
		event = booking.NewStateChanged(b, "", now)
		if err := appendStateChangedJob(ctx, tx, event, "booking_created"); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		bookingID = b.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publishBestEffort(ctx, event)

	view, err := c.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *bookingCommandsImpl) publishBestEffort(ctx context.Context, ev booking.StateChanged) {
	if c.publisher == nil {
		return
	}
	if err := c.publisher.PublishStateChanged(ctx, ev); err != nil {
		slog.Warn("failed to publish state-changed event",
			"booking_id", ev.BookingID, "to", ev.To, "error", err)
	}
}

func findListing(ctx context.Context, tx shared.Tx, id uuid.UUID) (*shared.ListingSnapshot, error) {
	listing, err := tx.Listings().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return listing, nil
}

// checkRangeBookable runs the calendar rules plus the overlap probe against
// date-occupying bookings. Must run after LockListing.
func checkRangeBookable(ctx context.Context, tx shared.Tx, listingID uuid.UUID, stay availability.DateRange) error {
	overlap, err := tx.Bookings().HasOverlap(ctx, listingID, stay)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if overlap {
		return errs.Mark(errs.New(string(availability.ReasonAlreadyBooked)), ErrDateRangeConflict)
	}

	days, err := tx.Availability().DaysInRange(ctx, listingID, stay)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if reason := availability.CheckRange(days, stay); reason != availability.ReasonNone {
		return errs.Mark(errs.New(string(reason)), ErrDateRangeConflict)
	}
	return nil
}

type appliedCoupon struct {
	CouponID uuid.UUID
	Discount booking.Money
}

// priceStay computes the breakdown for a stay, evaluating the optional new
// coupon on top of any discounts already attached to the booking.
// existingDiscount is nil when pricing a fresh hold.
func priceStay(
	ctx context.Context,
	tx shared.Tx,
	listing *shared.ListingSnapshot,
	stay availability.DateRange,
	guestID uuid.UUID,
	couponCode *string,
	existingDiscount *booking.Money,
	now time.Time,
	taxRateBP int64,
) (booking.PriceBreakdown, *appliedCoupon, error) {
	days, err := tx.Availability().DaysInRange(ctx, listing.ID, stay)
	if err != nil {
		return booking.PriceBreakdown{}, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	card := shared.RateCardFor(listing, taxRateBP)
	overrides := shared.OverridesFrom(days)

	carried := booking.Money{}
	if existingDiscount != nil {
		carried = *existingDiscount
	}

	base, err := pricing.Quote(card, stay, overrides, carried)
	if err != nil {
		return booking.PriceBreakdown{}, nil, errs.Mark(err, ErrDomainValidation)
	}

	if couponCode == nil {
		return base, nil, nil
	}

	applied, err := evaluateCoupon(ctx, tx, *couponCode, coupon.Candidate{
		UserID:    guestID,
		ListingID: listing.ID,
		Amount:    base.Total(),
		Nights:    stay.Nights(),
	}, now)
	if err != nil {
		return booking.PriceBreakdown{}, nil, err
	}

	final, err := pricing.Quote(card, stay, overrides, carried.Add(applied.Discount))
	if err != nil {
		return booking.PriceBreakdown{}, nil, errs.Mark(err, ErrDomainValidation)
	}
	return final, applied, nil
}

// evaluateCoupon loads a coupon and runs the ordered validation chain against
// the candidate booking. Usage stats are read in the same transaction that
// appends the new usage row.
func evaluateCoupon(
	ctx context.Context,
	tx shared.Tx,
	code string,
	cand coupon.Candidate,
	now time.Time,
) (*appliedCoupon, error) {
	cfg, err := tx.Coupons().FindByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	entity, err := coupon.New(*cfg)
	if err != nil {
		return nil, errs.Mark(err, ErrCouponRejected)
	}

	usage, err := tx.Coupons().UsageStats(ctx, cfg.ID, cand.UserID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	discount, err := entity.Validate(now, cand, usage)
	if err != nil {
		return nil, errs.Mark(err, ErrCouponRejected)
	}
	return &appliedCoupon{CouponID: cfg.ID, Discount: discount}, nil
}

// appendStateChangedJob writes the outbox row the dispatcher later publishes.
// It commits atomically with the state change it describes.
func appendStateChangedJob(ctx context.Context, tx shared.Tx, ev booking.StateChanged, topic string) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return tx.Outbox().CreateJob(ctx, "event", topic, payload, ev.OccurredAt)
}
