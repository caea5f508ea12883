package queries

import (
	"context"
	"errors"
	"time"

	"stayhub/internal/domain/availability"
	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/coupon"
	"stayhub/internal/domain/pricing"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidRange = errs.New("invalid date range")
	ErrQuoteCoupon  = errs.New("coupon not applicable to quote")
)

type QuoteInput struct {
	ListingID  uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
	GuestID    uuid.UUID
	CouponCode *string
}

type AvailabilityQueries interface {
	// ListDays returns the listing's calendar rows inside [from, to).
	ListDays(ctx context.Context, listingID uuid.UUID, from, to time.Time) ([]*AvailabilityDayView, error)

	// CheckRange answers whether a stay can currently be booked, with the
	// first failing rule as the reason. Advisory only: the authoritative
	// check reruns under the reserve lock.
	CheckRange(ctx context.Context, listingID uuid.UUID, checkIn, checkOut time.Time) (*RangeCheckView, error)

	// Quote prices a stay without holding anything.
	Quote(ctx context.Context, input QuoteInput) (*QuoteView, error)
}

// AvailabilityViewRepo reads calendar and occupancy state outside any
// write transaction.
type AvailabilityViewRepo interface {
	DaysInRange(ctx context.Context, listingID uuid.UUID, from, to time.Time) ([]availability.AvailabilityDay, error)
	HasBookingOverlap(ctx context.Context, listingID uuid.UUID, stay availability.DateRange) (bool, error)
}

// CouponViewRepo exposes the read side of coupon evaluation for quotes.
type CouponViewRepo interface {
	FindByCode(ctx context.Context, code string) (*coupon.Config, error)
	UsageStats(ctx context.Context, couponID, userID uuid.UUID) (coupon.UsageStats, error)
}

type availabilityQueriesImpl struct {
	days     AvailabilityViewRepo
	listings shared.ListingReads
	coupons  CouponViewRepo
	clock    clock.Clock
	taxBP    int64
}

func NewAvailabilityQueries(
	days AvailabilityViewRepo,
	listings shared.ListingReads,
	coupons CouponViewRepo,
	clk clock.Clock,
	taxRateBP int64,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		days:     days,
		listings: listings,
		coupons:  coupons,
		clock:    clk,
		taxBP:    taxRateBP,
	}
}

func (q *availabilityQueriesImpl) ListDays(
	ctx context.Context,
	listingID uuid.UUID,
	from, to time.Time,
) ([]*AvailabilityDayView, error) {
	from, to = availability.Day(from), availability.Day(to)
	if !from.Before(to) {
		return nil, ErrInvalidRange
	}
	if _, err := q.listings.FindByID(ctx, listingID); err != nil {
		return nil, err
	}

	days, err := q.days.DaysInRange(ctx, listingID, from, to)
	if err != nil {
		return nil, err
	}
	views := make([]*AvailabilityDayView, len(days))
	for i, d := range days {
		views[i] = &AvailabilityDayView{
			Date:             d.Date,
			IsAvailable:      d.IsAvailable,
			IsBlocked:        d.IsBlocked,
			BlockReason:      d.BlockReason,
			CustomPriceCents: d.CustomPriceCents,
			MinimumNights:    d.MinimumNights,
		}
	}
	return views, nil
}

func (q *availabilityQueriesImpl) CheckRange(
	ctx context.Context,
	listingID uuid.UUID,
	checkIn, checkOut time.Time,
) (*RangeCheckView, error) {
	stay, err := availability.NewDateRange(checkIn, checkOut)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRange)
	}
	if err := stay.ValidateNotPast(q.clock.Now()); err != nil {
		return nil, errs.Mark(err, ErrInvalidRange)
	}
	if _, err := q.listings.FindByID(ctx, listingID); err != nil {
		return nil, err
	}

	overlap, err := q.days.HasBookingOverlap(ctx, listingID, stay)
	if err != nil {
		return nil, err
	}
	if overlap {
		return &RangeCheckView{Bookable: false, Reason: string(availability.ReasonAlreadyBooked)}, nil
	}

	days, err := q.days.DaysInRange(ctx, listingID, stay.CheckIn(), stay.CheckOut())
	if err != nil {
		return nil, err
	}
	if reason := availability.CheckRange(days, stay); reason != availability.ReasonNone {
		return &RangeCheckView{Bookable: false, Reason: string(reason)}, nil
	}
	return &RangeCheckView{Bookable: true}, nil
}

func (q *availabilityQueriesImpl) Quote(ctx context.Context, input QuoteInput) (*QuoteView, error) {
	stay, err := availability.NewDateRange(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRange)
	}
	now := q.clock.Now()
	if err := stay.ValidateNotPast(now); err != nil {
		return nil, errs.Mark(err, ErrInvalidRange)
	}

	listing, err := q.listings.FindByID(ctx, input.ListingID)
	if err != nil {
		return nil, err
	}
	days, err := q.days.DaysInRange(ctx, input.ListingID, stay.CheckIn(), stay.CheckOut())
	if err != nil {
		return nil, err
	}

	card := shared.RateCardFor(listing, q.taxBP)
	overrides := shared.OverridesFrom(days)

	breakdown, err := pricing.Quote(card, stay, overrides, booking.Money{})
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRange)
	}

	if input.CouponCode != nil {
		discount, err := q.quoteCoupon(ctx, *input.CouponCode, coupon.Candidate{
			UserID:    input.GuestID,
			ListingID: input.ListingID,
			Amount:    breakdown.Total(),
			Nights:    stay.Nights(),
		}, now)
		if err != nil {
			return nil, err
		}
		breakdown, err = pricing.Quote(card, stay, overrides, discount)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidRange)
		}
	}

	return &QuoteView{
		ListingID:        input.ListingID,
		CheckIn:          stay.CheckIn(),
		CheckOut:         stay.CheckOut(),
		Nights:           int32(stay.Nights()),
		BaseCents:        breakdown.Base.Amount(),
		CleaningFeeCents: breakdown.CleaningFee.Amount(),
		ServiceFeeCents:  breakdown.ServiceFee.Amount(),
		TaxCents:         breakdown.Tax.Amount(),
		DiscountCents:    breakdown.Discount.Amount(),
		TotalCents:       breakdown.Total().Amount(),
		CouponCode:       input.CouponCode,
	}, nil
}

func (q *availabilityQueriesImpl) quoteCoupon(
	ctx context.Context,
	code string,
	cand coupon.Candidate,
	now time.Time,
) (booking.Money, error) {
	cfg, err := q.coupons.FindByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return booking.Money{}, errs.Mark(errors.New("coupon not found"), ErrQuoteCoupon)
		}
		return booking.Money{}, err
	}
	entity, err := coupon.New(*cfg)
	if err != nil {
		return booking.Money{}, errs.Mark(err, ErrQuoteCoupon)
	}
	usage, err := q.coupons.UsageStats(ctx, cfg.ID, cand.UserID)
	if err != nil {
		return booking.Money{}, err
	}
	discount, err := entity.Validate(now, cand, usage)
	if err != nil {
		return booking.Money{}, errs.Mark(err, ErrQuoteCoupon)
	}
	return discount, nil
}
