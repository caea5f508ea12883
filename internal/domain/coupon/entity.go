package coupon

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"stayhub/internal/domain/booking"

	"github.com/google/uuid"
)

var (
	ErrInvalidCouponCode  = errors.New("invalid coupon code format")
	ErrCouponInactive     = errors.New("coupon is not active")
	ErrCouponNotStarted   = errors.New("coupon is not yet valid")
	ErrCouponExpired      = errors.New("coupon has expired")
	ErrCouponNotForListng = errors.New("coupon does not apply to this listing")
	ErrUsageLimitReached  = errors.New("coupon usage limit reached")
	ErrUserLimitReached   = errors.New("per-user coupon limit reached")
	ErrBelowMinimumSpend  = errors.New("booking amount below coupon minimum spend")
	ErrBelowMinimumNights = errors.New("stay shorter than coupon minimum nights")
	ErrMalformedDiscount  = errors.New("coupon must be either percentage or fixed amount")
)

var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

type Code string

func NewCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !couponCodeRegex.MatchString(code) {
		return "", ErrInvalidCouponCode
	}
	return Code(code), nil
}

func (c Code) String() string { return string(c) }

type Kind string

const (
	KindPercentage Kind = "percentage"
	KindFixed      Kind = "fixed"
)

// UsageStats are the recorded redemption counts the evaluator checks caps
// against. Loaded from the coupon usage ledger inside the same transaction
// that appends the new usage.
type UsageStats struct {
	Total  int64
	ByUser int64
}

// Candidate is the booking-in-progress a coupon is evaluated against.
type Candidate struct {
	UserID    uuid.UUID
	ListingID uuid.UUID
	Amount    booking.Money
	Nights    int
}

type Coupon struct {
	id             uuid.UUID
	code           Code
	kind           Kind
	percent        booking.BasisPoints
	amountOff      booking.Money
	maxDiscount    *booking.Money
	minSpend       booking.Money
	minNights      int32
	startsOn       time.Time
	endsOn         time.Time
	usageLimit     *int64
	perUserLimit   *int64
	global         bool
	listingIDs     map[uuid.UUID]struct{}
	active         bool
}

type Config struct {
	ID           uuid.UUID
	Code         string
	Kind         Kind
	PercentBP    int64
	AmountOff    int64
	MaxDiscount  *int64
	MinSpend     int64
	MinNights    int32
	StartsOn     time.Time
	EndsOn       time.Time
	UsageLimit   *int64
	PerUserLimit *int64
	Global       bool
	ListingIDs   []uuid.UUID
	Active       bool
}

func New(cfg Config) (*Coupon, error) {
	code, err := NewCode(cfg.Code)
	if err != nil {
		return nil, err
	}

	switch cfg.Kind {
	case KindPercentage:
		if cfg.PercentBP <= 0 || cfg.PercentBP > 10000 {
			return nil, ErrMalformedDiscount
		}
	case KindFixed:
		if cfg.AmountOff <= 0 {
			return nil, ErrMalformedDiscount
		}
	default:
		return nil, ErrMalformedDiscount
	}

	c := &Coupon{
		id:           cfg.ID,
		code:         code,
		kind:         cfg.Kind,
		percent:      booking.BasisPoints(cfg.PercentBP),
		amountOff:    booking.MustMoney(max64(cfg.AmountOff, 0)),
		minSpend:     booking.MustMoney(max64(cfg.MinSpend, 0)),
		minNights:    cfg.MinNights,
		startsOn:     cfg.StartsOn,
		endsOn:       cfg.EndsOn,
		usageLimit:   cfg.UsageLimit,
		perUserLimit: cfg.PerUserLimit,
		global:       cfg.Global,
		active:       cfg.Active,
		listingIDs:   make(map[uuid.UUID]struct{}, len(cfg.ListingIDs)),
	}
	if cfg.MaxDiscount != nil {
		m := booking.MustMoney(max64(*cfg.MaxDiscount, 0))
		c.maxDiscount = &m
	}
	for _, id := range cfg.ListingIDs {
		c.listingIDs[id] = struct{}{}
	}
	return c, nil
}

func (c *Coupon) ID() uuid.UUID { return c.id }
func (c *Coupon) Code() Code    { return c.code }
func (c *Coupon) Kind() Kind    { return c.kind }

// Validate runs the evaluation chain in its fixed order; the first failing
// check decides the returned reason. On success it returns the discount for
// the candidate, already capped so it never exceeds the booking amount.
func (c *Coupon) Validate(now time.Time, cand Candidate, usage UsageStats) (booking.Money, error) {
	if !c.active {
		return booking.Money{}, ErrCouponInactive
	}
	if now.Before(c.startsOn) {
		return booking.Money{}, ErrCouponNotStarted
	}
	if now.After(c.endsOn) {
		return booking.Money{}, ErrCouponExpired
	}
	if !c.global {
		if _, ok := c.listingIDs[cand.ListingID]; !ok {
			return booking.Money{}, ErrCouponNotForListng
		}
	}
	if c.usageLimit != nil && usage.Total >= *c.usageLimit {
		return booking.Money{}, ErrUsageLimitReached
	}
	if c.perUserLimit != nil && usage.ByUser >= *c.perUserLimit {
		return booking.Money{}, ErrUserLimitReached
	}
	if cand.Amount.LessThan(c.minSpend) {
		return booking.Money{}, ErrBelowMinimumSpend
	}
	if int32(cand.Nights) < c.minNights {
		return booking.Money{}, ErrBelowMinimumNights
	}

	return c.discountFor(cand.Amount), nil
}

func (c *Coupon) discountFor(amount booking.Money) booking.Money {
	var discount booking.Money
	switch c.kind {
	case KindPercentage:
		discount = c.percent.ApplyTo(amount)
		if c.maxDiscount != nil {
			discount = discount.Min(*c.maxDiscount)
		}
	case KindFixed:
		discount = c.amountOff
	}
	return discount.Min(amount)
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
