// Package pricing computes itemized booking prices. The calculator is a pure
// function over a listing's rate card, the stay, per-night overrides and an
// already-evaluated coupon discount; it performs no I/O.
package pricing

import (
	"errors"
	"time"

	"stayhub/internal/domain/availability"
	"stayhub/internal/domain/booking"
)

var ErrNoNights = errors.New("cannot price a zero-night stay")

const (
	weeklyStayNights  = 7
	monthlyStayNights = 30
)

// ServiceFee is either a flat amount or a percentage of the nightly base,
// per listing configuration.
type ServiceFee struct {
	Flat    *booking.Money
	Percent *booking.BasisPoints
}

func (f ServiceFee) amountFor(base booking.Money) booking.Money {
	if f.Flat != nil {
		return *f.Flat
	}
	if f.Percent != nil {
		return f.Percent.ApplyTo(base)
	}
	return booking.Money{}
}

// RateCard is the listing's pricing configuration, threaded in explicitly
// rather than read from ambient state.
type RateCard struct {
	BaseNightly     booking.Money
	WeekendNightly  *booking.Money
	CleaningFee     booking.Money
	ServiceFee      ServiceFee
	TaxRate         booking.BasisPoints
	WeeklyDiscount  booking.BasisPoints
	MonthlyDiscount booking.BasisPoints
}

// NightlyOverrides maps a stay night (midnight UTC) to a host-set custom price.
type NightlyOverrides map[time.Time]booking.Money

// Quote prices a stay. The long-stay discount is mutually exclusive: the
// monthly rate wins once the stay reaches its threshold, otherwise the weekly
// rate applies from seven nights. Tax is charged on the base net of the
// long-stay discount. The coupon discount, evaluated by the coupon package,
// is subtracted last and the total floors at zero.
func Quote(card RateCard, stay availability.DateRange, overrides NightlyOverrides, couponDiscount booking.Money) (booking.PriceBreakdown, error) {
	nights := stay.NightDates()
	if len(nights) == 0 {
		return booking.PriceBreakdown{}, ErrNoNights
	}

	var base booking.Money
	for _, night := range nights {
		base = base.Add(nightlyRate(card, overrides, night))
	}

	longStay := longStayDiscount(card, base, len(nights))
	tax := card.TaxRate.ApplyTo(base.SubFloor(longStay))

	return booking.PriceBreakdown{
		Base:        base,
		CleaningFee: card.CleaningFee,
		ServiceFee:  card.ServiceFee.amountFor(base),
		Tax:         tax,
		Discount:    longStay.Add(couponDiscount),
	}, nil
}

func nightlyRate(card RateCard, overrides NightlyOverrides, night time.Time) booking.Money {
	if custom, ok := overrides[night]; ok {
		return custom
	}
	if card.WeekendNightly != nil && isWeekend(night) {
		return *card.WeekendNightly
	}
	return card.BaseNightly
}

func longStayDiscount(card RateCard, base booking.Money, nights int) booking.Money {
	switch {
	case nights >= monthlyStayNights:
		return card.MonthlyDiscount.ApplyTo(base)
	case nights >= weeklyStayNights:
		return card.WeeklyDiscount.ApplyTo(base)
	default:
		return booking.Money{}
	}
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
