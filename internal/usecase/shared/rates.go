package shared

import (
	"stayhub/internal/domain/availability"
	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/pricing"
)

// RateCardFor assembles the calculator input from a listing snapshot and the
// service-level tax rate. Fee structure is per listing; tax is configuration.
func RateCardFor(l *ListingSnapshot, taxRateBP int64) pricing.RateCard {
	card := pricing.RateCard{
		BaseNightly:     booking.MustMoney(l.BaseNightlyCents),
		CleaningFee:     booking.MustMoney(l.CleaningFeeCents),
		TaxRate:         booking.BasisPoints(taxRateBP),
		WeeklyDiscount:  booking.BasisPoints(l.WeeklyDiscountBP),
		MonthlyDiscount: booking.BasisPoints(l.MonthlyDiscountBP),
	}
	if l.WeekendNightlyCents != nil {
		w := booking.MustMoney(*l.WeekendNightlyCents)
		card.WeekendNightly = &w
	}
	switch {
	case l.ServiceFeeCents != nil:
		f := booking.MustMoney(*l.ServiceFeeCents)
		card.ServiceFee = pricing.ServiceFee{Flat: &f}
	case l.ServiceFeeBP != nil:
		p := booking.BasisPoints(*l.ServiceFeeBP)
		card.ServiceFee = pricing.ServiceFee{Percent: &p}
	}
	return card
}

// OverridesFrom extracts host-set custom nightly prices from calendar rows.
func OverridesFrom(days []availability.AvailabilityDay) pricing.NightlyOverrides {
	overrides := make(pricing.NightlyOverrides, len(days))
	for _, d := range days {
		if d.CustomPriceCents != nil {
			overrides[availability.Day(d.Date)] = booking.MustMoney(*d.CustomPriceCents)
		}
	}
	return overrides
}
