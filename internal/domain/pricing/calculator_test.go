//go:build unit

package pricing_test

import (
	"testing"
	"time"

	"stayhub/internal/domain/availability"
	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/pricing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpOpts = []cmp.Option{
	cmp.AllowUnexported(booking.Money{}),
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func stay(t *testing.T, checkIn time.Time, nights int) availability.DateRange {
	t.Helper()
	r, err := availability.NewDateRange(checkIn, checkIn.AddDate(0, 0, nights))
	require.NoError(t, err)
	return r
}

func baseCard() pricing.RateCard {
	flat := booking.MustMoney(150_000)
	return pricing.RateCard{
		BaseNightly:     booking.MustMoney(1_000_000),
		CleaningFee:     booking.MustMoney(200_000),
		ServiceFee:      pricing.ServiceFee{Flat: &flat},
		TaxRate:         booking.BasisPoints(1000),
		WeeklyDiscount:  booking.BasisPoints(500),
		MonthlyDiscount: booking.BasisPoints(1500),
	}
}

func TestQuote(t *testing.T) {
	// Monday 2026-03-02: short weekday stays avoid the weekend rate.
	monday := date(2026, 3, 2)

	t.Run("three weekday nights", func(t *testing.T) {
		p, err := pricing.Quote(baseCard(), stay(t, monday, 3), nil, booking.Money{})
		require.NoError(t, err)

		expected := booking.PriceBreakdown{
			Base:        booking.MustMoney(3_000_000),
			CleaningFee: booking.MustMoney(200_000),
			ServiceFee:  booking.MustMoney(150_000),
			Tax:         booking.MustMoney(300_000),
		}
		if diff := cmp.Diff(expected, p, cmpOpts...); diff != "" {
			t.Errorf("PriceBreakdown mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, int64(3_650_000), p.Total().Amount())
	})

	t.Run("seven nights earns the weekly discount", func(t *testing.T) {
		p, err := pricing.Quote(baseCard(), stay(t, monday, 7), nil, booking.Money{})
		require.NoError(t, err)

		assert.Equal(t, int64(7_000_000), p.Base.Amount())
		assert.Equal(t, int64(350_000), p.Discount.Amount())
		// Tax is charged on the discounted base.
		assert.Equal(t, int64(665_000), p.Tax.Amount())
	})

	t.Run("ten percent weekly discount on seven nights", func(t *testing.T) {
		card := baseCard()
		card.WeeklyDiscount = booking.BasisPoints(1000)

		p, err := pricing.Quote(card, stay(t, monday, 7), nil, booking.Money{})
		require.NoError(t, err)

		assert.Equal(t, int64(700_000), p.Discount.Amount())
		assert.Equal(t, int64(6_300_000), p.Base.SubFloor(p.Discount).Amount())
	})

	t.Run("thirty nights takes the monthly rate instead", func(t *testing.T) {
		p, err := pricing.Quote(baseCard(), stay(t, monday, 30), nil, booking.Money{})
		require.NoError(t, err)

		assert.Equal(t, int64(30_000_000), p.Base.Amount())
		assert.Equal(t, int64(4_500_000), p.Discount.Amount())
	})

	t.Run("weekend nightly rate", func(t *testing.T) {
		weekend := booking.MustMoney(1_400_000)
		card := baseCard()
		card.WeekendNightly = &weekend

		// Fri 2026-03-06 to Mon 2026-03-09: Fri + Sat + Sun nights.
		p, err := pricing.Quote(card, stay(t, date(2026, 3, 6), 3), nil, booking.Money{})
		require.NoError(t, err)

		// Friday night is a weekday rate; Saturday and Sunday are weekend.
		assert.Equal(t, int64(1_000_000+1_400_000+1_400_000), p.Base.Amount())
	})

	t.Run("per-night override beats every card rate", func(t *testing.T) {
		weekend := booking.MustMoney(1_400_000)
		card := baseCard()
		card.WeekendNightly = &weekend

		overrides := pricing.NightlyOverrides{
			date(2026, 3, 7): booking.MustMoney(2_000_000), // Saturday
		}
		p, err := pricing.Quote(card, stay(t, date(2026, 3, 6), 3), overrides, booking.Money{})
		require.NoError(t, err)

		assert.Equal(t, int64(1_000_000+2_000_000+1_400_000), p.Base.Amount())
	})

	t.Run("percentage service fee", func(t *testing.T) {
		pct := booking.BasisPoints(300)
		card := baseCard()
		card.ServiceFee = pricing.ServiceFee{Percent: &pct}

		p, err := pricing.Quote(card, stay(t, monday, 3), nil, booking.Money{})
		require.NoError(t, err)

		assert.Equal(t, int64(90_000), p.ServiceFee.Amount())
	})

	t.Run("coupon discount stacks with long-stay discount", func(t *testing.T) {
		p, err := pricing.Quote(baseCard(), stay(t, monday, 7), nil, booking.MustMoney(400_000))
		require.NoError(t, err)

		assert.Equal(t, int64(750_000), p.Discount.Amount())
		// base 7,000,000 + cleaning 200,000 + service 150,000 + tax 665,000 - 750,000
		assert.Equal(t, int64(7_265_000), p.Total().Amount())
	})

	t.Run("empty stay cannot be priced", func(t *testing.T) {
		_, err := pricing.Quote(baseCard(), availability.DateRange{}, nil, booking.Money{})
		require.ErrorIs(t, err, pricing.ErrNoNights)
	})
}
