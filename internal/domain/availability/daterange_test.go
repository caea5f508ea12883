//go:build unit

package availability_test

import (
	"testing"
	"time"

	"stayhub/internal/domain/availability"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, checkIn, checkOut time.Time) availability.DateRange {
	t.Helper()
	r, err := availability.NewDateRange(checkIn, checkOut)
	require.NoError(t, err)
	return r
}

func TestNewDateRange(t *testing.T) {
	t.Run("normalizes to whole days", func(t *testing.T) {
		r, err := availability.NewDateRange(
			time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC),
			time.Date(2026, 3, 12, 11, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		assert.Equal(t, date(2026, 3, 10), r.CheckIn())
		assert.Equal(t, date(2026, 3, 12), r.CheckOut())
		assert.Equal(t, 2, r.Nights())
	})

	t.Run("rejects degenerate ranges", func(t *testing.T) {
		_, err := availability.NewDateRange(date(2026, 3, 10), date(2026, 3, 10))
		assert.ErrorIs(t, err, availability.ErrEmptyStay)

		_, err = availability.NewDateRange(date(2026, 3, 12), date(2026, 3, 10))
		assert.ErrorIs(t, err, availability.ErrInvertedStay)

		_, err = availability.NewDateRange(date(2026, 1, 1), date(2027, 1, 2))
		assert.ErrorIs(t, err, availability.ErrStayTooLong)
	})
}

func TestValidateNotPast(t *testing.T) {
	r := mustRange(t, date(2026, 3, 10), date(2026, 3, 12))

	assert.NoError(t, r.ValidateNotPast(date(2026, 3, 11)))
	// Check-out day itself is too late: nothing of the stay is left.
	assert.ErrorIs(t, r.ValidateNotPast(date(2026, 3, 12)), availability.ErrStayInPast)
	assert.ErrorIs(t, r.ValidateNotPast(date(2026, 4, 1)), availability.ErrStayInPast)
}

func TestOverlaps(t *testing.T) {
	base := mustRange(t, date(2026, 3, 10), date(2026, 3, 13))

	cases := []struct {
		name     string
		other    availability.DateRange
		overlaps bool
	}{
		{"identical", mustRange(t, date(2026, 3, 10), date(2026, 3, 13)), true},
		{"contained", mustRange(t, date(2026, 3, 11), date(2026, 3, 12)), true},
		{"straddles start", mustRange(t, date(2026, 3, 8), date(2026, 3, 11)), true},
		{"straddles end", mustRange(t, date(2026, 3, 12), date(2026, 3, 15)), true},
		{"back-to-back before", mustRange(t, date(2026, 3, 7), date(2026, 3, 10)), false},
		{"back-to-back after", mustRange(t, date(2026, 3, 13), date(2026, 3, 16)), false},
		{"disjoint", mustRange(t, date(2026, 4, 1), date(2026, 4, 5)), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.overlaps, base.Overlaps(c.other))
			assert.Equal(t, c.overlaps, c.other.Overlaps(base))
		})
	}
}

func TestContainsNight(t *testing.T) {
	r := mustRange(t, date(2026, 3, 10), date(2026, 3, 13))

	assert.True(t, r.ContainsNight(date(2026, 3, 10)))
	assert.True(t, r.ContainsNight(date(2026, 3, 12)))
	// The check-out day is not an occupied night.
	assert.False(t, r.ContainsNight(date(2026, 3, 13)))
	assert.False(t, r.ContainsNight(date(2026, 3, 9)))
}

func TestNightDates(t *testing.T) {
	r := mustRange(t, date(2026, 3, 10), date(2026, 3, 13))
	nights := r.NightDates()

	require.Len(t, nights, 3)
	assert.Equal(t, date(2026, 3, 10), nights[0])
	assert.Equal(t, date(2026, 3, 12), nights[2])
}

func TestCheckRange(t *testing.T) {
	listingID := uuid.New()
	stay := mustRange(t, date(2026, 3, 10), date(2026, 3, 13))

	day := func(d time.Time, mutate func(*availability.AvailabilityDay)) availability.AvailabilityDay {
		row := availability.AvailabilityDay{
			ListingID:   listingID,
			Date:        d,
			IsAvailable: true,
		}
		if mutate != nil {
			mutate(&row)
		}
		return row
	}

	t.Run("open days are bookable", func(t *testing.T) {
		days := []availability.AvailabilityDay{
			day(date(2026, 3, 10), nil),
			day(date(2026, 3, 11), nil),
		}
		assert.Equal(t, availability.ReasonNone, availability.CheckRange(days, stay))
	})

	t.Run("absent rows default to open", func(t *testing.T) {
		assert.Equal(t, availability.ReasonNone, availability.CheckRange(nil, stay))
	})

	t.Run("blocked night wins over unavailable", func(t *testing.T) {
		days := []availability.AvailabilityDay{
			day(date(2026, 3, 10), func(d *availability.AvailabilityDay) {
				d.IsBlocked = true
				d.IsAvailable = false
			}),
		}
		assert.Equal(t, availability.ReasonBlocked, availability.CheckRange(days, stay))
	})

	t.Run("closed night", func(t *testing.T) {
		days := []availability.AvailabilityDay{
			day(date(2026, 3, 11), func(d *availability.AvailabilityDay) { d.IsAvailable = false }),
		}
		assert.Equal(t, availability.ReasonUnavailable, availability.CheckRange(days, stay))
	})

	t.Run("days outside the stay are ignored", func(t *testing.T) {
		days := []availability.AvailabilityDay{
			day(date(2026, 3, 13), func(d *availability.AvailabilityDay) { d.IsBlocked = true }),
			day(date(2026, 3, 9), func(d *availability.AvailabilityDay) { d.IsAvailable = false }),
		}
		assert.Equal(t, availability.ReasonNone, availability.CheckRange(days, stay))
	})

	t.Run("strictest minimum nights applies", func(t *testing.T) {
		min2, min5 := int32(2), int32(5)
		days := []availability.AvailabilityDay{
			day(date(2026, 3, 10), func(d *availability.AvailabilityDay) { d.MinimumNights = &min2 }),
			day(date(2026, 3, 11), func(d *availability.AvailabilityDay) { d.MinimumNights = &min5 }),
		}
		assert.Equal(t, availability.ReasonMinimumNights, availability.CheckRange(days, stay))

		days = days[:1] // only the 2-night floor remains; 3 nights pass
		assert.Equal(t, availability.ReasonNone, availability.CheckRange(days, stay))
	})
}
