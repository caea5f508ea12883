package availability

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEmptyStay      = errors.New("check-in and check-out must not be the same day")
	ErrInvertedStay   = errors.New("check-in must be before check-out")
	ErrStayInPast     = errors.New("check-out cannot be in the past")
	ErrStayTooLong    = errors.New("stay exceeds maximum length")
	ErrNotMidnightUTC = errors.New("stay dates must be whole days")
)

// MaxStayNights bounds a single reservation; calendar edits are not bounded.
const MaxStayNights = 365

// DateRange is a half-open stay interval [CheckIn, CheckOut): the check-out
// day itself is not occupied, so back-to-back bookings may share it.
type DateRange struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewDateRange(checkIn, checkOut time.Time) (DateRange, error) {
	checkIn = Day(checkIn)
	checkOut = Day(checkOut)

	if checkIn.Equal(checkOut) {
		return DateRange{}, ErrEmptyStay
	}
	if checkIn.After(checkOut) {
		return DateRange{}, ErrInvertedStay
	}

	dr := DateRange{checkIn: checkIn, checkOut: checkOut}
	if dr.Nights() > MaxStayNights {
		return DateRange{}, ErrStayTooLong
	}
	return dr, nil
}

// Day truncates t to its calendar date in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (r DateRange) CheckIn() time.Time  { return r.checkIn }
func (r DateRange) CheckOut() time.Time { return r.checkOut }

func (r DateRange) Nights() int {
	return int(r.checkOut.Sub(r.checkIn) / (24 * time.Hour))
}

// ValidateNotPast rejects stays whose check-out is already behind now.
func (r DateRange) ValidateNotPast(now time.Time) error {
	if r.checkOut.Before(Day(now)) || r.checkOut.Equal(Day(now)) {
		return ErrStayInPast
	}
	return nil
}

// Overlaps reports whether two half-open ranges share at least one night.
// Adjacent ranges (one's check-out == the other's check-in) do not overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.checkIn.Before(other.checkOut) && other.checkIn.Before(r.checkOut)
}

// ContainsNight reports whether the given date is an occupied night of the stay.
func (r DateRange) ContainsNight(date time.Time) bool {
	d := Day(date)
	return !d.Before(r.checkIn) && d.Before(r.checkOut)
}

// Nights enumerates every occupied night of the stay in order.
func (r DateRange) NightDates() []time.Time {
	dates := make([]time.Time, 0, r.Nights())
	for d := r.checkIn; d.Before(r.checkOut); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s,%s)", r.checkIn.Format(time.DateOnly), r.checkOut.Format(time.DateOnly))
}
