package availability

import (
	"time"

	"github.com/google/uuid"
)

type BlockReason string

const (
	BlockReasonHost        BlockReason = "host_block"
	BlockReasonMaintenance BlockReason = "maintenance"
	BlockReasonBooking     BlockReason = "booking"
)

// Day-level calendar record for one listing. Absence of a row means the day
// is open at the listing's defaults.
type AvailabilityDay struct {
	ListingID        uuid.UUID
	Date             time.Time
	IsAvailable      bool
	IsBlocked        bool
	BlockReason      *string
	CustomPriceCents *int64
	MinimumNights    *int32
	UpdatedAt        time.Time
}

// UnbookableReason explains why a date range cannot be held. The zero value
// means the range is bookable.
type UnbookableReason string

const (
	ReasonNone          UnbookableReason = ""
	ReasonUnavailable   UnbookableReason = "unavailable"
	ReasonBlocked       UnbookableReason = "blocked"
	ReasonAlreadyBooked UnbookableReason = "already_booked"
	ReasonMinimumNights UnbookableReason = "minimum_nights"
)

func (d AvailabilityDay) Bookable() bool {
	return d.IsAvailable && !d.IsBlocked
}

// CheckRange evaluates per-day openness and the binding minimum-nights rule
// for a candidate stay. Days absent from the slice are treated as open.
// Overlap with existing bookings is checked separately against booking rows.
func CheckRange(days []AvailabilityDay, stay DateRange) UnbookableReason {
	minNights := int32(0)
	for _, d := range days {
		if !stay.ContainsNight(d.Date) {
			continue
		}
		if d.IsBlocked {
			return ReasonBlocked
		}
		if !d.IsAvailable {
			return ReasonUnavailable
		}
		if d.MinimumNights != nil && *d.MinimumNights > minNights {
			minNights = *d.MinimumNights
		}
	}
	if minNights > 0 && int32(stay.Nights()) < minNights {
		return ReasonMinimumNights
	}
	return ReasonNone
}
