package booking

import (
	"time"

	"github.com/google/uuid"
)

// StateChanged fires on every committed lifecycle transition. Consumers
// (notification dispatch, projections) receive it via the outbox.
type StateChanged struct {
	BookingID  uuid.UUID `json:"booking_id"`
	Code       string    `json:"booking_code"`
	ListingID  uuid.UUID `json:"listing_id"`
	From       Status    `json:"from"`
	To         Status    `json:"to"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewStateChanged(b *Booking, from Status, now time.Time) StateChanged {
	return StateChanged{
		BookingID:  b.ID(),
		Code:       b.Code().String(),
		ListingID:  b.ListingID(),
		From:       from,
		To:         b.Status(),
		OccurredAt: now,
	}
}
