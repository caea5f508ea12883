package request

import (
	"time"

	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type QuoteRequest struct {
	CheckIn    string  `json:"check_in" binding:"required,datetime=2006-01-02"`
	CheckOut   string  `json:"check_out" binding:"required,datetime=2006-01-02"`
	CouponCode *string `json:"coupon_code,omitempty"`
}

func (r QuoteRequest) ToInput(listingID, guestID uuid.UUID) (queries.QuoteInput, error) {
	checkIn, err := time.Parse(dateLayout, r.CheckIn)
	if err != nil {
		return queries.QuoteInput{}, err
	}
	checkOut, err := time.Parse(dateLayout, r.CheckOut)
	if err != nil {
		return queries.QuoteInput{}, err
	}
	return queries.QuoteInput{
		ListingID:  listingID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		GuestID:    guestID,
		CouponCode: r.CouponCode,
	}, nil
}
