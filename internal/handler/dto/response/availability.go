package response

import (
	"time"

	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type AvailabilityDayResponse struct {
	Date             string  `json:"date"`
	IsAvailable      bool    `json:"isAvailable"`
	IsBlocked        bool    `json:"isBlocked"`
	BlockReason      *string `json:"blockReason,omitempty"`
	CustomPriceCents *int64  `json:"customPriceCents,omitempty"`
	MinimumNights    *int32  `json:"minimumNights,omitempty"`
}

type RangeCheckResponse struct {
	Bookable bool   `json:"bookable"`
	Reason   string `json:"reason,omitempty"`
}

type QuoteResponse struct {
	ListingID        uuid.UUID `json:"listingId"`
	CheckIn          time.Time `json:"checkIn"`
	CheckOut         time.Time `json:"checkOut"`
	Nights           int32     `json:"nights"`
	BaseCents        int64     `json:"baseCents"`
	CleaningFeeCents int64     `json:"cleaningFeeCents"`
	ServiceFeeCents  int64     `json:"serviceFeeCents"`
	TaxCents         int64     `json:"taxCents"`
	DiscountCents    int64     `json:"discountCents"`
	TotalCents       int64     `json:"totalCents"`
	CouponCode       *string   `json:"couponCode,omitempty"`
}

func FromAvailabilityDays(days []*queries.AvailabilityDayView) []*AvailabilityDayResponse {
	out := make([]*AvailabilityDayResponse, 0, len(days))
	for _, d := range days {
		out = append(out, &AvailabilityDayResponse{
			Date:             d.Date.Format("2006-01-02"),
			IsAvailable:      d.IsAvailable,
			IsBlocked:        d.IsBlocked,
			BlockReason:      d.BlockReason,
			CustomPriceCents: d.CustomPriceCents,
			MinimumNights:    d.MinimumNights,
		})
	}
	return out
}

func FromRangeCheck(v *queries.RangeCheckView) *RangeCheckResponse {
	return &RangeCheckResponse{Bookable: v.Bookable, Reason: v.Reason}
}

func FromQuoteView(v *queries.QuoteView) *QuoteResponse {
	var resp QuoteResponse
	_ = copier.Copy(&resp, v)
	return &resp
}
