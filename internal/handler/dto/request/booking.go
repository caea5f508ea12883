package request

import (
	"strings"
	"time"

	"stayhub/internal/usecase/commands"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type CreateBookingRequest struct {
	ListingID  uuid.UUID `json:"listing_id" binding:"required"`
	CheckIn    string    `json:"check_in" binding:"required,datetime=2006-01-02"`
	CheckOut   string    `json:"check_out" binding:"required,datetime=2006-01-02"`
	Adults     int32     `json:"adults" binding:"required,min=1,max=16"`
	Children   int32     `json:"children" binding:"min=0,max=16"`
	CouponCode *string   `json:"coupon_code,omitempty"`
}

func (r CreateBookingRequest) ToInput() (commands.CreateBookingInput, error) {
	checkIn, err := time.Parse(dateLayout, r.CheckIn)
	if err != nil {
		return commands.CreateBookingInput{}, err
	}
	checkOut, err := time.Parse(dateLayout, r.CheckOut)
	if err != nil {
		return commands.CreateBookingInput{}, err
	}
	return commands.CreateBookingInput{
		ListingID:  r.ListingID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Adults:     r.Adults,
		Children:   r.Children,
		CouponCode: r.GetCouponCode(),
	}, nil
}

func (r CreateBookingRequest) GetCouponCode() *string {
	if r.CouponCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.CouponCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

type RejectBookingRequest struct {
	Reason string `json:"reason" binding:"required,min=10,max=500"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

type AttachCouponRequest struct {
	CouponCode string `json:"coupon_code" binding:"required,min=3,max=32"`
}
