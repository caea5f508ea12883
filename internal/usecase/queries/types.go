package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID                 uuid.UUID  `json:"id"`
	Code               string     `json:"code"`
	ListingID          uuid.UUID  `json:"listing_id"`
	ListingName        string     `json:"listing_name"`
	HostID             uuid.UUID  `json:"-"`
	GuestID            uuid.UUID  `json:"guest_id"`
	CheckIn            time.Time  `json:"check_in"`
	CheckOut           time.Time  `json:"check_out"`
	Nights             int32      `json:"nights"`
	Adults             int32      `json:"adults"`
	Children           int32      `json:"children"`
	Status             string     `json:"status"`
	BaseCents          int64      `json:"base_cents"`
	CleaningFeeCents   int64      `json:"cleaning_fee_cents"`
	ServiceFeeCents    int64      `json:"service_fee_cents"`
	TaxCents           int64      `json:"tax_cents"`
	DiscountCents      int64      `json:"discount_cents"`
	TotalCents         int64      `json:"total_cents"`
	IsPaid             bool       `json:"is_paid"`
	PaymentExpiresAt   *time.Time `json:"payment_expires_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancelledBy        *uuid.UUID `json:"cancelled_by,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	ListingID   uuid.UUID `json:"listing_id"`
	ListingName string    `json:"listing_name"`
	CheckIn     time.Time `json:"check_in"`
	CheckOut    time.Time `json:"check_out"`
	Status      string    `json:"status"`
	TotalCents  int64     `json:"total_cents"`
	CreatedAt   time.Time `json:"created_at"`
}

type PaymentView struct {
	ID                   uuid.UUID  `json:"id"`
	BookingID            uuid.UUID  `json:"booking_id"`
	Method               string     `json:"method"`
	AmountCents          int64      `json:"amount_cents"`
	Status               string     `json:"status"`
	GatewayTransactionID *string    `json:"gateway_transaction_id,omitempty"`
	RefundCents          int64      `json:"refund_cents"`
	RefundedAt           *time.Time `json:"refunded_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

type AvailabilityDayView struct {
	Date             time.Time `json:"date"`
	IsAvailable      bool      `json:"is_available"`
	IsBlocked        bool      `json:"is_blocked"`
	BlockReason      *string   `json:"block_reason,omitempty"`
	CustomPriceCents *int64    `json:"custom_price_cents,omitempty"`
	MinimumNights    *int32    `json:"minimum_nights,omitempty"`
}

// RangeCheckView is the answer to "can this stay be booked", with the first
// failing rule as the reason when it cannot.
type RangeCheckView struct {
	Bookable bool   `json:"bookable"`
	Reason   string `json:"reason,omitempty"`
}

type QuoteView struct {
	ListingID        uuid.UUID `json:"listing_id"`
	CheckIn          time.Time `json:"check_in"`
	CheckOut         time.Time `json:"check_out"`
	Nights           int32     `json:"nights"`
	BaseCents        int64     `json:"base_cents"`
	CleaningFeeCents int64     `json:"cleaning_fee_cents"`
	ServiceFeeCents  int64     `json:"service_fee_cents"`
	TaxCents         int64     `json:"tax_cents"`
	DiscountCents    int64     `json:"discount_cents"`
	TotalCents       int64     `json:"total_cents"`
	CouponCode       *string   `json:"coupon_code,omitempty"`
}
