package response

import (
	"time"

	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Code               string     `json:"code"`
	ListingID          uuid.UUID  `json:"listingId"`
	ListingName        string     `json:"listingName"`
	GuestID            uuid.UUID  `json:"guestId"`
	CheckIn            time.Time  `json:"checkIn"`
	CheckOut           time.Time  `json:"checkOut"`
	Nights             int32      `json:"nights"`
	Adults             int32      `json:"adults"`
	Children           int32      `json:"children"`
	Status             string     `json:"status"`
	BaseCents          int64      `json:"baseCents"`
	CleaningFeeCents   int64      `json:"cleaningFeeCents"`
	ServiceFeeCents    int64      `json:"serviceFeeCents"`
	TaxCents           int64      `json:"taxCents"`
	DiscountCents      int64      `json:"discountCents"`
	TotalCents         int64      `json:"totalCents"`
	IsPaid             bool       `json:"isPaid"`
	PaymentExpiresAt   *time.Time `json:"paymentExpiresAt,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

type BookingListResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	ListingID   uuid.UUID `json:"listingId"`
	ListingName string    `json:"listingName"`
	CheckIn     time.Time `json:"checkIn"`
	CheckOut    time.Time `json:"checkOut"`
	Status      string    `json:"status"`
	TotalCents  int64     `json:"totalCents"`
	CreatedAt   time.Time `json:"createdAt"`
}

type PaymentResponse struct {
	ID                   uuid.UUID  `json:"id"`
	BookingID            uuid.UUID  `json:"bookingId"`
	Method               string     `json:"method"`
	AmountCents          int64      `json:"amountCents"`
	Status               string     `json:"status"`
	GatewayTransactionID *string    `json:"gatewayTransactionId,omitempty"`
	RefundCents          int64      `json:"refundCents"`
	RefundedAt           *time.Time `json:"refundedAt,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromBookingListItems(items []*queries.BookingListItem) []*BookingListResponse {
	out := make([]*BookingListResponse, 0, len(items))
	for _, item := range items {
		var resp BookingListResponse
		_ = copier.Copy(&resp, item)
		out = append(out, &resp)
	}
	return out
}

func FromPaymentView(v *queries.PaymentView) *PaymentResponse {
	var resp PaymentResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromPaymentViews(views []*queries.PaymentView) []*PaymentResponse {
	out := make([]*PaymentResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromPaymentView(v))
	}
	return out
}
