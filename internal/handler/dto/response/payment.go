package response

import (
	"stayhub/internal/usecase/commands"

	"github.com/google/uuid"
)

type ReconciliationResponse struct {
	PaymentID     uuid.UUID `json:"paymentId"`
	BookingID     uuid.UUID `json:"bookingId"`
	PaymentStatus string    `json:"paymentStatus"`
	BookingStatus string    `json:"bookingStatus"`
	Replayed      bool      `json:"replayed"`
}

func FromReconciliationResult(r *commands.ReconciliationResult) *ReconciliationResponse {
	return &ReconciliationResponse{
		PaymentID:     r.PaymentID,
		BookingID:     r.BookingID,
		PaymentStatus: r.PaymentStatus,
		BookingStatus: r.BookingStatus,
		Replayed:      r.Replayed,
	}
}
