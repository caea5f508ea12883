package request

type InitiatePaymentRequest struct {
	Method string `json:"method" binding:"required,oneof=vnpay momo"`
}

type ManualPaymentRequest struct {
	Method      string `json:"method" binding:"required,oneof=cash bank_transfer"`
	AmountCents int64  `json:"amount_cents" binding:"required,gt=0"`
}
