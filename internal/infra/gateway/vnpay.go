package gateway

import (
	"net/url"
	"strconv"

	"stayhub/internal/domain/payment"
	"stayhub/internal/pkg/errs"
)

// VNPayParser reads VNPAY return/IPN parameters. vnp_TxnRef carries the
// transaction id we issued at initiation; vnp_Amount arrives multiplied by
// 100 per the VNPAY convention; vnp_ResponseCode "00" is the only success.
type VNPayParser struct{}

func (VNPayParser) Provider() payment.Method { return payment.MethodVNPay }

func (VNPayParser) Parse(values url.Values) (payment.GatewayEvent, error) {
	txnRef := values.Get("vnp_TxnRef")
	if txnRef == "" {
		return payment.GatewayEvent{}, errs.Mark(errs.New("missing vnp_TxnRef"), ErrMalformedCallback)
	}

	rawAmount := values.Get("vnp_Amount")
	scaled, err := strconv.ParseInt(rawAmount, 10, 64)
	if err != nil || scaled <= 0 || scaled%100 != 0 {
		return payment.GatewayEvent{}, errs.Mark(errs.New("invalid vnp_Amount"), ErrMalformedCallback)
	}

	code := values.Get("vnp_ResponseCode")
	return payment.GatewayEvent{
		Provider:      payment.MethodVNPay,
		TransactionID: txnRef,
		AmountMinor:   scaled / 100,
		Succeeded:     code == "00",
		RawCode:       code,
	}, nil
}
