package gateway

import (
	"net/url"
	"strconv"

	"stayhub/internal/domain/payment"
	"stayhub/internal/pkg/errs"
)

// MomoParser reads MoMo IPN parameters. orderId carries the transaction id
// we issued; amount is already in dong; resultCode 0 is success.
type MomoParser struct{}

func (MomoParser) Provider() payment.Method { return payment.MethodMomo }

func (MomoParser) Parse(values url.Values) (payment.GatewayEvent, error) {
	orderID := values.Get("orderId")
	if orderID == "" {
		return payment.GatewayEvent{}, errs.Mark(errs.New("missing orderId"), ErrMalformedCallback)
	}

	amount, err := strconv.ParseInt(values.Get("amount"), 10, 64)
	if err != nil || amount <= 0 {
		return payment.GatewayEvent{}, errs.Mark(errs.New("invalid amount"), ErrMalformedCallback)
	}

	code := values.Get("resultCode")
	return payment.GatewayEvent{
		Provider:      payment.MethodMomo,
		TransactionID: orderID,
		AmountMinor:   amount,
		Succeeded:     code == "0",
		RawCode:       code,
	}, nil
}
