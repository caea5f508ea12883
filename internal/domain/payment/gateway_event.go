package payment

import "errors"

var (
	ErrMissingTransactionID = errors.New("gateway event missing transaction id")
	ErrMissingAmount        = errors.New("gateway event missing amount")
)

// GatewayEvent is the normalized form of a provider callback. Providers
// deliver differently-shaped payloads; the gateway parsers reduce them to
// the three fields reconciliation needs. Signatures are verified upstream.
type GatewayEvent struct {
	Provider      Method
	TransactionID string
	AmountMinor   int64
	Succeeded     bool
	RawCode       string
}

func (e GatewayEvent) Validate() error {
	if e.TransactionID == "" {
		return ErrMissingTransactionID
	}
	if e.AmountMinor <= 0 {
		return ErrMissingAmount
	}
	return nil
}
