// Package gateway normalizes provider callback payloads into the single
// GatewayEvent shape the reconciler consumes. Signature verification happens
// at the edge middleware; by the time a payload reaches a parser it is
// authenticated but still provider-shaped.
package gateway

import (
	"net/url"

	"stayhub/internal/domain/payment"
	"stayhub/internal/pkg/errs"
)

var (
	ErrUnknownProvider   = errs.New("unknown payment provider")
	ErrMalformedCallback = errs.New("malformed gateway callback")
)

type Parser interface {
	Provider() payment.Method
	Parse(values url.Values) (payment.GatewayEvent, error)
}

type Registry struct {
	parsers map[payment.Method]Parser
}

func NewRegistry(parsers ...Parser) *Registry {
	r := &Registry{parsers: make(map[payment.Method]Parser, len(parsers))}
	for _, p := range parsers {
		r.parsers[p.Provider()] = p
	}
	return r
}

// DefaultRegistry wires every provider the engine settles with.
func DefaultRegistry() *Registry {
	return NewRegistry(VNPayParser{}, MomoParser{})
}

func (r *Registry) Parse(provider string, values url.Values) (payment.GatewayEvent, error) {
	method, err := payment.NewMethod(provider)
	if err != nil {
		return payment.GatewayEvent{}, errs.Mark(err, ErrUnknownProvider)
	}
	parser, ok := r.parsers[method]
	if !ok {
		return payment.GatewayEvent{}, ErrUnknownProvider
	}

	ev, err := parser.Parse(values)
	if err != nil {
		return payment.GatewayEvent{}, err
	}
	if err := ev.Validate(); err != nil {
		return payment.GatewayEvent{}, errs.Mark(err, ErrMalformedCallback)
	}
	return ev, nil
}
