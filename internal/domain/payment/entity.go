package payment

import (
	"errors"
	"time"

	"stayhub/internal/domain/booking"

	"github.com/google/uuid"
)

var (
	ErrAlreadySettled    = errors.New("payment is already in a terminal status")
	ErrNotCompleted      = errors.New("only completed payments can be refunded")
	ErrRefundExceedsPaid = errors.New("refund exceeds the original payment amount")
	ErrInvalidMethod     = errors.New("invalid payment method")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

func (s Status) String() string { return string(s) }

// Terminal payments never change again; a replayed gateway event for one
// returns the recorded outcome.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusRefunded
}

type Method string

const (
	MethodVNPay        Method = "vnpay"
	MethodMomo         Method = "momo"
	MethodCash         Method = "cash"
	MethodBankTransfer Method = "bank_transfer"
)

func NewMethod(s string) (Method, error) {
	m := Method(s)
	switch m {
	case MethodVNPay, MethodMomo, MethodCash, MethodBankTransfer:
		return m, nil
	default:
		return "", ErrInvalidMethod
	}
}

type Payment struct {
	id                   uuid.UUID
	bookingID            uuid.UUID
	method               Method
	amount               booking.Money
	status               Status
	gatewayTransactionID *string
	refundAmount         booking.Money
	refundedAt           *time.Time
	createdAt            time.Time
	updatedAt            time.Time
}

func New(bookingID uuid.UUID, method Method, amount booking.Money, gatewayTxID *string, now time.Time) *Payment {
	return &Payment{
		id:                   uuid.New(),
		bookingID:            bookingID,
		method:               method,
		amount:               amount,
		status:               StatusPending,
		gatewayTransactionID: gatewayTxID,
		createdAt:            now,
		updatedAt:            now,
	}
}

func Reconstruct(
	id, bookingID uuid.UUID,
	method Method,
	amount booking.Money,
	status Status,
	gatewayTxID *string,
	refundAmount booking.Money,
	refundedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Payment {
	return &Payment{
		id:                   id,
		bookingID:            bookingID,
		method:               method,
		amount:               amount,
		status:               status,
		gatewayTransactionID: gatewayTxID,
		refundAmount:         refundAmount,
		refundedAt:           refundedAt,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
	}
}

func (p *Payment) ID() uuid.UUID                 { return p.id }
func (p *Payment) BookingID() uuid.UUID          { return p.bookingID }
func (p *Payment) Method() Method                { return p.method }
func (p *Payment) Amount() booking.Money         { return p.amount }
func (p *Payment) Status() Status                { return p.status }
func (p *Payment) GatewayTransactionID() *string { return p.gatewayTransactionID }
func (p *Payment) RefundAmount() booking.Money   { return p.refundAmount }
func (p *Payment) RefundedAt() *time.Time        { return p.refundedAt }
func (p *Payment) CreatedAt() time.Time          { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time          { return p.updatedAt }

func (p *Payment) MarkCompleted(now time.Time) error {
	if p.status.IsTerminal() {
		return ErrAlreadySettled
	}
	p.status = StatusCompleted
	p.updatedAt = now
	return nil
}

func (p *Payment) MarkFailed(now time.Time) error {
	if p.status.IsTerminal() {
		return ErrAlreadySettled
	}
	p.status = StatusFailed
	p.updatedAt = now
	return nil
}

// ApplyRefund records a refund delta against a completed payment. The
// cumulative refund can never exceed the amount originally paid; a full
// refund flips the status to Refunded.
func (p *Payment) ApplyRefund(amount booking.Money, now time.Time) error {
	if p.status != StatusCompleted && p.status != StatusRefunded {
		return ErrNotCompleted
	}
	total := p.refundAmount.Add(amount)
	if p.amount.LessThan(total) {
		return ErrRefundExceedsPaid
	}
	p.refundAmount = total
	p.refundedAt = &now
	if total == p.amount {
		p.status = StatusRefunded
	}
	p.updatedAt = now
	return nil
}
