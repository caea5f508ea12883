package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/payment"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/pkg/ptr"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUnknownTransaction = errs.New("unknown gateway transaction")
	ErrAmountMismatch     = errs.New("gateway amount does not match payment")
	ErrNotOnlineMethod    = errs.New("method is not an online gateway")
	ErrNotManualMethod    = errs.New("method is not a manual settlement")
	ErrHoldLapsed         = errs.New("payment deadline has passed")
	ErrNothingToPay       = errs.New("booking has no outstanding balance")
)

// ReconciliationResult reports what a gateway event did. Replayed means the
// payment was already terminal and nothing moved.
type ReconciliationResult struct {
	PaymentID     uuid.UUID `json:"payment_id"`
	BookingID     uuid.UUID `json:"booking_id"`
	PaymentStatus string    `json:"payment_status"`
	BookingStatus string    `json:"booking_status"`
	Replayed      bool      `json:"replayed"`
}

type PaymentCommands interface {
	// InitiatePayment opens a Pending payment against an unpaid hold and
	// returns the gateway transaction id the provider callback will carry.
	InitiatePayment(ctx context.Context, code string, actor booking.Actor, method string) (*queries.PaymentView, error)

	// ApplyGatewayEvent is the reconciler: idempotent by gateway
	// transaction id, safe to replay and to race against the sweeper.
	ApplyGatewayEvent(ctx context.Context, ev payment.GatewayEvent) (*ReconciliationResult, error)

	// RecordManualPayment settles a booking with money taken outside any
	// gateway (front desk cash, a verified bank transfer).
	RecordManualPayment(ctx context.Context, code string, actor booking.Actor, method string, amountCents int64) (*queries.PaymentView, error)
}

type paymentCommandsImpl struct {
	uow       shared.UnitOfWork
	publisher shared.EventPublisher
	clock     clock.Clock
}

func NewPaymentCommands(
	uow shared.UnitOfWork,
	publisher shared.EventPublisher,
	clock clock.Clock,
) PaymentCommands {
	return &paymentCommandsImpl{uow: uow, publisher: publisher, clock: clock}
}

func (p *paymentCommandsImpl) InitiatePayment(
	ctx context.Context,
	code string,
	actor booking.Actor,
	method string,
) (*queries.PaymentView, error) {
	parsed, err := booking.ParseCode(code)
	if err != nil {
		return nil, errs.Mark(err, ErrBookingNotFound)
	}
	m, err := payment.NewMethod(method)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	if m != payment.MethodVNPay && m != payment.MethodMomo {
		return nil, ErrNotOnlineMethod
	}

	now := p.clock.Now()
	var view *queries.PaymentView
	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := loadBooking(ctx, tx, parsed)
		if err != nil {
			return err
		}
		if actor.Role == booking.RoleGuest && b.GuestID() != actor.ID {
			return ErrForbidden
		}
		if b.Status() != booking.StatusPending {
			return errs.Mark(errs.New("booking is not awaiting payment"), booking.ErrInvalidTransition)
		}
		if b.HoldExpired(now) {
			return ErrHoldLapsed
		}

		outstanding, err := outstandingAmount(ctx, tx, b)
		if err != nil {
			return err
		}
		if outstanding.IsZero() {
			return ErrNothingToPay
		}

		txID := fmt.Sprintf("%s-%s", m, uuid.New())
		pay := payment.New(b.ID(), m, outstanding, ptr.To(txID), now)
		if err := tx.Payments().Create(ctx, pay); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		view = paymentViewOf(pay)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (p *paymentCommandsImpl) ApplyGatewayEvent(
	ctx context.Context,
	ev payment.GatewayEvent,
) (*ReconciliationResult, error) {
	if err := ev.Validate(); err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	now := p.clock.Now()
	var result *ReconciliationResult
	var event *booking.StateChanged
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result, event = nil, nil

		pay, err := tx.Payments().FindByGatewayTransactionID(ctx, ev.TransactionID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrUnknownTransaction
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		b, err := tx.Bookings().FindByID(ctx, pay.BookingID())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		// Replay: the event was already applied, return the recorded
		// outcome without touching anything.
		if pay.Status().IsTerminal() {
			result = reconciliationResultOf(pay, b, true)
			return nil
		}

		if ev.AmountMinor != pay.Amount().Amount() {
			return errs.Mark(
				fmt.Errorf("gateway reported %d, payment expects %d", ev.AmountMinor, pay.Amount().Amount()),
				ErrAmountMismatch,
			)
		}

		if !ev.Succeeded {
			if err := pay.MarkFailed(now); err != nil {
				return errs.Mark(err, ErrDomainValidation)
			}
			if err := tx.Payments().Update(ctx, pay); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			slog.Info("gateway payment failed",
				"payment_id", pay.ID(), "provider", ev.Provider, "code", ev.RawCode)
			result = reconciliationResultOf(pay, b, false)
			return nil
		}

		if err := pay.MarkCompleted(now); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		if err := tx.Payments().Update(ctx, pay); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		event, err = confirmOnPayment(ctx, tx, b, now)
		if err != nil {
			return err
		}
		result = reconciliationResultOf(pay, b, false)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if event != nil && p.publisher != nil {
		if pubErr := p.publisher.PublishStateChanged(ctx, *event); pubErr != nil {
			slog.Warn("failed to publish state-changed event",
				"booking_id", event.BookingID, "to", event.To, "error", pubErr)
		}
	}
	return result, nil
}

func (p *paymentCommandsImpl) RecordManualPayment(
	ctx context.Context,
	code string,
	actor booking.Actor,
	method string,
	amountCents int64,
) (*queries.PaymentView, error) {
	parsed, err := booking.ParseCode(code)
	if err != nil {
		return nil, errs.Mark(err, ErrBookingNotFound)
	}
	m, err := payment.NewMethod(method)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	if m != payment.MethodCash && m != payment.MethodBankTransfer {
		return nil, ErrNotManualMethod
	}
	amount, err := booking.NewMoney(amountCents)
	if err != nil || amount.IsZero() {
		return nil, errs.Mark(errs.New("manual payment amount must be positive"), ErrDomainValidation)
	}

	now := p.clock.Now()
	var view *queries.PaymentView
	var event *booking.StateChanged
	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		view, event = nil, nil

		b, err := loadBooking(ctx, tx, parsed)
		if err != nil {
			return err
		}
		if err := requireHostOrAdmin(ctx, tx, b, actor); err != nil {
			return err
		}

		pay := payment.New(b.ID(), m, amount, nil, now)
		if err := pay.MarkCompleted(now); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		if err := tx.Payments().Create(ctx, pay); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		event, err = confirmOnPayment(ctx, tx, b, now)
		if err != nil {
			return err
		}
		view = paymentViewOf(pay)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if event != nil && p.publisher != nil {
		if pubErr := p.publisher.PublishStateChanged(ctx, *event); pubErr != nil {
			slog.Warn("failed to publish state-changed event",
				"booking_id", event.BookingID, "to", event.To, "error", pubErr)
		}
	}
	return view, nil
}

// confirmOnPayment moves a fully paid Pending booking to Confirmed. A CAS
// loss here means the sweeper cancelled concurrently; the payment stays
// settled and an ops job is queued instead of failing the reconciliation.
func confirmOnPayment(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) (*booking.StateChanged, error) {
	if b.Status() != booking.StatusPending {
		if b.Status() == booking.StatusCancelled || b.Status() == booking.StatusRejected {
			return nil, queueOrphanedPaymentJob(ctx, tx, b, now)
		}
		return nil, nil
	}

	paid, err := tx.Payments().CompletedAmount(ctx, b.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if paid < b.Price().Total().Amount() {
		// Partial settlement keeps the hold open until the rest arrives
		// or the deadline passes.
		return nil, nil
	}

	prev := b.Status()
	if err := b.Confirm(now); err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	ok, err := tx.Bookings().UpdateStatusCAS(ctx, b, prev)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !ok {
		// Someone moved the booking while we were settling. Re-read to
		// see where it landed: only money on a dead booking needs the
		// ops follow-up, a concurrent confirm is already the outcome we
		// wanted.
		fresh, err := tx.Bookings().FindByID(ctx, b.ID())
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if fresh.Status() == booking.StatusCancelled || fresh.Status() == booking.StatusRejected {
			slog.Warn("payment settled on a dead booking", "booking_id", b.ID(), "status", fresh.Status())
			return nil, queueOrphanedPaymentJob(ctx, tx, fresh, now)
		}
		return nil, nil
	}

	ev := booking.NewStateChanged(b, prev, now)
	if err := appendStateChangedJob(ctx, tx, ev, "booking_state_changed"); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &ev, nil
}

// queueOrphanedPaymentJob flags money that settled on a booking no longer
// holding its dates so support can refund or rebook by hand.
func queueOrphanedPaymentJob(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id":   b.ID(),
		"booking_code": b.Code().String(),
		"type":         "payment_on_dead_booking",
	})
	if err != nil {
		return err
	}
	if err := tx.Outbox().CreateJob(ctx, "ops", "payment_reconciliation_required", payload, now); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func loadBooking(ctx context.Context, tx shared.Tx, code booking.Code) (*booking.Booking, error) {
	b, err := tx.Bookings().FindByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return b, nil
}

// requireHostOrAdmin allows admins, and hosts for their own listing only.
func requireHostOrAdmin(ctx context.Context, tx shared.Tx, b *booking.Booking, actor booking.Actor) error {
	switch actor.Role {
	case booking.RoleAdmin, booking.RoleSystem:
		return nil
	case booking.RoleHost:
		listing, err := findListing(ctx, tx, b.ListingID())
		if err != nil {
			return err
		}
		if listing.HostID != actor.ID {
			return ErrForbidden
		}
		return nil
	default:
		return ErrForbidden
	}
}

func outstandingAmount(ctx context.Context, tx shared.Tx, b *booking.Booking) (booking.Money, error) {
	paid, err := tx.Payments().CompletedAmount(ctx, b.ID())
	if err != nil {
		return booking.Money{}, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return b.Price().Total().SubFloor(booking.MustMoney(paid)), nil
}

func paymentViewOf(p *payment.Payment) *queries.PaymentView {
	return &queries.PaymentView{
		ID:                   p.ID(),
		BookingID:            p.BookingID(),
		Method:               string(p.Method()),
		AmountCents:          p.Amount().Amount(),
		Status:               string(p.Status()),
		GatewayTransactionID: p.GatewayTransactionID(),
		RefundCents:          p.RefundAmount().Amount(),
		RefundedAt:           p.RefundedAt(),
		CreatedAt:            p.CreatedAt(),
		UpdatedAt:            p.UpdatedAt(),
	}
}

func reconciliationResultOf(p *payment.Payment, b *booking.Booking, replayed bool) *ReconciliationResult {
	return &ReconciliationResult{
		PaymentID:     p.ID(),
		BookingID:     b.ID(),
		PaymentStatus: string(p.Status()),
		BookingStatus: string(b.Status()),
		Replayed:      replayed,
	}
}
