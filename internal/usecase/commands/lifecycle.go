package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/payment"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/shared"
)

// LifecycleCommands drives every booking transition. Each method runs the
// same sequence: load, capability check, entity guard, compare-and-swap
// persist, side effects, outbox event. Losing the CAS maps to
// ErrTransitionConflict so callers can distinguish races from misuse.
type LifecycleCommands interface {
	Confirm(ctx context.Context, code string, actor booking.Actor) error
	Reject(ctx context.Context, code string, actor booking.Actor, reason string) error
	Cancel(ctx context.Context, code string, actor booking.Actor, reason string) error
	CheckIn(ctx context.Context, code string, actor booking.Actor) error
	CheckOut(ctx context.Context, code string, actor booking.Actor) error
	Complete(ctx context.Context, code string, actor booking.Actor) error
	MarkNoShow(ctx context.Context, code string, actor booking.Actor) error

	// ExpireHold cancels one expired Pending hold on behalf of the sweeper.
	// Losing the race to a concurrent Confirm is a benign no-op.
	ExpireHold(ctx context.Context, bookingCode string) error
}

type lifecycleCommandsImpl struct {
	uow       shared.UnitOfWork
	publisher shared.EventPublisher
	clock     clock.Clock
}

func NewLifecycleCommands(
	uow shared.UnitOfWork,
	publisher shared.EventPublisher,
	clock clock.Clock,
) LifecycleCommands {
	return &lifecycleCommandsImpl{uow: uow, publisher: publisher, clock: clock}
}

func (l *lifecycleCommandsImpl) Confirm(ctx context.Context, code string, actor booking.Actor) error {
	return l.transition(ctx, code, actor, booking.StatusConfirmed, func(b *booking.Booking, now time.Time) error {
		return b.Confirm(now)
	}, nil)
}

func (l *lifecycleCommandsImpl) Reject(ctx context.Context, code string, actor booking.Actor, reason string) error {
	return l.transition(ctx, code, actor, booking.StatusRejected, func(b *booking.Booking, now time.Time) error {
		return b.Reject(reason, now)
	}, releaseHold)
}

func (l *lifecycleCommandsImpl) Cancel(ctx context.Context, code string, actor booking.Actor, reason string) error {
	return l.transition(ctx, code, actor, booking.StatusCancelled, func(b *booking.Booking, now time.Time) error {
		return b.Cancel(actor.ID, reason, now)
	}, cancelFollowUp)
}

func (l *lifecycleCommandsImpl) CheckIn(ctx context.Context, code string, actor booking.Actor) error {
	return l.transition(ctx, code, actor, booking.StatusCheckedIn, func(b *booking.Booking, now time.Time) error {
		return b.CheckIn(now)
	}, nil)
}

func (l *lifecycleCommandsImpl) CheckOut(ctx context.Context, code string, actor booking.Actor) error {
	return l.transition(ctx, code, actor, booking.StatusCheckedOut, func(b *booking.Booking, now time.Time) error {
		return b.CheckOut(now)
	}, nil)
}

func (l *lifecycleCommandsImpl) Complete(ctx context.Context, code string, actor booking.Actor) error {
	return l.transition(ctx, code, actor, booking.StatusCompleted, func(b *booking.Booking, now time.Time) error {
		return b.Complete(now)
	}, nil)
}

func (l *lifecycleCommandsImpl) MarkNoShow(ctx context.Context, code string, actor booking.Actor) error {
	return l.transition(ctx, code, actor, booking.StatusNoShow, func(b *booking.Booking, now time.Time) error {
		return b.MarkNoShow(now)
	}, noShowFollowUp)
}

func (l *lifecycleCommandsImpl) ExpireHold(ctx context.Context, bookingCode string) error {
	err := l.transition(ctx, bookingCode, booking.SystemActor, booking.StatusCancelled, func(b *booking.Booking, now time.Time) error {
		if !b.HoldExpired(now) {
			return booking.ErrInvalidTransition
		}
		return b.Cancel(booking.SystemActor.ID, "payment deadline passed", now)
	}, cancelFollowUp)

	// A payment confirmed the booking between our read and our write, or
	// another sweeper already cancelled it. Either way the system is
	// consistent and there is nothing to do.
	if errors.Is(err, booking.ErrInvalidTransition) || errors.Is(err, ErrTransitionConflict) {
		slog.Debug("expiry sweep lost transition race", "booking_code", bookingCode)
		return nil
	}
	return err
}

type mutateFunc func(b *booking.Booking, now time.Time) error

// followUpFunc runs inside the same transaction after the CAS succeeded.
type followUpFunc func(ctx context.Context, tx shared.Tx, b *booking.Booking, actor booking.Actor, now time.Time) error

func (l *lifecycleCommandsImpl) transition(
	ctx context.Context,
	code string,
	actor booking.Actor,
	target booking.Status,
	mutate mutateFunc,
	followUp followUpFunc,
) error {
	parsed, err := booking.ParseCode(code)
	if err != nil {
		return errs.Mark(err, ErrBookingNotFound)
	}

	now := l.clock.Now()
	var event booking.StateChanged
	var changed bool

	err = l.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByCode(ctx, parsed)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if !actor.CanTransition(b, target) {
			return ErrForbidden
		}
		if actor.Role == booking.RoleHost {
			// Role alone is not enough: the booking must belong to one of
			// the host's own listings.
			if err := requireHostOrAdmin(ctx, tx, b, actor); err != nil {
				return err
			}
		}

		prev := b.Status()
		if err := mutate(b, now); err != nil {
			return err
		}
		if b.Status() == prev {
			// Idempotent no-op (e.g. Complete on a completed booking).
			changed = false
			return nil
		}

		ok, err := tx.Bookings().UpdateStatusCAS(ctx, b, prev)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !ok {
			return ErrTransitionConflict
		}

		if followUp != nil {
			if err := followUp(ctx, tx, b, actor, now); err != nil {
				return err
			}
		}

		event = booking.NewStateChanged(b, prev, now)
		if err := appendStateChangedJob(ctx, tx, event, "booking_state_changed"); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		changed = true
		return nil
	})
	if err != nil {
		return err
	}

	if changed {
		l.publishBestEffortTransition(ctx, event)
	}
	return nil
}

func (l *lifecycleCommandsImpl) publishBestEffortTransition(ctx context.Context, ev booking.StateChanged) {
	if l.publisher == nil {
		return
	}
	if err := l.publisher.PublishStateChanged(ctx, ev); err != nil {
		slog.Warn("failed to publish state-changed event",
			"booking_id", ev.BookingID, "from", ev.From, "to", ev.To, "error", err)
	}
}

// releaseHold frees the nights and any attached coupon usages. Used by the
// transitions that end a booking before payment mattered.
func releaseHold(ctx context.Context, tx shared.Tx, b *booking.Booking, _ booking.Actor, _ time.Time) error {
	if err := tx.Availability().ReleaseDates(ctx, b.ID()); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if err := tx.Coupons().ReleaseForBooking(ctx, b.ID()); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

// noShowFollowUp frees the nights only. A no-show forfeits any money already
// settled, so coupon usages stay consumed on a paid booking; an unpaid
// no-show returns the coupon the same way a rejection does.
func noShowFollowUp(ctx context.Context, tx shared.Tx, b *booking.Booking, _ booking.Actor, _ time.Time) error {
	if err := tx.Availability().ReleaseDates(ctx, b.ID()); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	payments, err := tx.Payments().FindByBookingID(ctx, b.ID())
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	for _, p := range payments {
		if p.Status() == payment.StatusCompleted {
			return nil
		}
	}

	if err := tx.Coupons().ReleaseForBooking(ctx, b.ID()); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

// cancelFollowUp releases the hold and, when money already settled, runs the
// refund policy against every completed payment.
func cancelFollowUp(ctx context.Context, tx shared.Tx, b *booking.Booking, actor booking.Actor, now time.Time) error {
	if err := tx.Availability().ReleaseDates(ctx, b.ID()); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	payments, err := tx.Payments().FindByBookingID(ctx, b.ID())
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	settled := false
	for _, p := range payments {
		if p.Status() == payment.StatusCompleted {
			settled = true
		}
	}
	if !settled {
		// Nothing was paid: the coupon goes back into circulation.
		if err := tx.Coupons().ReleaseForBooking(ctx, b.ID()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	}

	listing, err := findListing(ctx, tx, b.ListingID())
	if err != nil {
		return err
	}
	policy := refundPolicyFor(listing)

	for _, p := range payments {
		if p.Status() != payment.StatusCompleted {
			continue
		}
		refund := policy.RefundAmount(p.Amount(), b.Stay().CheckIn(), now)
		if refund.IsZero() {
			continue
		}
		if err := p.ApplyRefund(refund, now); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		if err := tx.Payments().Update(ctx, p); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		slog.Info("refund recorded on cancellation",
			"booking_id", b.ID(), "payment_id", p.ID(),
			"refund_cents", refund.Amount(), "cancelled_by", actor.Role)
	}
	return nil
}

func refundPolicyFor(listing *shared.ListingSnapshot) payment.RefundPolicy {
	if listing.IsFreeCancellation {
		return payment.FreeCancellationPolicy{
			Enabled:              true,
			FreeCancellationDays: int(listing.FreeCancellationDays),
		}
	}
	return payment.NoRefundPolicy{}
}
