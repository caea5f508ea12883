package commands

import (
	"context"
	"time"

	"stayhub/internal/domain/availability"
	"stayhub/internal/domain/booking"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrEmptyCalendarEdit  = errs.New("calendar edit contains no days")
	ErrInvalidBlockReason = errs.New("unknown block reason")
)

// DayEdit is one day's worth of host calendar changes. Nil pointers leave
// the corresponding attribute at its default.
type DayEdit struct {
	Date             time.Time
	IsAvailable      bool
	IsBlocked        bool
	BlockReason      *string
	CustomPriceCents *int64
	MinimumNights    *int32
}

// CalendarCommands lets a host manage a listing's day-level calendar.
// Edits take the same per-listing lock as reserve so a block cannot slip
// underneath an in-flight hold.
type CalendarCommands interface {
	UpsertDays(ctx context.Context, listingID uuid.UUID, actor booking.Actor, edits []DayEdit) error
	RemoveDays(ctx context.Context, listingID uuid.UUID, actor booking.Actor, dates []time.Time) error
}

type calendarCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCalendarCommands(uow shared.UnitOfWork, clock clock.Clock) CalendarCommands {
	return &calendarCommandsImpl{uow: uow, clock: clock}
}

func (c *calendarCommandsImpl) UpsertDays(
	ctx context.Context,
	listingID uuid.UUID,
	actor booking.Actor,
	edits []DayEdit,
) error {
	if len(edits) == 0 {
		return ErrEmptyCalendarEdit
	}
	for _, e := range edits {
		if e.BlockReason != nil {
			switch availability.BlockReason(*e.BlockReason) {
			case availability.BlockReasonHost, availability.BlockReasonMaintenance:
			default:
				return ErrInvalidBlockReason
			}
		}
		if e.CustomPriceCents != nil && *e.CustomPriceCents < 0 {
			return errs.Mark(errs.New("custom price cannot be negative"), ErrDomainValidation)
		}
		if e.MinimumNights != nil && *e.MinimumNights < 1 {
			return errs.Mark(errs.New("minimum nights must be at least one"), ErrDomainValidation)
		}
	}

	now := c.clock.Now()
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		listing, err := findListing(ctx, tx, listingID)
		if err != nil {
			return err
		}
		if err := requireListingOwner(listing, actor); err != nil {
			return err
		}
		if err := tx.Availability().LockListing(ctx, listingID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		days := make([]availability.AvailabilityDay, 0, len(edits))
		for _, e := range edits {
			days = append(days, availability.AvailabilityDay{
				ListingID:        listingID,
				Date:             availability.Day(e.Date),
				IsAvailable:      e.IsAvailable,
				IsBlocked:        e.IsBlocked,
				BlockReason:      e.BlockReason,
				CustomPriceCents: e.CustomPriceCents,
				MinimumNights:    e.MinimumNights,
				UpdatedAt:        now,
			})
		}
		if err := tx.Availability().UpsertDays(ctx, days); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *calendarCommandsImpl) RemoveDays(
	ctx context.Context,
	listingID uuid.UUID,
	actor booking.Actor,
	dates []time.Time,
) error {
	if len(dates) == 0 {
		return ErrEmptyCalendarEdit
	}

	normalized := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		normalized = append(normalized, availability.Day(d))
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		listing, err := findListing(ctx, tx, listingID)
		if err != nil {
			return err
		}
		if err := requireListingOwner(listing, actor); err != nil {
			return err
		}
		if err := tx.Availability().LockListing(ctx, listingID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Availability().DeleteDays(ctx, listingID, normalized); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func requireListingOwner(listing *shared.ListingSnapshot, actor booking.Actor) error {
	switch actor.Role {
	case booking.RoleAdmin, booking.RoleSystem:
		return nil
	case booking.RoleHost:
		if listing.HostID != actor.ID {
			return ErrForbidden
		}
		return nil
	default:
		return ErrForbidden
	}
}
