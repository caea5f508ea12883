package queries

import (
	"context"

	"stayhub/internal/domain/booking"
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrViewForbidden = errs.New("actor may not view this booking")

type BookingQueries interface {
	GetByCode(ctx context.Context, actor booking.Actor, code string) (*BookingView, error)
	ListByGuest(ctx context.Context, guestID uuid.UUID, limit, offset int32) ([]*BookingListItem, error)
	ListByListing(ctx context.Context, actor booking.Actor, listingID uuid.UUID, limit, offset int32) ([]*BookingListItem, error)
	PaymentsForBooking(ctx context.Context, actor booking.Actor, code string) ([]*PaymentView, error)

	// System-level reads skip the actor check; used for read-after-write
	// inside commands and for replay responses.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	GetByCodeSystem(ctx context.Context, code string) (*BookingView, error)
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByCode(ctx context.Context, code string) (*BookingView, error)
	FindByGuest(ctx context.Context, guestID uuid.UUID, limit, offset int32) ([]*BookingListItem, error)
	FindByListing(ctx context.Context, listingID uuid.UUID, limit, offset int32) ([]*BookingListItem, error)
	PaymentsByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*PaymentView, error)
	ListingHostID(ctx context.Context, listingID uuid.UUID) (uuid.UUID, error)
}

type bookingQueriesImpl struct {
	repo BookingViewRepo
}

func NewBookingQueries(repo BookingViewRepo) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) GetByCode(ctx context.Context, actor booking.Actor, code string) (*BookingView, error) {
	view, err := q.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !canView(actor, view) {
		return nil, ErrViewForbidden
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByGuest(ctx context.Context, guestID uuid.UUID, limit, offset int32) ([]*BookingListItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return q.repo.FindByGuest(ctx, guestID, limit, offset)
}

func (q *bookingQueriesImpl) ListByListing(ctx context.Context, actor booking.Actor, listingID uuid.UUID, limit, offset int32) ([]*BookingListItem, error) {
	if actor.Role == booking.RoleHost {
		hostID, err := q.repo.ListingHostID(ctx, listingID)
		if err != nil {
			return nil, err
		}
		if hostID != actor.ID {
			return nil, ErrViewForbidden
		}
	} else if actor.Role != booking.RoleAdmin && actor.Role != booking.RoleSystem {
		return nil, ErrViewForbidden
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return q.repo.FindByListing(ctx, listingID, limit, offset)
}

func (q *bookingQueriesImpl) PaymentsForBooking(ctx context.Context, actor booking.Actor, code string) ([]*PaymentView, error) {
	view, err := q.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !canView(actor, view) {
		return nil, ErrViewForbidden
	}
	return q.repo.PaymentsByBookingID(ctx, view.ID)
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *bookingQueriesImpl) GetByCodeSystem(ctx context.Context, code string) (*BookingView, error) {
	return q.repo.FindByCode(ctx, code)
}

func canView(actor booking.Actor, view *BookingView) bool {
	switch actor.Role {
	case booking.RoleAdmin, booking.RoleSystem:
		return true
	case booking.RoleHost:
		return view.HostID == actor.ID
	case booking.RoleGuest:
		return view.GuestID == actor.ID
	default:
		return false
	}
}
