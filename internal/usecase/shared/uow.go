package shared

import (
	"context"
	"time"

	"stayhub/internal/domain/availability"
	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/coupon"
	"stayhub/internal/domain/payment"
	"stayhub/internal/infra/db"

	"github.com/google/uuid"
)

// UnitOfWork brackets every multi-row mutation. Within runs the function in
// a transaction with retry on serialization failures.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes the write-side repositories bound to one open transaction.
type Tx interface {
	Bookings() BookingRepository
	Availability() AvailabilityRepository
	Payments() PaymentRepository
	Coupons() CouponRepository
	Outbox() OutboxRepository
	Listings() ListingReads
	DB() db.DBTX
}

// ListingSnapshot is the read-only slice of a listing the engine prices and
// reserves against. Listing CRUD itself is another service's concern.
type ListingSnapshot struct {
	ID                   uuid.UUID
	HostID               uuid.UUID
	Name                 string
	BaseNightlyCents     int64
	WeekendNightlyCents  *int64
	CleaningFeeCents     int64
	ServiceFeeCents      *int64
	ServiceFeeBP         *int64
	WeeklyDiscountBP     int64
	MonthlyDiscountBP    int64
	MaxGuests            int32
	IsFreeCancellation   bool
	FreeCancellationDays int32
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	// FindByCode loads the full entity for a lifecycle decision.
	FindByCode(ctx context.Context, code booking.Code) (*booking.Booking, error)
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// UpdateStatusCAS persists a transition only if the stored status still
	// matches expected; a false return means another writer won the race.
	UpdateStatusCAS(ctx context.Context, b *booking.Booking, expected booking.Status) (bool, error)
	// HasOverlap reports whether any date-occupying booking intersects the stay.
	HasOverlap(ctx context.Context, listingID uuid.UUID, stay availability.DateRange) (bool, error)
	// FindExpiredPending returns Pending bookings whose hold deadline passed.
	FindExpiredPending(ctx context.Context, now time.Time, limit int32) ([]*booking.Booking, error)
	UpdatePriceCAS(ctx context.Context, b *booking.Booking) error
}

type AvailabilityRepository interface {
	// LockListing serializes reserve attempts for one listing for the
	// remainder of the transaction.
	LockListing(ctx context.Context, listingID uuid.UUID) error
	DaysInRange(ctx context.Context, listingID uuid.UUID, stay availability.DateRange) ([]availability.AvailabilityDay, error)
	UpsertDays(ctx context.Context, days []availability.AvailabilityDay) error
	DeleteDays(ctx context.Context, listingID uuid.UUID, dates []time.Time) error
	// HoldDates inserts one row per night; the (listing, date) unique
	// constraint is the cross-process double-booking backstop.
	HoldDates(ctx context.Context, bookingID, listingID uuid.UUID, stay availability.DateRange) error
	ReleaseDates(ctx context.Context, bookingID uuid.UUID) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *payment.Payment) error
	// FindByGatewayTransactionID is the reconciler's idempotency lookup.
	// It locks the row so duplicate gateway callbacks serialize.
	FindByGatewayTransactionID(ctx context.Context, txID string) (*payment.Payment, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*payment.Payment, error)
	Update(ctx context.Context, p *payment.Payment) error
	// CompletedAmount sums settled payments for the isPaid lifecycle guard.
	CompletedAmount(ctx context.Context, bookingID uuid.UUID) (int64, error)
}

type CouponUsage struct {
	CouponID      uuid.UUID
	BookingID     uuid.UUID
	DiscountCents int64
	UsedAt        time.Time
}

type CouponRepository interface {
	FindByCode(ctx context.Context, code string) (*coupon.Config, error)
	UsageStats(ctx context.Context, couponID, userID uuid.UUID) (coupon.UsageStats, error)
	AddUsage(ctx context.Context, usage CouponUsage) error
	RemoveUsage(ctx context.Context, couponID, bookingID uuid.UUID) error
	// ReleaseForBooking drops every usage of a booking (pre-payment cancel).
	ReleaseForBooking(ctx context.Context, bookingID uuid.UUID) error
	UsagesForBooking(ctx context.Context, bookingID uuid.UUID) ([]CouponUsage, error)
}

// OutboxRepository appends jobs for the notification dispatcher; rows commit
// atomically with the state change that caused them.
type OutboxRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}

type ListingReads interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ListingSnapshot, error)
}
