package repository

import (
	"context"
	"time"

	"stayhub/internal/domain/availability"
	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

const bookingColumns = `
	id, code, listing_id, guest_id, check_in, check_out, adults, children,
	base_cents, cleaning_fee_cents, service_fee_cents, tax_cents, discount_cents, total_cents,
	status, payment_expires_at, created_at, updated_at,
	cancelled_at, cancelled_by, cancellation_reason
`

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	const query = `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21)`

	price := b.Price()
	_, err := r.db.Exec(ctx, query,
		b.ID(), b.Code().String(), b.ListingID(), b.GuestID(),
		pgconv.DateToPgtype(b.Stay().CheckIn()), pgconv.DateToPgtype(b.Stay().CheckOut()),
		b.Guests().Adults, b.Guests().Children,
		price.Base.Amount(), price.CleaningFee.Amount(), price.ServiceFee.Amount(),
		price.Tax.Amount(), price.Discount.Amount(), price.Total().Amount(),
		b.Status().String(), pgconv.TimePtrToPgtype(b.PaymentExpiresAt()),
		pgconv.TimeToPgtype(b.CreatedAt()), pgconv.TimeToPgtype(b.UpdatedAt()),
		pgconv.TimePtrToPgtype(b.CancelledAt()), pgconv.UUIDPtrToPgtype(b.CancelledBy()),
		pgconv.StringPtrToPgtype(b.CancellationReason()),
	)
	if err != nil {
		return wrapWriteErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByCode(ctx context.Context, code booking.Code) (*booking.Booking, error) {
	const query = `SELECT ` + bookingColumns + ` FROM bookings WHERE code = $1`
	return r.scanBooking(r.db.QueryRow(ctx, query, code.String()), "booking not found by code")
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	const query = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return r.scanBooking(r.db.QueryRow(ctx, query, id), "booking not found by id")
}

// UpdateStatusCAS persists the whole transition result guarded by the status
// the caller saw. Zero rows affected means another writer moved first.
func (r *BookingRepository) UpdateStatusCAS(ctx context.Context, b *booking.Booking, expected booking.Status) (bool, error) {
	const query = `
		UPDATE bookings
		SET status = $1, payment_expires_at = $2, updated_at = $3,
			cancelled_at = $4, cancelled_by = $5, cancellation_reason = $6
		WHERE id = $7 AND status = $8`

	tag, err := r.db.Exec(ctx, query,
		b.Status().String(), pgconv.TimePtrToPgtype(b.PaymentExpiresAt()), pgconv.TimeToPgtype(b.UpdatedAt()),
		pgconv.TimePtrToPgtype(b.CancelledAt()), pgconv.UUIDPtrToPgtype(b.CancelledBy()),
		pgconv.StringPtrToPgtype(b.CancellationReason()),
		b.ID(), expected.String(),
	)
	if err != nil {
		return false, wrapWriteErr("failed to update booking status", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *BookingRepository) HasOverlap(ctx context.Context, listingID uuid.UUID, stay availability.DateRange) (bool, error) {
	// booking_days rows exist only while a booking occupies its nights, so
	// presence in the range is the whole answer.
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM booking_days
			WHERE listing_id = $1 AND stay_date >= $2 AND stay_date < $3
		)`

	var exists bool
	err := r.db.QueryRow(ctx, query, listingID,
		pgconv.DateToPgtype(stay.CheckIn()), pgconv.DateToPgtype(stay.CheckOut()),
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check booking overlap", err)
	}
	return exists, nil
}

func (r *BookingRepository) FindExpiredPending(ctx context.Context, now time.Time, limit int32) ([]*booking.Booking, error) {
	const query = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = 'pending' AND payment_expires_at < $1
		ORDER BY payment_expires_at
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, pgconv.TimeToPgtype(now), limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find expired bookings", err)
	}
	defer rows.Close()

	var result []*booking.Booking
	for rows.Next() {
		b, err := r.scanBookingRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate expired bookings", err)
	}
	return result, nil
}

// UpdatePriceCAS rewrites the breakdown while the booking is still a Pending
// hold; repricing anything later is refused as a conflict.
func (r *BookingRepository) UpdatePriceCAS(ctx context.Context, b *booking.Booking) error {
	const query = `
		UPDATE bookings
		SET base_cents = $1, cleaning_fee_cents = $2, service_fee_cents = $3,
			tax_cents = $4, discount_cents = $5, total_cents = $6, updated_at = $7
		WHERE id = $8 AND status = 'pending'`

	price := b.Price()
	tag, err := r.db.Exec(ctx, query,
		price.Base.Amount(), price.CleaningFee.Amount(), price.ServiceFee.Amount(),
		price.Tax.Amount(), price.Discount.Amount(), price.Total().Amount(),
		pgconv.TimeToPgtype(b.UpdatedAt()), b.ID(),
	)
	if err != nil {
		return wrapWriteErr("failed to update booking price", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking is no longer pending", nil, infra.KindConflict)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *BookingRepository) scanBooking(row rowScanner, notFoundMsg string) (*booking.Booking, error) {
	b, err := r.scanBookingRow(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(notFoundMsg, err, infra.KindNotFound)
		}
		return nil, err
	}
	return b, nil
}

func (r *BookingRepository) scanBookingRow(row rowScanner) (*booking.Booking, error) {
	var (
		id, listingID, guestID uuid.UUID
		code, status           string
		checkIn, checkOut      pgtype.Date
		adults, children       int32

		baseCents, cleaningCents, serviceCents int64
		taxCents, discountCents, totalCents    int64

		paymentExpiresAt   pgtype.Timestamptz
		createdAt          pgtype.Timestamptz
		updatedAt          pgtype.Timestamptz
		cancelledAt        pgtype.Timestamptz
		cancelledBy        pgtype.UUID
		cancellationReason pgtype.Text
	)

	err := row.Scan(
		&id, &code, &listingID, &guestID, &checkIn, &checkOut, &adults, &children,
		&baseCents, &cleaningCents, &serviceCents, &taxCents, &discountCents, &totalCents,
		&status, &paymentExpiresAt, &createdAt, &updatedAt,
		&cancelledAt, &cancelledBy, &cancellationReason,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, err
		}
		return nil, infra.WrapRepoErr("failed to scan booking", err)
	}

	return reconstructBooking(bookingRow{
		ID: id, Code: code, ListingID: listingID, GuestID: guestID,
		CheckIn: pgconv.DateFromPgtype(checkIn), CheckOut: pgconv.DateFromPgtype(checkOut),
		Adults: adults, Children: children,
		BaseCents: baseCents, CleaningCents: cleaningCents, ServiceCents: serviceCents,
		TaxCents: taxCents, DiscountCents: discountCents,
		Status:             status,
		PaymentExpiresAt:   pgconv.TimePtrFromPgtype(paymentExpiresAt),
		CreatedAt:          pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:          pgconv.TimeFromPgtype(updatedAt),
		CancelledAt:        pgconv.TimePtrFromPgtype(cancelledAt),
		CancelledBy:        pgconv.UUIDPtrFromPgtype(cancelledBy),
		CancellationReason: pgconv.StringPtrFromPgtype(cancellationReason),
	})
}

type bookingRow struct {
	ID, ListingID, GuestID                    uuid.UUID
	Code, Status                              string
	CheckIn, CheckOut                         time.Time
	Adults, Children                          int32
	BaseCents, CleaningCents, ServiceCents    int64
	TaxCents, DiscountCents                   int64
	PaymentExpiresAt, CancelledAt             *time.Time
	CreatedAt, UpdatedAt                      time.Time
	CancelledBy                               *uuid.UUID
	CancellationReason                        *string
}

func reconstructBooking(row bookingRow) (*booking.Booking, error) {
	code, err := booking.ParseCode(row.Code)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking code is malformed", err)
	}
	status, err := booking.NewStatus(row.Status)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking status is unknown", err)
	}
	stay, err := availability.NewDateRange(row.CheckIn, row.CheckOut)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking dates are inconsistent", err)
	}
	guests, err := booking.NewGuestCount(row.Adults, row.Children)
	if err != nil {
		return nil, infra.WrapRepoErr("stored guest counts are inconsistent", err)
	}

	price := booking.PriceBreakdown{
		Base:        booking.MustMoney(row.BaseCents),
		CleaningFee: booking.MustMoney(row.CleaningCents),
		ServiceFee:  booking.MustMoney(row.ServiceCents),
		Tax:         booking.MustMoney(row.TaxCents),
		Discount:    booking.MustMoney(row.DiscountCents),
	}

	return booking.Reconstruct(
		row.ID, code, row.ListingID, row.GuestID, stay, guests, price, status,
		row.PaymentExpiresAt, row.CreatedAt, row.UpdatedAt,
		row.CancelledAt, row.CancelledBy, row.CancellationReason,
	), nil
}
