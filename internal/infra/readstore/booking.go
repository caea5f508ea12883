package readstore

import (
	"context"

	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// BookingReadStore serves the denormalized booking views the API returns.
// It always reads through the pool, never inside a write transaction.
type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const bookingViewQuery = `
	SELECT b.id, b.code, b.listing_id, l.name, l.host_id, b.guest_id,
		b.check_in, b.check_out, b.adults, b.children, b.status,
		b.base_cents, b.cleaning_fee_cents, b.service_fee_cents,
		b.tax_cents, b.discount_cents, b.total_cents,
		b.payment_expires_at, b.cancelled_at, b.cancelled_by, b.cancellation_reason,
		b.created_at, b.updated_at,
		COALESCE((
			SELECT SUM(p.amount_cents) FROM payments p
			WHERE p.booking_id = b.id AND p.status = 'completed'
		), 0) >= b.total_cents AS is_paid
	FROM bookings b
	JOIN listings l ON l.id = b.listing_id
`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, bookingViewQuery+` WHERE b.id = $1`, id)
	return scanBookingView(row)
}

func (r *BookingReadStore) FindByCode(ctx context.Context, code string) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, bookingViewQuery+` WHERE b.code = $1`, code)
	return scanBookingView(row)
}

func (r *BookingReadStore) FindByGuest(ctx context.Context, guestID uuid.UUID, limit, offset int32) ([]*queries.BookingListItem, error) {
	const query = `
		SELECT b.id, b.code, b.listing_id, l.name, b.check_in, b.check_out,
			b.status, b.total_cents, b.created_at
		FROM bookings b
		JOIN listings l ON l.id = b.listing_id
		WHERE b.guest_id = $1
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $2 OFFSET $3`

	return r.listItems(ctx, query, guestID, limit, offset)
}

func (r *BookingReadStore) FindByListing(ctx context.Context, listingID uuid.UUID, limit, offset int32) ([]*queries.BookingListItem, error) {
	const query = `
		SELECT b.id, b.code, b.listing_id, l.name, b.check_in, b.check_out,
			b.status, b.total_cents, b.created_at
		FROM bookings b
		JOIN listings l ON l.id = b.listing_id
		WHERE b.listing_id = $1
		ORDER BY b.check_in DESC, b.id DESC
		LIMIT $2 OFFSET $3`

	return r.listItems(ctx, query, listingID, limit, offset)
}

func (r *BookingReadStore) listItems(ctx context.Context, query string, args ...any) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var (
			item               queries.BookingListItem
			checkIn, checkOut  pgtype.Date
			createdAt          pgtype.Timestamptz
		)
		if err := rows.Scan(&item.ID, &item.Code, &item.ListingID, &item.ListingName,
			&checkIn, &checkOut, &item.Status, &item.TotalCents, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list item", err)
		}
		item.CheckIn = pgconv.DateFromPgtype(checkIn)
		item.CheckOut = pgconv.DateFromPgtype(checkOut)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking list", err)
	}
	return items, nil
}

func (r *BookingReadStore) PaymentsByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*queries.PaymentView, error) {
	const query = `
		SELECT id, booking_id, method, amount_cents, status, gateway_transaction_id,
			refund_cents, refunded_at, created_at, updated_at
		FROM payments
		WHERE booking_id = $1
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payments", err)
	}
	defer rows.Close()

	var views []*queries.PaymentView
	for rows.Next() {
		var (
			v           queries.PaymentView
			gatewayTxID pgtype.Text
			refundedAt  pgtype.Timestamptz
			createdAt   pgtype.Timestamptz
			updatedAt   pgtype.Timestamptz
		)
		if err := rows.Scan(&v.ID, &v.BookingID, &v.Method, &v.AmountCents, &v.Status,
			&gatewayTxID, &v.RefundCents, &refundedAt, &createdAt, &updatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan payment view", err)
		}
		v.GatewayTransactionID = pgconv.StringPtrFromPgtype(gatewayTxID)
		v.RefundedAt = pgconv.TimePtrFromPgtype(refundedAt)
		v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate payment views", err)
	}
	return views, nil
}

func (r *BookingReadStore) ListingHostID(ctx context.Context, listingID uuid.UUID) (uuid.UUID, error) {
	const query = `SELECT host_id FROM listings WHERE id = $1`

	var hostID uuid.UUID
	if err := r.db.QueryRow(ctx, query, listingID).Scan(&hostID); err != nil {
		if pgconv.IsNoRows(err) {
			return uuid.Nil, infra.WrapRepoErr("listing not found", err, infra.KindNotFound)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to find listing host", err)
	}
	return hostID, nil
}

func scanBookingView(row rowScanner) (*queries.BookingView, error) {
	var (
		v                  queries.BookingView
		checkIn, checkOut  pgtype.Date
		paymentExpiresAt   pgtype.Timestamptz
		cancelledAt        pgtype.Timestamptz
		cancelledBy        pgtype.UUID
		cancellationReason pgtype.Text
		createdAt          pgtype.Timestamptz
		updatedAt          pgtype.Timestamptz
	)
	err := row.Scan(
		&v.ID, &v.Code, &v.ListingID, &v.ListingName, &v.HostID, &v.GuestID,
		&checkIn, &checkOut, &v.Adults, &v.Children, &v.Status,
		&v.BaseCents, &v.CleaningFeeCents, &v.ServiceFeeCents,
		&v.TaxCents, &v.DiscountCents, &v.TotalCents,
		&paymentExpiresAt, &cancelledAt, &cancelledBy, &cancellationReason,
		&createdAt, &updatedAt, &v.IsPaid,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan booking view", err)
	}

	v.CheckIn = pgconv.DateFromPgtype(checkIn)
	v.CheckOut = pgconv.DateFromPgtype(checkOut)
	v.Nights = int32(v.CheckOut.Sub(v.CheckIn).Hours() / 24)
	v.PaymentExpiresAt = pgconv.TimePtrFromPgtype(paymentExpiresAt)
	v.CancelledAt = pgconv.TimePtrFromPgtype(cancelledAt)
	v.CancelledBy = pgconv.UUIDPtrFromPgtype(cancelledBy)
	v.CancellationReason = pgconv.StringPtrFromPgtype(cancellationReason)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &v, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}
