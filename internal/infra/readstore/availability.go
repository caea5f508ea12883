package readstore

import (
	"context"
	"time"

	"stayhub/internal/domain/availability"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// AvailabilityReadStore answers calendar and occupancy questions outside any
// write transaction. The answers are advisory; reserve re-checks under the
// listing lock.
type AvailabilityReadStore struct {
	db db.DBTX
}

func NewAvailabilityReadStore(dbtx db.DBTX) *AvailabilityReadStore {
	return &AvailabilityReadStore{db: dbtx}
}

func (r *AvailabilityReadStore) DaysInRange(ctx context.Context, listingID uuid.UUID, from, to time.Time) ([]availability.AvailabilityDay, error) {
	const query = `
		SELECT listing_id, stay_date, is_available, is_blocked, block_reason,
			custom_price_cents, minimum_nights, updated_at
		FROM availability_days
		WHERE listing_id = $1 AND stay_date >= $2 AND stay_date < $3
		ORDER BY stay_date`

	rows, err := r.db.Query(ctx, query, listingID, pgconv.DateToPgtype(from), pgconv.DateToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load availability days", err)
	}
	defer rows.Close()

	var days []availability.AvailabilityDay
	for rows.Next() {
		var (
			day         availability.AvailabilityDay
			date        pgtype.Date
			blockReason pgtype.Text
			customPrice pgtype.Int8
			minNights   pgtype.Int4
			updatedAt   pgtype.Timestamptz
		)
		if err := rows.Scan(&day.ListingID, &date, &day.IsAvailable, &day.IsBlocked,
			&blockReason, &customPrice, &minNights, &updatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan availability day", err)
		}
		day.Date = pgconv.DateFromPgtype(date)
		day.BlockReason = pgconv.StringPtrFromPgtype(blockReason)
		day.CustomPriceCents = pgconv.Int64PtrFromPgtype(customPrice)
		day.MinimumNights = pgconv.Int32PtrFromPgtype(minNights)
		day.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate availability days", err)
	}
	return days, nil
}

func (r *AvailabilityReadStore) HasBookingOverlap(ctx context.Context, listingID uuid.UUID, stay availability.DateRange) (bool, error) {
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
