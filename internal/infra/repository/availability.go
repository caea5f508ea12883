package repository

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

type AvailabilityRepository struct {
	db db.DBTX
}

func NewAvailabilityRepository(dbtx db.DBTX) *AvailabilityRepository {
	return &AvailabilityRepository{db: dbtx}
}

// LockListing takes the per-listing advisory lock for the remainder of the
// transaction. hashtext folds the uuid into the bigint key space the lock
// functions want; collisions only cost extra serialization, never safety.
func (r *AvailabilityRepository) LockListing(ctx context.Context, listingID uuid.UUID) error {
	const query = `SELECT pg_advisory_xact_lock(hashtext($1::text))`
	if _, err := r.db.Exec(ctx, query, listingID); err != nil {
		return infra.WrapRepoErr("failed to lock listing", err)
	}
	return nil
}

func (r *AvailabilityRepository) DaysInRange(ctx context.Context, listingID uuid.UUID, stay availability.DateRange) ([]availability.AvailabilityDay, error) {
	return r.daysBetween(ctx, listingID, stay.CheckIn(), stay.CheckOut())
}

func (r *AvailabilityRepository) daysBetween(ctx context.Context, listingID uuid.UUID, from, to time.Time) ([]availability.AvailabilityDay, error) {
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

func (r *AvailabilityRepository) UpsertDays(ctx context.Context, days []availability.AvailabilityDay) error {
	const query = `
		INSERT INTO availability_days (
			listing_id, stay_date, is_available, is_blocked, block_reason,
			custom_price_cents, minimum_nights, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (listing_id, stay_date) DO UPDATE SET
			is_available = EXCLUDED.is_available,
			is_blocked = EXCLUDED.is_blocked,
			block_reason = EXCLUDED.block_reason,
			custom_price_cents = EXCLUDED.custom_price_cents,
			minimum_nights = EXCLUDED.minimum_nights,
			updated_at = EXCLUDED.updated_at`

	for _, d := range days {
		_, err := r.db.Exec(ctx, query,
			d.ListingID, pgconv.DateToPgtype(d.Date), d.IsAvailable, d.IsBlocked,
			pgconv.StringPtrToPgtype(d.BlockReason),
			pgconv.Int64PtrToPgtype(d.CustomPriceCents),
			pgconv.Int32PtrToPgtype(d.MinimumNights),
			pgconv.TimeToPgtype(d.UpdatedAt),
		)
		if err != nil {
			return wrapWriteErr("failed to upsert availability day", err)
		}
	}
	return nil
}

func (r *AvailabilityRepository) DeleteDays(ctx context.Context, listingID uuid.UUID, dates []time.Time) error {
	const query = `DELETE FROM availability_days WHERE listing_id = $1 AND stay_date = ANY($2)`

	pgDates := make([]pgtype.Date, len(dates))
	for i, d := range dates {
		pgDates[i] = pgconv.DateToPgtype(d)
	}
	if _, err := r.db.Exec(ctx, query, listingID, pgDates); err != nil {
		return infra.WrapRepoErr("failed to delete availability days", err)
	}
	return nil
}

// HoldDates writes one booking_days row per night. The (listing_id,
// stay_date) unique constraint is the last line of defense against double
// booking across processes that never met the advisory lock.
func (r *AvailabilityRepository) HoldDates(ctx context.Context, bookingID, listingID uuid.UUID, stay availability.DateRange) error {
	const query = `
		INSERT INTO booking_days (booking_id, listing_id, stay_date)
		VALUES ($1, $2, $3)`

	for _, night := range stay.NightDates() {
		if _, err := r.db.Exec(ctx, query, bookingID, listingID, pgconv.DateToPgtype(night)); err != nil {
			return wrapWriteErr("failed to hold stay date", err)
		}
	}
	return nil
}

func (r *AvailabilityRepository) ReleaseDates(ctx context.Context, bookingID uuid.UUID) error {
	const query = `DELETE FROM booking_days WHERE booking_id = $1`
	if _, err := r.db.Exec(ctx, query, bookingID); err != nil {
		return infra.WrapRepoErr("failed to release stay dates", err)
	}
	return nil
}
