package repository

import (
	"context"

	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// ListingRepository reads the listing snapshot the engine prices against.
// Listings are written by the catalog service; this side only reads.
type ListingRepository struct {
	db db.DBTX
}

func NewListingRepository(dbtx db.DBTX) *ListingRepository {
	return &ListingRepository{db: dbtx}
}

func (r *ListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.ListingSnapshot, error) {
	const query = `
		SELECT id, host_id, name, base_nightly_cents, weekend_nightly_cents,
			cleaning_fee_cents, service_fee_cents, service_fee_bp,
			weekly_discount_bp, monthly_discount_bp, max_guests,
			is_free_cancellation, free_cancellation_days
		FROM listings
		WHERE id = $1`

	var (
		snap           shared.ListingSnapshot
		weekendNightly pgtype.Int8
		serviceFlat    pgtype.Int8
		serviceBP      pgtype.Int8
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.HostID, &snap.Name, &snap.BaseNightlyCents, &weekendNightly,
		&snap.CleaningFeeCents, &serviceFlat, &serviceBP,
		&snap.WeeklyDiscountBP, &snap.MonthlyDiscountBP, &snap.MaxGuests,
		&snap.IsFreeCancellation, &snap.FreeCancellationDays,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("listing not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find listing by id", err)
	}

	snap.WeekendNightlyCents = pgconv.Int64PtrFromPgtype(weekendNightly)
	snap.ServiceFeeCents = pgconv.Int64PtrFromPgtype(serviceFlat)
	snap.ServiceFeeBP = pgconv.Int64PtrFromPgtype(serviceBP)
	return &snap, nil
}
