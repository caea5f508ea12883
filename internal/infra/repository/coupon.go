package repository

import (
	"context"

	"stayhub/internal/domain/coupon"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type CouponRepository struct {
	db db.DBTX
}

func NewCouponRepository(dbtx db.DBTX) *CouponRepository {
	return &CouponRepository{db: dbtx}
}

func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*coupon.Config, error) {
	const query = `
		SELECT id, code, kind, percent_bp, amount_off_cents, max_discount_cents,
			min_spend_cents, min_nights, starts_on, ends_on,
			usage_limit, per_user_limit, is_global, listing_ids, is_active
		FROM coupons
		WHERE code = $1`

	var (
		cfg         coupon.Config
		kind        string
		maxDiscount pgtype.Int8
		startsOn    pgtype.Timestamptz
		endsOn      pgtype.Timestamptz
		usageLimit  pgtype.Int8
		perUser     pgtype.Int8
		listingIDs  []uuid.UUID
	)
	err := r.db.QueryRow(ctx, query, code).Scan(
		&cfg.ID, &cfg.Code, &kind, &cfg.PercentBP, &cfg.AmountOff, &maxDiscount,
		&cfg.MinSpend, &cfg.MinNights, &startsOn, &endsOn,
		&usageLimit, &perUser, &cfg.Global, &listingIDs, &cfg.Active,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by code", err)
	}

	cfg.Kind = coupon.Kind(kind)
	cfg.MaxDiscount = pgconv.Int64PtrFromPgtype(maxDiscount)
	cfg.StartsOn = pgconv.TimeFromPgtype(startsOn)
	cfg.EndsOn = pgconv.TimeFromPgtype(endsOn)
	cfg.UsageLimit = pgconv.Int64PtrFromPgtype(usageLimit)
	cfg.PerUserLimit = pgconv.Int64PtrFromPgtype(perUser)
	cfg.ListingIDs = listingIDs
	return &cfg, nil
}

// UsageStats counts recorded redemptions. Runs inside the same transaction
// that appends the new usage, so limits hold under concurrency.
func (r *CouponRepository) UsageStats(ctx context.Context, couponID, userID uuid.UUID) (coupon.UsageStats, error) {
	const query = `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE user_id = $2)
		FROM coupon_usages
		WHERE coupon_id = $1`

	var stats coupon.UsageStats
	if err := r.db.QueryRow(ctx, query, couponID, userID).Scan(&stats.Total, &stats.ByUser); err != nil {
		return coupon.UsageStats{}, infra.WrapRepoErr("failed to count coupon usages", err)
	}
	return stats, nil
}

func (r *CouponRepository) AddUsage(ctx context.Context, usage shared.CouponUsage) error {
	const query = `
		INSERT INTO coupon_usages (coupon_id, booking_id, user_id, discount_cents, used_at)
		SELECT $1, $2, b.guest_id, $3, $4 FROM bookings b WHERE b.id = $2`

	tag, err := r.db.Exec(ctx, query, usage.CouponID, usage.BookingID, usage.DiscountCents, pgconv.TimeToPgtype(usage.UsedAt))
	if err != nil {
		return wrapWriteErr("failed to record coupon usage", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found for coupon usage", nil, infra.KindNotFound)
	}
	return nil
}

func (r *CouponRepository) RemoveUsage(ctx context.Context, couponID, bookingID uuid.UUID) error {
	const query = `DELETE FROM coupon_usages WHERE coupon_id = $1 AND booking_id = $2`
	if _, err := r.db.Exec(ctx, query, couponID, bookingID); err != nil {
		return infra.WrapRepoErr("failed to remove coupon usage", err)
	}
	return nil
}

func (r *CouponRepository) ReleaseForBooking(ctx context.Context, bookingID uuid.UUID) error {
	const query = `DELETE FROM coupon_usages WHERE booking_id = $1`
	if _, err := r.db.Exec(ctx, query, bookingID); err != nil {
		return infra.WrapRepoErr("failed to release coupon usages", err)
	}
	return nil
}

func (r *CouponRepository) UsagesForBooking(ctx context.Context, bookingID uuid.UUID) ([]shared.CouponUsage, error) {
	const query = `
		SELECT coupon_id, booking_id, discount_cents, used_at
		FROM coupon_usages
		WHERE booking_id = $1
		ORDER BY used_at`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load coupon usages", err)
	}
	defer rows.Close()

	var usages []shared.CouponUsage
	for rows.Next() {
		var (
			u      shared.CouponUsage
			usedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&u.CouponID, &u.BookingID, &u.DiscountCents, &usedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan coupon usage", err)
		}
		u.UsedAt = pgconv.TimeFromPgtype(usedAt)
		usages = append(usages, u)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate coupon usages", err)
	}
	return usages, nil
}
