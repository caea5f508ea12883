//go:build unit || e2e

package builder

import (
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

type ListingBuilder struct {
	Snapshot shared.ListingSnapshot
}

func NewListingBuilder() *ListingBuilder {
	serviceFee := int64(150_000)
	return &ListingBuilder{
		Snapshot: shared.ListingSnapshot{
			ID:                   uuid.New(),
			HostID:               uuid.New(),
			Name:                 "Riverside Loft District 1",
			BaseNightlyCents:     1_000_000,
			CleaningFeeCents:     200_000,
			ServiceFeeCents:      &serviceFee,
			WeeklyDiscountBP:     500,
			MonthlyDiscountBP:    1500,
			MaxGuests:            4,
			IsFreeCancellation:   true,
			FreeCancellationDays: 3,
		},
	}
}

func (l *ListingBuilder) With(mutate func(*shared.ListingSnapshot)) *ListingBuilder {
	mutate(&l.Snapshot)
	return l
}

func (l *ListingBuilder) Build() *shared.ListingSnapshot {
	snap := l.Snapshot
	return &snap
}
