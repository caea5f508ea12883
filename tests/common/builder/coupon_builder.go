//go:build unit || e2e

package builder

import (
	"time"

	"stayhub/internal/domain/coupon"

	"github.com/google/uuid"
)

type CouponBuilder struct {
	Config coupon.Config
}

func NewCouponBuilder() *CouponBuilder {
	return &CouponBuilder{
		Config: coupon.Config{
			ID:        uuid.New(),
			Code:      "SPRING20",
			Kind:      coupon.KindPercentage,
			PercentBP: 2000,
			MinSpend:  0,
			MinNights: 0,
			StartsOn:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			EndsOn:    time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC),
			Global:    true,
			Active:    true,
		},
	}
}

func (c *CouponBuilder) With(mutate func(*coupon.Config)) *CouponBuilder {
	mutate(&c.Config)
	return c
}

func (c *CouponBuilder) BuildDomain() (*coupon.Coupon, error) {
	return coupon.New(c.Config)
}
