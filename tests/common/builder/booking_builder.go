//go:build unit || e2e

package builder

import (
	"time"

	"stayhub/internal/domain/availability"
	"stayhub/internal/domain/booking"
	"stayhub/internal/handler/dto/request"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ListingID    uuid.UUID
	GuestID      uuid.UUID
	CheckIn      time.Time
	CheckOut     time.Time
	Adults       int32
	Children     int32
	Price        booking.PriceBreakdown
	HoldDuration time.Duration
	Now          time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ListingID:    uuid.New(),
		GuestID:      uuid.New(),
		CheckIn:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:     time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
		Adults:       2,
		Children:     0,
		Price:        DefaultPrice(),
		HoldDuration: 30 * time.Minute,
		Now:          now,
	}
}

func DefaultPrice() booking.PriceBreakdown {
	return booking.PriceBreakdown{
		Base:        booking.MustMoney(3_000_000),
		CleaningFee: booking.MustMoney(200_000),
		ServiceFee:  booking.MustMoney(150_000),
		Tax:         booking.MustMoney(300_000),
		Discount:    booking.MustMoney(0),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildStay() (availability.DateRange, error) {
	return availability.NewDateRange(b.CheckIn, b.CheckOut)
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	stay, err := b.BuildStay()
	if err != nil {
		return nil, err
	}
	guests, err := booking.NewGuestCount(b.Adults, b.Children)
	if err != nil {
		return nil, err
	}
	return booking.NewBooking(b.ListingID, b.GuestID, stay, guests, b.Price, b.HoldDuration, b.Now)
}

func (b *BookingBuilder) BuildCreateRequestDTO() request.CreateBookingRequest {
	return request.CreateBookingRequest{
		ListingID: b.ListingID,
		CheckIn:   b.CheckIn.Format("2006-01-02"),
		CheckOut:  b.CheckOut.Format("2006-01-02"),
		Adults:    b.Adults,
		Children:  b.Children,
	}
}

// BuildView returns the read model the handler layer renders, with a fixed
// code so tests can assert against it.
func (b *BookingBuilder) BuildView() *queries.BookingView {
	nights := int32(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
	return &queries.BookingView{
		ID:               uuid.New(),
		Code:             "HS-A2B3C4D5",
		ListingID:        b.ListingID,
		ListingName:      "Riverside Loft District 1",
		GuestID:          b.GuestID,
		CheckIn:          b.CheckIn,
		CheckOut:         b.CheckOut,
		Nights:           nights,
		Adults:           b.Adults,
		Children:         b.Children,
		Status:           booking.StatusPending.String(),
		BaseCents:        b.Price.Base.Amount(),
		CleaningFeeCents: b.Price.CleaningFee.Amount(),
		ServiceFeeCents:  b.Price.ServiceFee.Amount(),
		TaxCents:         b.Price.Tax.Amount(),
		DiscountCents:    b.Price.Discount.Amount(),
		TotalCents:       b.Price.Total().Amount(),
		CreatedAt:        b.Now,
		UpdatedAt:        b.Now,
	}
}

// MustBuildInStatus walks a fresh booking through the lifecycle until it
// reaches the wanted status. Panics on an impossible target; builders are
// test plumbing, not production code.
func (b *BookingBuilder) MustBuildInStatus(status booking.Status) *booking.Booking {
	entity, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	now := b.Now

	step := func(err error) {
		if err != nil {
			panic(err)
		}
		now = now.Add(time.Hour)
	}

	switch status {
	case booking.StatusPending:
	case booking.StatusRejected:
		step(entity.Reject("host is renovating the unit", now))
	case booking.StatusCancelled:
		step(entity.Cancel(b.GuestID, "change of plans", now))
	case booking.StatusConfirmed:
		step(entity.Confirm(now))
	case booking.StatusNoShow:
		step(entity.Confirm(now))
		step(entity.MarkNoShow(now))
	case booking.StatusCheckedIn:
		step(entity.Confirm(now))
		step(entity.CheckIn(now))
	case booking.StatusCheckedOut:
		step(entity.Confirm(now))
		step(entity.CheckIn(now))
		step(entity.CheckOut(now))
	case booking.StatusCompleted:
		step(entity.Confirm(now))
		step(entity.CheckIn(now))
		step(entity.CheckOut(now))
		step(entity.Complete(now))
	default:
		panic("unreachable status " + status.String())
	}
	return entity
}
