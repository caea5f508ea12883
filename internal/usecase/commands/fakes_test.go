//go:build unit

package commands_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"stayhub/internal/domain/availability"
	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/coupon"
	"stayhub/internal/domain/payment"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

// In-memory doubles for the unit-of-work ports. Every mutation happens on
// the same fake transaction, so tests can assert side effects directly.

type fakeUoW struct{ tx *fakeTx }

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

type fakeTx struct {
	bookings       *fakeBookingRepo
	availabilities *fakeAvailabilityRepo
	payments       *fakePaymentRepo
	coupons        *fakeCouponRepo
	outbox         *fakeOutbox
	listings       *fakeListings
}

func newFakeTx() *fakeTx {
	return &fakeTx{
		bookings:       &fakeBookingRepo{byID: map[uuid.UUID]*booking.Booking{}},
		availabilities: &fakeAvailabilityRepo{held: map[uuid.UUID]uuid.UUID{}},
		payments:       &fakePaymentRepo{},
		coupons:        &fakeCouponRepo{configs: map[string]*coupon.Config{}},
		outbox:         &fakeOutbox{},
		listings:       &fakeListings{snapshots: map[uuid.UUID]*shared.ListingSnapshot{}},
	}
}

func (t *fakeTx) Bookings() shared.BookingRepository          { return t.bookings }
func (t *fakeTx) Availability() shared.AvailabilityRepository { return t.availabilities }
func (t *fakeTx) Payments() shared.PaymentRepository          { return t.payments }
func (t *fakeTx) Coupons() shared.CouponRepository            { return t.coupons }
func (t *fakeTx) Outbox() shared.OutboxRepository             { return t.outbox }
func (t *fakeTx) Listings() shared.ListingReads               { return t.listings }
func (t *fakeTx) DB() db.DBTX                                 { return nil }

func notFoundErr(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

type fakeBookingRepo struct {
	mu        sync.Mutex
	byID      map[uuid.UUID]*booking.Booking
	overlap   bool
	casDenied bool
}

func (r *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[b.ID()] = b
	return nil
}

func (r *fakeBookingRepo) FindByCode(_ context.Context, code booking.Code) (*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.byID {
		if b.Code() == code {
			return b, nil
		}
	}
	return nil, notFoundErr("booking not found")
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok {
		return nil, notFoundErr("booking not found")
	}
	return b, nil
}

func (r *fakeBookingRepo) UpdateStatusCAS(_ context.Context, b *booking.Booking, _ booking.Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.casDenied {
		return false, nil
	}
	r.byID[b.ID()] = b
	return true, nil
}

func (r *fakeBookingRepo) HasOverlap(_ context.Context, _ uuid.UUID, _ availability.DateRange) (bool, error) {
	return r.overlap, nil
}

func (r *fakeBookingRepo) FindExpiredPending(_ context.Context, now time.Time, limit int32) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, b := range r.byID {
		if b.HoldExpired(now) {
			out = append(out, b)
		}
		if int32(len(out)) >= limit {
			break
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdatePriceCAS(_ context.Context, b *booking.Booking) error {
	r.byID[b.ID()] = b
	return nil
}

type fakeAvailabilityRepo struct {
	mu        sync.Mutex
	days      []availability.AvailabilityDay
	holdErr   error
	lockCalls int
	held      map[uuid.UUID]uuid.UUID
	released  []uuid.UUID
	upserted  []availability.AvailabilityDay
	deleted   []time.Time

	// When non-nil, simulates the UNIQUE(listing_id, stay_date) constraint:
	// each night key maps to the booking holding it.
	claimed map[string]uuid.UUID
}

func nightKey(listingID uuid.UUID, night time.Time) string {
	return fmt.Sprintf("%s|%s", listingID, night.Format("2006-01-02"))
}

func (r *fakeAvailabilityRepo) LockListing(_ context.Context, _ uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lockCalls++
	return nil
}

func (r *fakeAvailabilityRepo) DaysInRange(_ context.Context, _ uuid.UUID, _ availability.DateRange) ([]availability.AvailabilityDay, error) {
	return r.days, nil
}

func (r *fakeAvailabilityRepo) UpsertDays(_ context.Context, days []availability.AvailabilityDay) error {
	r.upserted = append(r.upserted, days...)
	return nil
}

func (r *fakeAvailabilityRepo) DeleteDays(_ context.Context, _ uuid.UUID, dates []time.Time) error {
	r.deleted = append(r.deleted, dates...)
	return nil
}

func (r *fakeAvailabilityRepo) HoldDates(_ context.Context, bookingID, listingID uuid.UUID, stay availability.DateRange) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.holdErr != nil {
		return r.holdErr
	}
	if r.claimed != nil {
		for _, night := range stay.NightDates() {
			if _, taken := r.claimed[nightKey(listingID, night)]; taken {
				return infra.WrapRepoErr("stay date already held", nil, infra.KindDuplicateKey)
			}
		}
		for _, night := range stay.NightDates() {
			r.claimed[nightKey(listingID, night)] = bookingID
		}
	}
	r.held[bookingID] = listingID
	return nil
}

func (r *fakeAvailabilityRepo) ReleaseDates(_ context.Context, bookingID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.held, bookingID)
	for key, holder := range r.claimed {
		if holder == bookingID {
			delete(r.claimed, key)
		}
	}
	r.released = append(r.released, bookingID)
	return nil
}

type fakePaymentRepo struct {
	payments []*payment.Payment
}

func (r *fakePaymentRepo) Create(_ context.Context, p *payment.Payment) error {
	r.payments = append(r.payments, p)
	return nil
}

func (r *fakePaymentRepo) FindByGatewayTransactionID(_ context.Context, txID string) (*payment.Payment, error) {
	for _, p := range r.payments {
		if p.GatewayTransactionID() != nil && *p.GatewayTransactionID() == txID {
			return p, nil
		}
	}
	return nil, notFoundErr("payment not found")
}

func (r *fakePaymentRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) ([]*payment.Payment, error) {
	var out []*payment.Payment
	for _, p := range r.payments {
		if p.BookingID() == bookingID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) Update(_ context.Context, _ *payment.Payment) error {
	// Entities are shared pointers; the mutation is already visible.
	return nil
}

func (r *fakePaymentRepo) CompletedAmount(_ context.Context, bookingID uuid.UUID) (int64, error) {
	var sum int64
	for _, p := range r.payments {
		if p.BookingID() == bookingID && p.Status() == payment.StatusCompleted {
			sum += p.Amount().Amount()
		}
	}
	return sum, nil
}

type fakeCouponRepo struct {
	configs  map[string]*coupon.Config
	stats    coupon.UsageStats
	usages   []shared.CouponUsage
	released []uuid.UUID
}

func (r *fakeCouponRepo) FindByCode(_ context.Context, code string) (*coupon.Config, error) {
	cfg, ok := r.configs[code]
	if !ok {
		return nil, notFoundErr("coupon not found")
	}
	return cfg, nil
}

func (r *fakeCouponRepo) UsageStats(_ context.Context, _, _ uuid.UUID) (coupon.UsageStats, error) {
	return r.stats, nil
}

func (r *fakeCouponRepo) AddUsage(_ context.Context, usage shared.CouponUsage) error {
	r.usages = append(r.usages, usage)
	return nil
}

func (r *fakeCouponRepo) RemoveUsage(_ context.Context, couponID, bookingID uuid.UUID) error {
	kept := r.usages[:0]
	for _, u := range r.usages {
		if u.CouponID == couponID && u.BookingID == bookingID {
			continue
		}
		kept = append(kept, u)
	}
	r.usages = kept
	return nil
}

func (r *fakeCouponRepo) ReleaseForBooking(_ context.Context, bookingID uuid.UUID) error {
	kept := r.usages[:0]
	for _, u := range r.usages {
		if u.BookingID == bookingID {
			continue
		}
		kept = append(kept, u)
	}
	r.usages = kept
	r.released = append(r.released, bookingID)
	return nil
}

func (r *fakeCouponRepo) UsagesForBooking(_ context.Context, bookingID uuid.UUID) ([]shared.CouponUsage, error) {
	var out []shared.CouponUsage
	for _, u := range r.usages {
		if u.BookingID == bookingID {
			out = append(out, u)
		}
	}
	return out, nil
}

type outboxJob struct {
	kind    string
	topic   string
	payload []byte
}

type fakeOutbox struct {
	mu   sync.Mutex
	jobs []outboxJob
}

func (r *fakeOutbox) CreateJob(_ context.Context, kind, topic string, payload []byte, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, outboxJob{kind: kind, topic: topic, payload: payload})
	return nil
}

type fakeListings struct {
	snapshots map[uuid.UUID]*shared.ListingSnapshot
}

func (r *fakeListings) add(snap *shared.ListingSnapshot) {
	r.snapshots[snap.ID] = snap
}

func (r *fakeListings) FindByID(_ context.Context, id uuid.UUID) (*shared.ListingSnapshot, error) {
	snap, ok := r.snapshots[id]
	if !ok {
		return nil, notFoundErr("listing not found")
	}
	return snap, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []booking.StateChanged
	err    error
}

func (p *fakePublisher) PublishStateChanged(_ context.Context, ev booking.StateChanged) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

// stubBookingQueries serves the read-after-write the commands do from the
// same fake booking repo, skipping the real read store.
type stubBookingQueries struct {
	bookings *fakeBookingRepo
}

func (q *stubBookingQueries) GetByIDSystem(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	b, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return viewOf(b), nil
}

func (q *stubBookingQueries) GetByCodeSystem(ctx context.Context, code string) (*queries.BookingView, error) {
	parsed, err := booking.ParseCode(code)
	if err != nil {
		return nil, err
	}
	b, err := q.bookings.FindByCode(ctx, parsed)
	if err != nil {
		return nil, err
	}
	return viewOf(b), nil
}

func (q *stubBookingQueries) GetByCode(ctx context.Context, _ booking.Actor, code string) (*queries.BookingView, error) {
	return q.GetByCodeSystem(ctx, code)
}

func (q *stubBookingQueries) ListByGuest(_ context.Context, _ uuid.UUID, _, _ int32) ([]*queries.BookingListItem, error) {
	return nil, nil
}

func (q *stubBookingQueries) ListByListing(_ context.Context, _ booking.Actor, _ uuid.UUID, _, _ int32) ([]*queries.BookingListItem, error) {
	return nil, nil
}

func (q *stubBookingQueries) PaymentsForBooking(_ context.Context, _ booking.Actor, _ string) ([]*queries.PaymentView, error) {
	return nil, nil
}

func viewOf(b *booking.Booking) *queries.BookingView {
	return &queries.BookingView{
		ID:            b.ID(),
		Code:          b.Code().String(),
		ListingID:     b.ListingID(),
		GuestID:       b.GuestID(),
		CheckIn:       b.Stay().CheckIn(),
		CheckOut:      b.Stay().CheckOut(),
		Nights:        int32(b.Stay().Nights()),
		Adults:        b.Guests().Adults,
		Children:      b.Guests().Children,
		Status:        b.Status().String(),
		BaseCents:     b.Price().Base.Amount(),
		DiscountCents: b.Price().Discount.Amount(),
		TotalCents:    b.Price().Total().Amount(),
		CreatedAt:     b.CreatedAt(),
		UpdatedAt:     b.UpdatedAt(),
	}
}

type commandEnv struct {
	tx        *fakeTx
	uow       *fakeUoW
	publisher *fakePublisher
	clock     *clock.MockClock
	queries   *stubBookingQueries
}

func newCommandEnv() *commandEnv {
	tx := newFakeTx()
	return &commandEnv{
		tx:        tx,
		uow:       &fakeUoW{tx: tx},
		publisher: &fakePublisher{},
		clock:     clock.NewMockClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)),
		queries:   &stubBookingQueries{bookings: tx.bookings},
	}
}

func testSettings() commands.Settings {
	return commands.Settings{HoldDuration: 30 * time.Minute, TaxRateBP: 1000}
}
