package booking

import "errors"

var (
	ErrNegativeMoney      = errors.New("money cannot be negative")
	ErrBreakdownMismatch  = errors.New("price breakdown does not sum to total")
	ErrNegativeBasisPoint = errors.New("basis points cannot be negative")
)

// Money is an amount in the smallest currency unit. All monetary arithmetic
// in the engine stays in integers; percentages are applied through BasisPoints
// so rounding happens at exactly one point per application.
type Money struct {
	amount int64
}

func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{amount: amount}, nil
}

// MustMoney is for literals in tests and static rate configuration.
func MustMoney(amount int64) Money {
	m, err := NewMoney(amount)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Amount() int64 { return m.amount }
func (m Money) IsZero() bool  { return m.amount == 0 }

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount + other.amount}
}

// SubFloor subtracts, flooring at zero rather than going negative.
func (m Money) SubFloor(other Money) Money {
	if other.amount >= m.amount {
		return Money{}
	}
	return Money{amount: m.amount - other.amount}
}

func (m Money) LessThan(other Money) bool {
	return m.amount < other.amount
}

// Min returns the smaller of the two amounts.
func (m Money) Min(other Money) Money {
	if other.amount < m.amount {
		return other
	}
	return m
}

// BasisPoints is a percentage in 1/100ths of a percent (10000 = 100%).
type BasisPoints int64

func NewBasisPoints(bp int64) (BasisPoints, error) {
	if bp < 0 {
		return 0, ErrNegativeBasisPoint
	}
	return BasisPoints(bp), nil
}

// ApplyTo computes bp of m. Integer division is the single rounding point;
// the remainder is dropped, so the result never exceeds the exact value.
func (bp BasisPoints) ApplyTo(m Money) Money {
	return Money{amount: m.amount * int64(bp) / 10000}
}

// PriceBreakdown is the itemized price of a booking. Total is derived, never
// stored independently of its parts.
type PriceBreakdown struct {
	Base        Money
	CleaningFee Money
	ServiceFee  Money
	Tax         Money
	Discount    Money
}

// Total = base + fees + tax - discount, floored at zero.
func (p PriceBreakdown) Total() Money {
	gross := p.Base.Add(p.CleaningFee).Add(p.ServiceFee).Add(p.Tax)
	return gross.SubFloor(p.Discount)
}

// Validate checks the stored component amounts are internally consistent with
// the recorded total. Used when reconstructing from persistence.
func (p PriceBreakdown) Validate(storedTotal Money) error {
	if p.Total() != storedTotal {
		return ErrBreakdownMismatch
	}
	return nil
}
