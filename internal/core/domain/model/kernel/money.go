package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is an immutable, non-negative currency amount with two-place precision.
// All monetary fields of the pricing engine and the order aggregate are Money.
//
// Amounts are rounded half-up to two decimal places on construction and after
// every operation that can introduce extra precision, so persisted values and
// API responses always carry exact currency semantics.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns a Money of 0.00.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney creates a Money from a decimal amount.
// The amount must not be negative; it is rounded to two decimal places.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money amount",
			fmt.Errorf("%s is negative", amount))
	}
	return Money{amount: amount.Round(2)}, nil
}

// MoneyFromString parses a decimal string (e.g. "199.50") into Money.
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money amount", err)
	}
	return NewMoney(d)
}

// Amount returns the underlying decimal value.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// String renders the amount with exactly two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount).Round(2)}
}

// Sub returns m minus other. Returns an error if the result would be negative;
// use SubOrZero where a floor at zero is the intended semantics.
func (m Money) Sub(other Money) (Money, error) {
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money amount",
			fmt.Errorf("%s - %s is negative", m, other))
	}
	return Money{amount: result.Round(2)}, nil
}

// SubOrZero returns m minus other, floored at 0.00.
func (m Money) SubOrZero(other Money) Money {
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return ZeroMoney()
	}
	return Money{amount: result.Round(2)}
}

// MulInt returns the amount multiplied by a whole quantity.
func (m Money) MulInt(n int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(n))).Round(2)}
}

// MulRatio returns m scaled by num/den, rounded to two decimal places.
// A zero denominator yields 0.00.
func (m Money) MulRatio(num, den decimal.Decimal) Money {
	if den.IsZero() {
		return ZeroMoney()
	}
	return Money{amount: m.amount.Mul(num).Div(den).Round(2)}
}

// Min returns the smaller of the two amounts.
func (m Money) Min(other Money) Money {
	if m.amount.GreaterThan(other.amount) {
		return other
	}
	return m
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// LessThan reports whether m is strictly smaller than other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// GreaterThan reports whether m is strictly larger than other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// IsEqual compares two amounts by value.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}
