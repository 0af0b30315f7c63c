package kernel

import (
	"github.com/shopspring/decimal"

	"marketplace/internal/pkg/errs"
)

var hundred = decimal.NewFromInt(100)

// Percent is an immutable rate constrained to the range [0, 100].
// Commission rates and percentage discounts are expressed as Percent.
type Percent struct {
	value decimal.Decimal
}

// ZeroPercent returns a Percent of 0.
func ZeroPercent() Percent {
	return Percent{value: decimal.Zero}
}

// NewPercent creates a Percent from a decimal value.
// Values outside [0, 100] are rejected.
func NewPercent(value decimal.Decimal) (Percent, error) {
	if value.IsNegative() || value.GreaterThan(hundred) {
		return Percent{}, errs.NewValueIsOutOfRangeError("percent", value.String(), 0, 100)
	}
	return Percent{value: value}, nil
}

// PercentFromInt creates a Percent from a whole-number rate.
func PercentFromInt(value int64) (Percent, error) {
	return NewPercent(decimal.NewFromInt(value))
}

// Value returns the underlying decimal rate.
func (p Percent) Value() decimal.Decimal {
	return p.value
}

// String renders the rate as a plain decimal string, e.g. "12.5".
func (p Percent) String() string {
	return p.value.String()
}

// ApplyTo returns value * p/100, rounded to two decimal places.
func (p Percent) ApplyTo(value Money) Money {
	return Money{amount: value.amount.Mul(p.value).Div(hundred).Round(2)}
}

// IsZero reports whether the rate is exactly zero.
func (p Percent) IsZero() bool {
	return p.value.IsZero()
}
