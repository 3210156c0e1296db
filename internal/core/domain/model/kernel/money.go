package kernel

import (
	"fmt"

	"cafeteria/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a non-negative amount in the cafeteria's single currency.
// Arithmetic is exact; amounts are rounded to two decimal places on construction.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney is the additive identity used to start a sum.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney builds Money from a decimal amount. Negative amounts are rejected.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, "unbounded")
	}
	return Money{amount: amount.Round(2)}, nil
}

// MoneyFromFloat is a convenience for JSON payloads, which carry prices as numbers.
func MoneyFromFloat(amount float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount))
}

// MoneyFromString parses decimal text such as the NUMERIC columns of Postgres or the menu seed file.
func MoneyFromString(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q is not a number: %w", amount, err))
	}
	return NewMoney(d)
}

// Add returns the sum of both amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Mul multiplies the amount by a non-negative quantity.
func (m Money) Mul(qty int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(qty)))}
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsEqual compares amounts numerically, so 40 and 40.00 are equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Decimal exposes the amount for persistence.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Float64 is used by the HTTP layer, whose contract carries numbers.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String renders the amount with two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
