// Package types provides common value types shared by domain packages.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits used when money is rounded for display.
const MoneyScale int32 = 2

// Money is an immutable monetary amount with exact decimal arithmetic.
// All operations return new values; the zero value is a valid zero amount.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return Money{amount: decimal.NewFromFloat(f)}
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("parse money %q: %w", s, err)
	}
	return Money{amount: d}, nil
}

// NewMoneyFromDecimal wraps an existing decimal.
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{amount: d}
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	m, err := NewMoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Zero returns zero Money value.
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// Decimal returns the underlying amount.
func (m Money) Decimal() decimal.Decimal { return m.amount }

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// Multiply returns m multiplied by an integer factor (e.g. a quantity).
func (m Money) Multiply(factor int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(factor))}
}

// MultiplyBy returns m multiplied by a decimal factor (e.g. a tax rate).
func (m Money) MultiplyBy(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor)}
}

// Round rounds half away from zero to the given number of fractional digits.
func (m Money) Round(places int32) Money {
	return Money{amount: m.amount.Round(places)}
}

// Equal reports whether both amounts are numerically equal (2.0 equals 2.00).
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) IsZero() bool     { return m.amount.IsZero() }
func (m Money) IsPositive() bool { return m.amount.IsPositive() }
func (m Money) IsNegative() bool { return m.amount.IsNegative() }

// Float64 is lossy and meant only for non-monetary comparisons (e.g. rule evaluation).
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String returns the exact decimal representation.
func (m Money) String() string {
	return m.amount.String()
}

// StringFixed returns the amount rounded to MoneyScale digits.
func (m Money) StringFixed() string {
	return m.amount.StringFixed(MoneyScale)
}

// MarshalJSON encodes Money as a JSON string to keep full precision.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.amount.String())
}

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = Zero()
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := NewMoneyFromString(s)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	}

	parsed, err := NewMoneyFromString(string(data))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
