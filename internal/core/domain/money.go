package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an exact amount of a single currency, held as signed 64-bit
// minor units (cents for a 100:1 currency). No floating point is involved
// in any arithmetic or comparison.
type Money struct {
	MinorUnits   int64  `json:"minorUnits"`
	CurrencyCode string `json:"currencyCode"`
}

// ErrCurrencyMismatch is returned by Money arithmetic when the operands
// carry different currency codes.
var ErrCurrencyMismatch = fmt.Errorf("currency mismatch")

// NewMoney builds an amount of the given minor units and currency.
func NewMoney(minorUnits int64, currencyCode string) Money {
	return Money{MinorUnits: minorUnits, CurrencyCode: currencyCode}
}

// ZeroMoney returns the zero amount in the given currency.
func ZeroMoney(currencyCode string) Money {
	return Money{CurrencyCode: currencyCode}
}

// Add returns a+b, failing when the currencies differ.
func (a Money) Add(b Money) (Money, error) {
	if a.CurrencyCode != b.CurrencyCode {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, a.CurrencyCode, b.CurrencyCode)
	}
	return Money{MinorUnits: a.MinorUnits + b.MinorUnits, CurrencyCode: a.CurrencyCode}, nil
}

// Sub returns a-b, failing when the currencies differ.
func (a Money) Sub(b Money) (Money, error) {
	if a.CurrencyCode != b.CurrencyCode {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, a.CurrencyCode, b.CurrencyCode)
	}
	return Money{MinorUnits: a.MinorUnits - b.MinorUnits, CurrencyCode: a.CurrencyCode}, nil
}

// Neg returns the amount with its sign flipped.
func (a Money) Neg() Money {
	return Money{MinorUnits: -a.MinorUnits, CurrencyCode: a.CurrencyCode}
}

func (a Money) IsZero() bool     { return a.MinorUnits == 0 }
func (a Money) IsPositive() bool { return a.MinorUnits > 0 }
func (a Money) IsNegative() bool { return a.MinorUnits < 0 }

// Decimal renders the amount as a two-fractional-digit decimal value.
// Rendering is a presentation concern only; balance checks never leave
// integer arithmetic.
func (a Money) Decimal() decimal.Decimal {
	return decimal.New(a.MinorUnits, -2)
}

// String renders the amount as decimal text plus the currency code,
// e.g. "100.00 USD".
func (a Money) String() string {
	return a.Decimal().StringFixed(2) + " " + a.CurrencyCode
}
