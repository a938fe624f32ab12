package models

import "github.com/shopspring/decimal"

// Money is a decimal that marshals with exactly two places, the way
// prices and totals appear on the wire. Arithmetic happens on the
// embedded decimal; only the JSON shape differs.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}
