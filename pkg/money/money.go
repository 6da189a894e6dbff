// Package money holds the monetary helpers shared by the engine and its
// formatters. Amounts are shopspring decimals throughout.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// New creates a decimal amount from a float64
func New(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value)
}

// Parse creates a decimal amount from a string
func Parse(value string) (decimal.Decimal, error) {
	return decimal.NewFromString(value)
}

// Round rounds the amount to cents
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Annual converts a monthly amount to annual
func Annual(d decimal.Decimal) decimal.Decimal {
	return d.Mul(twelve)
}

// Monthly converts an annual amount to monthly
func Monthly(d decimal.Decimal) decimal.Decimal {
	return d.Div(twelve)
}

// Percent expresses part/whole as a percentage. A zero whole yields zero.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// FloorZero clamps negative amounts to zero
func FloorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Min returns the minimum of two amounts
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the maximum of two amounts
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Sum adds all amounts
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Format renders an amount as US currency with thousands separators,
// e.g. -1234567.891 -> "-$1,234,567.89".
func Format(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if d.Round(2).IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	lead := len(whole) % 3
	if lead > 0 {
		b.WriteString(whole[:lead])
	}
	for i := lead; i < len(whole); i += 3 {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(whole[i : i+3])
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// FormatPercent renders an already-scaled percentage with one decimal place
func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}
