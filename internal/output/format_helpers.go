package output

import (
	"strconv"
	"time"

	"github.com/ohitsming/guapital-sub001/pkg/money"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as USD currency with 2 decimals and thousands separators.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string { return money.Format(amount) }

// FormatPercentage formats an already-scaled percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate formats a fractional rate (0.07) as a percentage ("7.0%").
func FormatRate(rate decimal.Decimal) string { return money.FormatPercent(rate.Mul(decimalHundred)) }

// FormatYears renders an optional year count; nil means the target is out of reach.
func FormatYears(years *decimal.Decimal) string {
	if years == nil {
		return "unreachable"
	}
	return years.StringFixed(2)
}

// FormatMonths renders an optional month count.
func FormatMonths(months *int) string {
	if months == nil {
		return "n/a"
	}
	return strconv.Itoa(*months)
}

// FormatDate renders an optional date as YYYY-MM-DD.
func FormatDate(t *time.Time) string {
	if t == nil {
		return "n/a"
	}
	return t.Format("2006-01-02")
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
