package output

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatCurrency(t *testing.T) {
	v := decimal.NewFromFloat(1234.567)
	got := FormatCurrency(v)
	want := "$1,234.57"
	if got != want {
		t.Errorf("FormatCurrency(%v) = %q, want %q", v, got, want)
	}
}

func TestFormatPercentage(t *testing.T) {
	v := decimal.NewFromFloat(12.3456)
	got := FormatPercentage(v)
	want := "12.35%"
	if got != want {
		t.Errorf("FormatPercentage(%v) = %q, want %q", v, got, want)
	}
}

func TestFormatRate(t *testing.T) {
	if got, want := FormatRate(decimal.NewFromFloat(0.055)), "5.5%"; got != want {
		t.Errorf("FormatRate(0.055) = %q, want %q", got, want)
	}
}

func TestOptionalFormatting(t *testing.T) {
	if got := FormatYears(nil); got != "unreachable" {
		t.Errorf("FormatYears(nil) = %q", got)
	}
	y := decimal.NewFromFloat(3.5)
	if got := FormatYears(&y); got != "3.50" {
		t.Errorf("FormatYears(3.5) = %q", got)
	}
	if got := FormatMonths(nil); got != "n/a" {
		t.Errorf("FormatMonths(nil) = %q", got)
	}
	m := 42
	if got := FormatMonths(&m); got != "42" {
		t.Errorf("FormatMonths(42) = %q", got)
	}
	if got := FormatDate(nil); got != "n/a" {
		t.Errorf("FormatDate(nil) = %q", got)
	}
	d := time.Date(2040, 3, 9, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(&d); got != "2040-03-09" {
		t.Errorf("FormatDate = %q", got)
	}
}

func TestIntAndBoolToString(t *testing.T) {
	if got, want := intToString(42), "42"; got != want {
		t.Errorf("intToString(42) = %q, want %q", got, want)
	}
	if got, want := boolToString(false), "false"; got != want {
		t.Errorf("boolToString(false) = %q, want %q", got, want)
	}
}
