package calculation

import "github.com/shopspring/decimal"

// ProjectAsset compounds a balance annually: balance * (1 + annualRate)^horizonYears.
// A rate of -100% or worse wipes the balance out.
func ProjectAsset(balance, annualRate decimal.Decimal, horizonYears int) decimal.Decimal {
	if horizonYears <= 0 || annualRate.IsZero() {
		return balance
	}
	factor := decimalOne.Add(annualRate)
	if factor.LessThanOrEqual(decimalZero) {
		return decimalZero
	}
	return balance.Mul(powInt(factor, horizonYears))
}
