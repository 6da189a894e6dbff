package calculation

import (
	"math"
	"time"

	"github.com/ohitsming/guapital-sub001/internal/domain"
	"github.com/ohitsming/guapital-sub001/pkg/dateutil"
	"github.com/shopspring/decimal"
)

const (
	// maxFireYears bounds the time-to-FIRE search domain
	maxFireYears = 100.0
	// fireMaxIterations caps the bisection loop
	fireMaxIterations = 200
	// fireTolerance is the bisection stopping width in years
	fireTolerance = 1e-6
)

var (
	// FireMultiple is the number of annual expenses that constitutes financial independence (4% rule)
	FireMultiple = decimal.NewFromInt(25)

	decimalHundred = decimal.NewFromInt(100)
)

// FireInput is the snapshot aggregate that the FIRE calculator works on
type FireInput struct {
	MonthlyIncome   decimal.Decimal
	MonthlyExpenses decimal.Decimal
	CurrentNetWorth decimal.Decimal
	ExpectedReturn  decimal.Decimal
	// AsOf anchors the projected date; zero means now
	AsOf time.Time
}

// FireNumber returns the net worth that covers monthly expenses indefinitely
func FireNumber(monthlyExpenses decimal.Decimal) decimal.Decimal {
	return monthlyExpenses.Mul(decimalTwelve).Mul(FireMultiple)
}

// SavingsRate returns the percentage of income not spent, or 0 without income
func SavingsRate(monthlyIncome, monthlyExpenses decimal.Decimal) decimal.Decimal {
	if !monthlyIncome.IsPositive() {
		return decimalZero
	}
	return monthlyIncome.Sub(monthlyExpenses).Div(monthlyIncome).Mul(decimalHundred).Round(2)
}

// CalculateFire computes savings, the FIRE number, progress toward it and the
// time needed to reach it under the expected annual return.
func CalculateFire(in FireInput) domain.FireCalculation {
	savings := in.MonthlyIncome.Sub(in.MonthlyExpenses)
	fireNumber := FireNumber(in.MonthlyExpenses)

	progress := decimalZero
	if fireNumber.IsPositive() {
		progress = decimal.Min(decimalHundred, in.CurrentNetWorth.Div(fireNumber).Mul(decimalHundred)).Round(2)
	}

	result := domain.FireCalculation{
		MonthlyIncome:      in.MonthlyIncome,
		MonthlyExpenses:    in.MonthlyExpenses,
		MonthlySavings:     savings,
		SavingsRate:        SavingsRate(in.MonthlyIncome, in.MonthlyExpenses),
		FireNumber:         fireNumber,
		CurrentNetWorth:    in.CurrentNetWorth,
		ProgressPercentage: progress,
		ExpectedReturn:     in.ExpectedReturn,
	}

	t, ok := solveYearsToFire(in.CurrentNetWorth, savings, fireNumber, in.ExpectedReturn)
	if !ok {
		return result
	}

	asOf := in.AsOf
	if asOf.IsZero() {
		asOf = nowFunc()
	}
	years := decimal.NewFromFloat(t).Round(2)
	months := int(math.Round(t * 12))
	projected := dateutil.AddFractionalYears(asOf, t)

	result.YearsToFire = &years
	result.MonthsToFire = &months
	result.ProjectedDate = &projected
	return result
}

// solveYearsToFire finds t in [0, 100] with
// netWorth*(1+r)^t + annualSavings*((1+r)^t - 1)/r = fireNumber.
// It reports false when the number is unreachable.
func solveYearsToFire(netWorth, monthlySavings, fireNumber, annualReturn decimal.Decimal) (float64, bool) {
	if netWorth.GreaterThanOrEqual(fireNumber) {
		return 0, true
	}
	if !monthlySavings.IsPositive() {
		return 0, false
	}

	r := annualReturn.InexactFloat64()
	if r <= -1 {
		return 0, false
	}
	pv := netWorth.InexactFloat64()
	contribution := monthlySavings.InexactFloat64() * 12
	target := fireNumber.InexactFloat64()

	f := func(t float64) float64 {
		if r == 0 {
			return pv + contribution*t - target
		}
		growth := math.Pow(1+r, t)
		return pv*growth + contribution*(growth-1)/r - target
	}

	lo, hi := 0.0, maxFireYears
	if fHi := f(hi); math.IsNaN(fHi) || fHi < 0 {
		return 0, false
	}
	for i := 0; i < fireMaxIterations && hi-lo > fireTolerance; i++ {
		mid := (lo + hi) / 2
		if f(mid) >= 0 {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi, true
}
