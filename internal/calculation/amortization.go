package calculation

import (
	"github.com/ohitsming/guapital-sub001/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	decimalZero   = decimal.Zero
	decimalOne    = decimal.NewFromInt(1)
	decimalTwelve = decimal.NewFromInt(12)

	// revolvingPaymentRate is the minimum-payment share of principal for termless credit
	revolvingPaymentRate = decimal.NewFromFloat(0.03)
	// scheduleTolerance absorbs sub-cent residue on the final schedule row
	scheduleTolerance = decimal.NewFromFloat(0.005)
)

// internalPrecision bounds the digits carried through repeated multiplication
const internalPrecision = 24

// powInt raises base to a non-negative integer power by repeated squaring
func powInt(base decimal.Decimal, n int) decimal.Decimal {
	result := decimalOne
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Round(internalPrecision)
		}
		base = base.Mul(base).Round(internalPrecision)
		n >>= 1
	}
	return result
}

// MonthlyPayment returns the fixed monthly payment of a loan.
//
// A non-positive principal pays nothing. A term of zero or less marks
// revolving credit, which pays 3% of principal regardless of rate. A zero
// rate pays the principal back in equal installments.
func MonthlyPayment(principal, annualRate decimal.Decimal, termYears int) decimal.Decimal {
	if principal.LessThanOrEqual(decimalZero) {
		return decimalZero
	}
	if termYears <= 0 {
		return principal.Mul(revolvingPaymentRate)
	}

	n := termYears * 12
	if annualRate.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(n)))
	}

	r := annualRate.Div(decimalTwelve)
	growth := powInt(decimalOne.Add(r), n)
	denominator := growth.Sub(decimalOne)
	if denominator.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(n)))
	}
	return principal.Mul(r).Mul(growth).Div(denominator)
}

// MonthlyInterest returns one month of interest on a balance
func MonthlyInterest(principal, annualRate decimal.Decimal) decimal.Decimal {
	return principal.Mul(annualRate).Div(decimalTwelve)
}

// PrincipalPayment returns the part of the monthly payment that reduces principal
func PrincipalPayment(principal, annualRate decimal.Decimal, termYears int) decimal.Decimal {
	return MonthlyPayment(principal, annualRate, termYears).Sub(MonthlyInterest(principal, annualRate))
}

// RemainingBalanceAfterOnePeriod returns the balance after a single monthly payment
func RemainingBalanceAfterOnePeriod(principal, annualRate decimal.Decimal, termYears int) decimal.Decimal {
	return principal.Sub(PrincipalPayment(principal, annualRate, termYears))
}

// RemainingBalanceAfter returns the closed-form balance of a fixed-rate loan
// after a number of monthly payments, clamped at zero. Revolving credit keeps
// its balance.
func RemainingBalanceAfter(principal, annualRate decimal.Decimal, termYears, periods int) decimal.Decimal {
	if principal.LessThanOrEqual(decimalZero) {
		return decimalZero
	}
	if termYears <= 0 || periods <= 0 {
		return principal
	}

	n := termYears * 12
	if periods >= n {
		return decimalZero
	}
	if annualRate.IsZero() {
		return principal.Mul(decimal.NewFromInt(int64(n - periods))).Div(decimal.NewFromInt(int64(n)))
	}

	r := annualRate.Div(decimalTwelve)
	growthN := powInt(decimalOne.Add(r), n)
	growthP := powInt(decimalOne.Add(r), periods)
	balance := principal.Mul(growthN.Sub(growthP)).Div(growthN.Sub(decimalOne))
	if balance.IsNegative() {
		return decimalZero
	}
	return balance
}

// AmortizationSchedule returns the month-by-month schedule of a fixed-rate loan,
// stopping once the balance is paid off or after maxPeriods rows when maxPeriods
// is positive. Revolving credit has no schedule.
func AmortizationSchedule(principal, annualRate decimal.Decimal, termYears, maxPeriods int) []domain.AmortizationRow {
	if principal.LessThanOrEqual(decimalZero) || termYears <= 0 {
		return nil
	}

	payment := MonthlyPayment(principal, annualRate, termYears)
	r := annualRate.Div(decimalTwelve)
	limit := termYears*12 + 1
	if maxPeriods > 0 && maxPeriods < limit {
		limit = maxPeriods
	}

	rows := make([]domain.AmortizationRow, 0, limit)
	balance := principal
	for period := 1; period <= limit && balance.IsPositive(); period++ {
		interest := balance.Mul(r).Round(internalPrecision)
		principalPart := payment.Sub(interest)
		paid := payment
		if balance.Sub(principalPart).LessThan(scheduleTolerance) {
			principalPart = balance
			paid = balance.Add(interest)
		}
		balance = balance.Sub(principalPart)
		rows = append(rows, domain.AmortizationRow{
			Period:    period,
			Payment:   paid,
			Interest:  interest,
			Principal: principalPart,
			Balance:   balance,
		})
	}
	return rows
}

// PayoffMonths returns how many monthly payments retire the loan, or nil for revolving credit
func PayoffMonths(principal, annualRate decimal.Decimal, termYears int) *int {
	if termYears <= 0 {
		return nil
	}
	months := len(AmortizationSchedule(principal, annualRate, termYears, 0))
	return &months
}

// TotalInterest sums the interest column of a schedule
func TotalInterest(rows []domain.AmortizationRow) decimal.Decimal {
	total := decimalZero
	for _, row := range rows {
		total = total.Add(row.Interest)
	}
	return total
}

// BuildLiabilitySchedule assembles the schedule summary for one amortizing account
func BuildLiabilitySchedule(accountID, category string, balance, annualRate decimal.Decimal, termYears int) domain.LiabilitySchedule {
	rows := AmortizationSchedule(balance, annualRate, termYears, 0)
	return domain.LiabilitySchedule{
		AccountID:      accountID,
		Category:       category,
		Rate:           annualRate,
		TermYears:      termYears,
		MonthlyPayment: MonthlyPayment(balance, annualRate, termYears),
		TotalInterest:  TotalInterest(rows),
		PayoffMonths:   PayoffMonths(balance, annualRate, termYears),
		Rows:           rows,
	}
}
