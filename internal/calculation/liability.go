package calculation

import "github.com/shopspring/decimal"

// ProjectLiability rolls a liability balance forward by horizonYears of fixed
// monthly payments. The payment is computed once from the starting balance and
// never re-amortized. The balance is held constant when there is no fixed
// schedule (term or rate of zero), which models revolving credit kept at a
// steady balance through minimum payments.
func ProjectLiability(currentBalance, interestRate decimal.Decimal, termYears, horizonYears int) decimal.Decimal {
	if currentBalance.LessThanOrEqual(decimalZero) {
		return decimalZero
	}
	if termYears <= 0 || interestRate.IsZero() || horizonYears <= 0 {
		return currentBalance
	}

	payment := MonthlyPayment(currentBalance, interestRate, termYears)
	r := interestRate.Div(decimalTwelve)
	balance := currentBalance
	for month := 0; month < horizonYears*12; month++ {
		interest := balance.Mul(r)
		balance = balance.Sub(payment.Sub(interest)).Round(internalPrecision)
		if balance.LessThanOrEqual(decimalZero) {
			return decimalZero
		}
	}
	return balance
}
