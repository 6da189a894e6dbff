package calculation

import (
	"math"

	"github.com/ohitsming/guapital-sub001/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// DefaultAverageAssetRate is used for milestone horizons when there are no assets
	DefaultAverageAssetRate = decimal.NewFromFloat(0.07)
	millionTarget           = decimal.NewFromInt(1000000)
	decimalTwo              = decimal.NewFromInt(2)
)

// accountPlan is the resolved projection assumption for one account
type accountPlan struct {
	account domain.Account
	rate    decimal.Decimal
	term    int
	method  domain.ProjectionMethod
}

func planAccount(acc domain.Account, table *CategoryRateTable) accountPlan {
	entry := table.Lookup(acc.Category, acc.IsLiability)
	plan := accountPlan{account: acc, rate: entry.AnnualRate}
	if acc.InterestRate != nil {
		plan.rate = *acc.InterestRate
	}

	if !acc.IsLiability {
		plan.method = domain.MethodCompound
		return plan
	}

	plan.term = entry.LoanTermYears
	if acc.LoanTermYears != nil && *acc.LoanTermYears > 0 {
		plan.term = *acc.LoanTermYears
	}
	switch {
	case plan.term > 0 && !plan.rate.IsZero():
		plan.method = domain.MethodAmortized
	case plan.rate.IsNegative():
		plan.method = domain.MethodCompound
	default:
		plan.method = domain.MethodConstant
	}
	return plan
}

func (p accountPlan) valueAt(horizonYears int) decimal.Decimal {
	balance := p.account.CurrentBalance.Abs()
	switch p.method {
	case domain.MethodAmortized:
		return ProjectLiability(balance, p.rate, p.term, horizonYears)
	case domain.MethodCompound:
		return ProjectAsset(balance, p.rate, horizonYears)
	default:
		return balance
	}
}

// AggregateNetWorth projects every account at the standard horizons and derives
// the years needed to reach $1,000,000 and to double current net worth.
func AggregateNetWorth(accounts []domain.Account, table *CategoryRateTable) domain.NetWorthProjection {
	return ProjectNetWorth(accounts, table, domain.ProjectionHorizons)
}

// AnnualSeries projects net worth for every year from 0 through years, for charting
func AnnualSeries(accounts []domain.Account, table *CategoryRateTable, years int) []domain.ProjectionPoint {
	if years < 0 {
		years = 0
	}
	horizons := make([]int, years+1)
	for i := range horizons {
		horizons[i] = i
	}
	return ProjectNetWorth(accounts, table, horizons).Points
}

// ProjectNetWorth is AggregateNetWorth over an arbitrary set of horizons
func ProjectNetWorth(accounts []domain.Account, table *CategoryRateTable, horizons []int) domain.NetWorthProjection {
	if table == nil {
		table = DefaultCategoryRateTable()
	}

	result := domain.NetWorthProjection{
		CurrentAssets:      decimalZero,
		CurrentLiabilities: decimalZero,
		CurrentNetWorth:    decimalZero,
		Points:             make([]domain.ProjectionPoint, len(horizons)),
		Accounts:           make([]domain.AccountProjection, 0, len(accounts)),
	}
	for i, h := range horizons {
		result.Points[i] = domain.ProjectionPoint{HorizonYears: h, AssetValue: decimalZero, LiabilityValue: decimalZero}
	}

	rateSum := decimalZero
	assetCount := 0
	for _, acc := range accounts {
		plan := planAccount(acc, table)
		balance := acc.CurrentBalance.Abs()
		result.CurrentNetWorth = result.CurrentNetWorth.Add(acc.SignedBalance())
		if acc.IsLiability {
			result.CurrentLiabilities = result.CurrentLiabilities.Add(balance)
		} else {
			result.CurrentAssets = result.CurrentAssets.Add(balance)
			rateSum = rateSum.Add(plan.rate)
			assetCount++
		}

		ap := domain.AccountProjection{
			AccountID:   acc.ID,
			Name:        acc.Name,
			Category:    acc.Category,
			IsLiability: acc.IsLiability,
			Rate:        plan.rate,
			TermYears:   plan.term,
			Method:      plan.method,
			Current:     balance,
			Values:      make([]decimal.Decimal, len(horizons)),
		}
		for i, h := range horizons {
			v := plan.valueAt(h)
			ap.Values[i] = v
			if acc.IsLiability {
				result.Points[i].LiabilityValue = result.Points[i].LiabilityValue.Add(v)
			} else {
				result.Points[i].AssetValue = result.Points[i].AssetValue.Add(v)
			}
		}
		result.Accounts = append(result.Accounts, ap)
	}

	for i := range result.Points {
		result.Points[i].NetWorth = result.Points[i].AssetValue.Sub(result.Points[i].LiabilityValue)
	}

	result.AverageAssetRate = DefaultAverageAssetRate
	if assetCount > 0 {
		result.AverageAssetRate = rateSum.Div(decimal.NewFromInt(int64(assetCount)))
	}

	result.YearsToMillion = YearsToNetWorth(millionTarget, result.CurrentAssets, result.CurrentLiabilities, result.AverageAssetRate)
	if result.CurrentNetWorth.IsPositive() {
		result.YearsToDouble = YearsToNetWorth(result.CurrentNetWorth.Mul(decimalTwo), result.CurrentAssets, result.CurrentLiabilities, result.AverageAssetRate)
	}
	return result
}

// YearsToNetWorth solves currentAssets*(1+rate)^t = target + currentLiabilities
// for t, holding liabilities constant. It returns nil when assets are not
// positive, when the asset target does not exceed current assets, or when the
// rate does not grow assets. A mean rate of zero or below can never close the
// gap, so the target is reported as unreachable (nil) rather than infinite.
func YearsToNetWorth(target, currentAssets, currentLiabilities, rate decimal.Decimal) *decimal.Decimal {
	assetTarget := target.Add(currentLiabilities)
	if !currentAssets.IsPositive() || assetTarget.LessThanOrEqual(currentAssets) {
		return nil
	}
	growth := decimalOne.Add(rate)
	if growth.LessThanOrEqual(decimalOne) {
		return nil
	}

	t := math.Log(assetTarget.Div(currentAssets).InexactFloat64()) / math.Log(growth.InexactFloat64())
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return nil
	}
	if t < 0 {
		t = 0
	}
	years := decimal.NewFromFloat(t).Round(2)
	return &years
}
