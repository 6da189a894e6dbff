package domain

import (
	"github.com/shopspring/decimal"
)

// ProjectionHorizons are the fixed horizons (in years) of a net worth projection
var ProjectionHorizons = []int{1, 5, 10, 20, 30}

// ProjectionMethod names how a single account was rolled forward
type ProjectionMethod string

const (
	MethodAmortized ProjectionMethod = "amortized"
	MethodCompound  ProjectionMethod = "compound"
	MethodConstant  ProjectionMethod = "constant"
)

// ProjectionPoint aggregates every account at one horizon
type ProjectionPoint struct {
	HorizonYears   int             `json:"horizon_years"`
	AssetValue     decimal.Decimal `json:"asset_value"`
	LiabilityValue decimal.Decimal `json:"liability_value"`
	NetWorth       decimal.Decimal `json:"net_worth"`
}

// AccountProjection records the assumptions and per-horizon values used for
// one account. Values line up with the horizons of the enclosing projection.
type AccountProjection struct {
	AccountID   string            `json:"account_id"`
	Name        string            `json:"name,omitempty"`
	Category    string            `json:"category"`
	IsLiability bool              `json:"is_liability"`
	Rate        decimal.Decimal   `json:"rate"`
	TermYears   int               `json:"term_years"`
	Method      ProjectionMethod  `json:"method"`
	Current     decimal.Decimal   `json:"current"`
	Values      []decimal.Decimal `json:"values"`
}

// NetWorthProjection is the aggregate forward view of a set of accounts.
// YearsToMillion and YearsToDouble are nil when the target is unreachable.
type NetWorthProjection struct {
	CurrentAssets      decimal.Decimal     `json:"current_assets"`
	CurrentLiabilities decimal.Decimal     `json:"current_liabilities"`
	CurrentNetWorth    decimal.Decimal     `json:"current_net_worth"`
	AverageAssetRate   decimal.Decimal     `json:"average_asset_rate"`
	Points             []ProjectionPoint   `json:"points"`
	Accounts           []AccountProjection `json:"accounts"`
	YearsToMillion     *decimal.Decimal    `json:"years_to_million"`
	YearsToDouble      *decimal.Decimal    `json:"years_to_double"`
}

// PointAt returns the projection point for a horizon, if present
func (p NetWorthProjection) PointAt(horizonYears int) (ProjectionPoint, bool) {
	for _, pt := range p.Points {
		if pt.HorizonYears == horizonYears {
			return pt, true
		}
	}
	return ProjectionPoint{}, false
}

// AmortizationRow is one month of a fixed-payment loan schedule
type AmortizationRow struct {
	Period    int             `json:"period"`
	Payment   decimal.Decimal `json:"payment"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
	Balance   decimal.Decimal `json:"balance"`
}

// LiabilitySchedule is the amortization schedule of one amortizing liability
type LiabilitySchedule struct {
	AccountID      string            `json:"account_id"`
	Category       string            `json:"category"`
	Rate           decimal.Decimal   `json:"rate"`
	TermYears      int               `json:"term_years"`
	MonthlyPayment decimal.Decimal   `json:"monthly_payment"`
	TotalInterest  decimal.Decimal   `json:"total_interest"`
	PayoffMonths   *int              `json:"payoff_months"`
	Rows           []AmortizationRow `json:"rows"`
}
