package calculation

import (
	"context"
	"fmt"

	"github.com/ohitsming/guapital-sub001/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates the trajectory calculations for a snapshot
type CalculationEngine struct {
	Rates  *CategoryRateTable
	Logger Logger
}

// NewCalculationEngine creates an engine over the built-in rate table
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithRates(DefaultCategoryRateTable())
}

// NewCalculationEngineWithRates creates an engine over a custom rate table
func NewCalculationEngineWithRates(rates *CategoryRateTable) *CalculationEngine {
	if rates == nil {
		rates = DefaultCategoryRateTable()
	}
	return &CalculationEngine{
		Rates:  rates,
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// FireInputFor derives the FIRE calculator input from a snapshot and its projection
func (ce *CalculationEngine) FireInputFor(snap *domain.Snapshot, projection domain.NetWorthProjection) FireInput {
	expected := BaseReturn
	if snap.ExpectedReturn != nil {
		expected = *snap.ExpectedReturn
	}
	return FireInput{
		MonthlyIncome:   snap.MonthlyIncome,
		MonthlyExpenses: snap.MonthlyExpenses,
		CurrentNetWorth: projection.CurrentNetWorth,
		ExpectedReturn:  expected,
		AsOf:            snap.AsOf,
	}
}

// Project normalizes the snapshot accounts and aggregates their projection
func (ce *CalculationEngine) Project(accounts []domain.Account) domain.NetWorthProjection {
	normalized := NormalizeAccounts(accounts, ce.Rates)
	for _, acc := range normalized {
		entry, kind := ce.Rates.Explain(acc.Category, acc.IsLiability)
		if kind != MatchExact {
			ce.Logger.Debugf("account %s: category %q resolved to %q (%s)", acc.ID, acc.Category, entry.Category, kind)
		}
	}
	return AggregateNetWorth(normalized, ce.Rates)
}

// Series projects net worth for every year through the longest standard horizon
func (ce *CalculationEngine) Series(accounts []domain.Account) []domain.ProjectionPoint {
	years := domain.ProjectionHorizons[len(domain.ProjectionHorizons)-1]
	return AnnualSeries(NormalizeAccounts(accounts, ce.Rates), ce.Rates, years)
}

// Evaluate computes the full trajectory report for one snapshot
func (ce *CalculationEngine) Evaluate(ctx context.Context, snap *domain.Snapshot) (*domain.TrajectoryReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("evaluation cancelled: %w", err)
	}
	if snap == nil {
		return nil, fmt.Errorf("snapshot is required")
	}

	now := nowFunc()
	in := *snap
	if in.AsOf.IsZero() {
		in.AsOf = now
	}

	projection := ce.Project(in.Accounts)
	fireInput := ce.FireInputFor(&in, projection)
	fire := CalculateFire(fireInput)
	if !fire.Reachable() {
		ce.Logger.Infof("user %s: FIRE number %s unreachable with monthly savings %s",
			in.UserID, fire.FireNumber.StringFixed(2), fire.MonthlySavings.StringFixed(2))
	}

	milestones := EvaluateMilestones(MilestoneInput{
		AnnualExpenses: in.AnnualExpenses(),
		NetWorth:       projection.CurrentNetWorth,
		CurrentAge:     in.CurrentAge(in.AsOf),
		RetirementAge:  in.RetirementAgeOrDefault(),
	})

	report := &domain.TrajectoryReport{
		UserID:      in.UserID,
		AsOf:        in.AsOf,
		GeneratedAt: now,
		Projection:  projection,
		Series:      ce.Series(in.Accounts),
		Fire:        fire,
		Scenarios:   CalculateScenarios(fireInput),
		Milestones:  milestones,
		Schedules:   ce.schedules(projection),
		Assumptions: ce.assumptions(in, projection),
	}

	ce.Logger.Debugf("user %s: net worth %s, %d accounts, years to FIRE %s",
		in.UserID, projection.CurrentNetWorth.StringFixed(2), len(in.Accounts), formatYears(fire.YearsToFire))
	return report, nil
}

func (ce *CalculationEngine) schedules(projection domain.NetWorthProjection) []domain.LiabilitySchedule {
	var out []domain.LiabilitySchedule
	for _, ap := range projection.Accounts {
		if ap.Method != domain.MethodAmortized {
			continue
		}
		out = append(out, BuildLiabilitySchedule(ap.AccountID, ap.Category, ap.Current, ap.Rate, ap.TermYears))
	}
	return out
}

func (ce *CalculationEngine) assumptions(snap domain.Snapshot, projection domain.NetWorthProjection) []string {
	out := []string{
		"FIRE number is 25x annual expenses (4% withdrawal rule)",
		fmt.Sprintf("Scenario returns: conservative %s%%, base %s%%, aggressive %s%%",
			percent(ConservativeReturn), percent(BaseReturn), percent(AggressiveReturn)),
		fmt.Sprintf("Milestone horizons compound assets at the average asset rate of %s%% with liabilities held at today's balance",
			percent(projection.AverageAssetRate)),
	}
	if snap.CurrentAge(snap.AsOf) == nil {
		out = append(out, fmt.Sprintf("Coast FIRE assumes a current age of %d", DefaultCurrentAge))
	}
	for _, ap := range projection.Accounts {
		if ap.IsLiability && ap.Method == domain.MethodConstant {
			out = append(out, "Revolving balances with no fixed term or rate are held constant: minimum payments are assumed to offset new charges")
			break
		}
	}
	return out
}

func percent(rate decimal.Decimal) string {
	return rate.Mul(decimalHundred).StringFixed(1)
}

func formatYears(years *decimal.Decimal) string {
	if years == nil {
		return "unreachable"
	}
	return years.StringFixed(2)
}
