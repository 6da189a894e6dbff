package calculation

import (
	"github.com/ohitsming/guapital-sub001/internal/domain"
	"github.com/shopspring/decimal"
)

// Fixed scenario returns
var (
	ConservativeReturn = decimal.NewFromFloat(0.05)
	BaseReturn         = decimal.NewFromFloat(0.07)
	AggressiveReturn   = decimal.NewFromFloat(0.09)
)

// CalculateScenarios reruns CalculateFire under the conservative, base and
// aggressive returns. The input's ExpectedReturn is ignored.
func CalculateScenarios(in FireInput) domain.ScenarioSet {
	run := func(rate decimal.Decimal) domain.FireCalculation {
		scenario := in
		scenario.ExpectedReturn = rate
		return CalculateFire(scenario)
	}
	return domain.ScenarioSet{
		Conservative: run(ConservativeReturn),
		BaseCase:     run(BaseReturn),
		Aggressive:   run(AggressiveReturn),
	}
}

// DefaultCurrentAge is assumed for Coast FIRE when the age is unknown
const DefaultCurrentAge = 30

var (
	leanFireMultiple = decimal.NewFromInt(20)
	fatFireMultiple  = decimal.NewFromFloat(37.5)
)

// MilestoneInput carries what EvaluateMilestones needs
type MilestoneInput struct {
	AnnualExpenses decimal.Decimal
	NetWorth       decimal.Decimal
	CurrentAge     *int
	RetirementAge  int
}

// CoastFireNumber discounts the FIRE number back from retirement age at the base return.
// At or past retirement age it is the FIRE number itself.
func CoastFireNumber(fireNumber decimal.Decimal, currentAge *int, retirementAge int) decimal.Decimal {
	age := DefaultCurrentAge
	if currentAge != nil {
		age = *currentAge
	}
	if retirementAge <= 0 {
		retirementAge = domain.DefaultRetirementAge
	}
	years := retirementAge - age
	if years <= 0 {
		return fireNumber
	}
	return fireNumber.Div(powInt(decimalOne.Add(BaseReturn), years))
}

// EvaluateMilestones returns Coast, Lean, regular and Fat FIRE in that order
func EvaluateMilestones(in MilestoneInput) []domain.Milestone {
	fireNumber := in.AnnualExpenses.Mul(FireMultiple)
	coast := CoastFireNumber(fireNumber, in.CurrentAge, in.RetirementAge).Round(2)

	coastMultiple := decimalZero
	if !in.AnnualExpenses.IsZero() {
		coastMultiple = coast.Div(in.AnnualExpenses).Round(4)
	}

	milestones := []domain.Milestone{
		{Key: domain.MilestoneCoastFire, Label: "Coast FIRE", Multiplier: coastMultiple, Amount: coast},
		{Key: domain.MilestoneLeanFire, Label: "Lean FIRE", Multiplier: leanFireMultiple, Amount: in.AnnualExpenses.Mul(leanFireMultiple)},
		{Key: domain.MilestoneFire, Label: "FIRE", Multiplier: FireMultiple, Amount: fireNumber},
		{Key: domain.MilestoneFatFire, Label: "Fat FIRE", Multiplier: fatFireMultiple, Amount: in.AnnualExpenses.Mul(fatFireMultiple)},
	}
	for i := range milestones {
		milestones[i].Achieved = in.NetWorth.GreaterThanOrEqual(milestones[i].Amount)
	}
	return milestones
}
