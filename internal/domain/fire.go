package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FireCalculation is the result of a time-to-independence calculation.
//
// YearsToFire is zero when net worth already covers the FIRE number and nil
// when the number cannot be reached under current savings behavior.
type FireCalculation struct {
	MonthlyIncome      decimal.Decimal  `json:"monthly_income"`
	MonthlyExpenses    decimal.Decimal  `json:"monthly_expenses"`
	MonthlySavings     decimal.Decimal  `json:"monthly_savings"`
	SavingsRate        decimal.Decimal  `json:"savings_rate"`
	FireNumber         decimal.Decimal  `json:"fire_number"`
	CurrentNetWorth    decimal.Decimal  `json:"current_net_worth"`
	ProgressPercentage decimal.Decimal  `json:"progress_percentage"`
	ExpectedReturn     decimal.Decimal  `json:"expected_return"`
	YearsToFire        *decimal.Decimal `json:"years_to_fire"`
	MonthsToFire       *int             `json:"months_to_fire"`
	ProjectedDate      *time.Time       `json:"projected_date"`
}

// Reachable reports whether the FIRE number can be reached
func (f FireCalculation) Reachable() bool {
	return f.YearsToFire != nil
}

// AlreadyIndependent reports whether net worth already covers the FIRE number
func (f FireCalculation) AlreadyIndependent() bool {
	return f.YearsToFire != nil && f.YearsToFire.IsZero()
}

// ScenarioSet holds the FIRE calculation under three fixed return assumptions
type ScenarioSet struct {
	Conservative FireCalculation `json:"conservative"`
	BaseCase     FireCalculation `json:"base_case"`
	Aggressive   FireCalculation `json:"aggressive"`
}

// ScenarioEntry is a labeled scenario, used for rendering
type ScenarioEntry struct {
	Key    string
	Label  string
	Result FireCalculation
}

// Entries returns the scenarios from the most to the least conservative
func (s ScenarioSet) Entries() []ScenarioEntry {
	return []ScenarioEntry{
		{Key: "conservative", Label: "Conservative", Result: s.Conservative},
		{Key: "base_case", Label: "Base Case", Result: s.BaseCase},
		{Key: "aggressive", Label: "Aggressive", Result: s.Aggressive},
	}
}

// Milestone keys
const (
	MilestoneCoastFire = "coast_fire"
	MilestoneLeanFire  = "lean_fire"
	MilestoneFire      = "fire"
	MilestoneFatFire   = "fat_fire"
)

// Milestone is one FIRE tier and whether current net worth reaches it.
// Multiplier is expressed in years of annual expenses.
type Milestone struct {
	Key        string          `json:"key"`
	Label      string          `json:"label"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Amount     decimal.Decimal `json:"amount"`
	Achieved   bool            `json:"achieved"`
}

// Remaining returns how far a net worth is from the milestone, floored at zero
func (m Milestone) Remaining(netWorth decimal.Decimal) decimal.Decimal {
	gap := m.Amount.Sub(netWorth)
	if gap.IsNegative() {
		return decimal.Zero
	}
	return gap
}
