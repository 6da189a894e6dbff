package domain

import (
	"time"

	"github.com/ohitsming/guapital-sub001/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// DefaultRetirementAge is used for Coast FIRE when the snapshot has none
const DefaultRetirementAge = 65

// Snapshot is the input document for a trajectory evaluation: the accounts of
// one user plus their monthly income and expense aggregates.
type Snapshot struct {
	UserID          string           `yaml:"user_id" json:"user_id"`
	AsOf            time.Time        `yaml:"as_of,omitempty" json:"as_of,omitempty"`
	Accounts        []Account        `yaml:"accounts" json:"accounts"`
	MonthlyIncome   decimal.Decimal  `yaml:"monthly_income" json:"monthly_income"`
	MonthlyExpenses decimal.Decimal  `yaml:"monthly_expenses" json:"monthly_expenses"`
	Age             *int             `yaml:"age,omitempty" json:"age,omitempty"`
	BirthDate       *time.Time       `yaml:"birth_date,omitempty" json:"birth_date,omitempty"`
	RetirementAge   *int             `yaml:"retirement_age,omitempty" json:"retirement_age,omitempty"`
	ExpectedReturn  *decimal.Decimal `yaml:"expected_return,omitempty" json:"expected_return,omitempty"`
}

// RetirementAgeOrDefault returns the declared retirement age or the default
func (s Snapshot) RetirementAgeOrDefault() int {
	if s.RetirementAge != nil && *s.RetirementAge > 0 {
		return *s.RetirementAge
	}
	return DefaultRetirementAge
}

// CurrentAge returns the declared age, else the age derived from BirthDate at
// the given date, else nil
func (s Snapshot) CurrentAge(at time.Time) *int {
	if s.Age != nil {
		return s.Age
	}
	if s.BirthDate == nil || at.IsZero() {
		return nil
	}
	age := dateutil.Age(*s.BirthDate, at)
	return &age
}

// AnnualExpenses returns monthly expenses scaled to a year
func (s Snapshot) AnnualExpenses() decimal.Decimal {
	return s.MonthlyExpenses.Mul(decimal.NewFromInt(12))
}

// TrajectoryReport bundles every engine result computed from one snapshot
type TrajectoryReport struct {
	UserID      string              `json:"user_id"`
	AsOf        time.Time           `json:"as_of"`
	GeneratedAt time.Time           `json:"generated_at"`
	Projection  NetWorthProjection  `json:"projection"`
	// Series is net worth for every year from today through the last horizon
	Series      []ProjectionPoint   `json:"series,omitempty"`
	Fire        FireCalculation     `json:"fire"`
	Scenarios   ScenarioSet         `json:"scenarios"`
	Milestones  []Milestone         `json:"milestones"`
	Schedules   []LiabilitySchedule `json:"schedules,omitempty"`
	Assumptions []string            `json:"assumptions"`
}

// ChartPoints returns the annual series when present, otherwise the standard horizons
func (r *TrajectoryReport) ChartPoints() []ProjectionPoint {
	if len(r.Series) > 0 {
		return r.Series
	}
	return r.Projection.Points
}
