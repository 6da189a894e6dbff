package domain

import (
	"github.com/shopspring/decimal"
)

// Account is a point-in-time view of a single asset or liability. Balances are
// stored as magnitudes; IsLiability decides the sign when aggregating.
type Account struct {
	ID             string           `yaml:"id" json:"id"`
	Name           string           `yaml:"name,omitempty" json:"name,omitempty"`
	Category       string           `yaml:"category" json:"category"`
	CurrentBalance decimal.Decimal  `yaml:"current_balance" json:"current_balance"`
	IsLiability    bool             `yaml:"is_liability" json:"is_liability"`
	InterestRate   *decimal.Decimal `yaml:"interest_rate,omitempty" json:"interest_rate,omitempty"`
	LoanTermYears  *int             `yaml:"loan_term_years,omitempty" json:"loan_term_years,omitempty"`
}

// DisplayName returns the account name, falling back to its ID
func (a Account) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}

// SignedBalance returns the balance as it contributes to net worth
func (a Account) SignedBalance() decimal.Decimal {
	if a.IsLiability {
		return a.CurrentBalance.Abs().Neg()
	}
	return a.CurrentBalance.Abs()
}

// CategoryRateEntry is one row of the category rate table.
// LoanTermYears is only meaningful for liabilities; 0 marks revolving credit.
type CategoryRateEntry struct {
	Category      string          `yaml:"category" json:"category"`
	AnnualRate    decimal.Decimal `yaml:"annual_rate" json:"annual_rate"`
	LoanTermYears int             `yaml:"loan_term_years" json:"loan_term_years"`
	IsLiability   bool            `yaml:"is_liability" json:"is_liability"`
}
