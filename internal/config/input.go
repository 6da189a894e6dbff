package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ohitsming/guapital-sub001/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrInvalidInput marks a snapshot or request that failed validation
var ErrInvalidInput = errors.New("invalid input")

// ErrNegativeCashFlow is returned when income or expenses are negative
var ErrNegativeCashFlow = fmt.Errorf("%w: monthly income and expenses must be positive values", ErrInvalidInput)

var (
	minRate = decimal.NewFromInt(-1)
	maxRate = decimal.NewFromInt(1)
)

// InputParser handles parsing of snapshot input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a snapshot from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Snapshot, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a snapshot document
func (ip *InputParser) Parse(data []byte) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateSnapshot(&snap); err != nil {
		return nil, fmt.Errorf("snapshot validation failed: %w", err)
	}
	return &snap, nil
}

// ValidateCashFlow rejects negative monthly income or expenses
func ValidateCashFlow(monthlyIncome, monthlyExpenses decimal.Decimal) error {
	if monthlyIncome.IsNegative() || monthlyExpenses.IsNegative() {
		return ErrNegativeCashFlow
	}
	return nil
}

// ValidateSnapshot validates a decoded snapshot. Every error wraps ErrInvalidInput.
func (ip *InputParser) ValidateSnapshot(snap *domain.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: snapshot is required", ErrInvalidInput)
	}
	if err := ValidateCashFlow(snap.MonthlyIncome, snap.MonthlyExpenses); err != nil {
		return err
	}
	if snap.Age != nil && (*snap.Age < 0 || *snap.Age > 120) {
		return fmt.Errorf("%w: age must be between 0 and 120", ErrInvalidInput)
	}
	if snap.BirthDate != nil && !snap.AsOf.IsZero() && snap.BirthDate.After(snap.AsOf) {
		return fmt.Errorf("%w: birth date cannot be after the as-of date", ErrInvalidInput)
	}
	if snap.RetirementAge != nil && (*snap.RetirementAge < 1 || *snap.RetirementAge > 120) {
		return fmt.Errorf("%w: retirement age must be between 1 and 120", ErrInvalidInput)
	}
	if snap.ExpectedReturn != nil && !rateInRange(*snap.ExpectedReturn) {
		return fmt.Errorf("%w: expected return must be between -100%% and 100%%", ErrInvalidInput)
	}

	seen := make(map[string]bool, len(snap.Accounts))
	for i := range snap.Accounts {
		acc := &snap.Accounts[i]
		if err := ip.validateAccount(acc); err != nil {
			return fmt.Errorf("account %d validation failed: %w", i, err)
		}
		if seen[acc.ID] {
			return fmt.Errorf("%w: duplicate account id %q", ErrInvalidInput, acc.ID)
		}
		seen[acc.ID] = true
	}
	return nil
}

func (ip *InputParser) validateAccount(acc *domain.Account) error {
	if acc.ID == "" {
		return fmt.Errorf("%w: account id is required", ErrInvalidInput)
	}
	if acc.Category == "" {
		return fmt.Errorf("%w: category is required for account %s", ErrInvalidInput, acc.ID)
	}
	if acc.InterestRate != nil && !rateInRange(*acc.InterestRate) {
		return fmt.Errorf("%w: interest rate for account %s must be between -100%% and 100%%", ErrInvalidInput, acc.ID)
	}
	if acc.LoanTermYears != nil && (*acc.LoanTermYears < 0 || *acc.LoanTermYears > 50) {
		return fmt.Errorf("%w: loan term for account %s must be between 0 and 50 years", ErrInvalidInput, acc.ID)
	}
	return nil
}

func rateInRange(rate decimal.Decimal) bool {
	return rate.GreaterThanOrEqual(minRate) && rate.LessThanOrEqual(maxRate)
}

// CreateExampleSnapshot creates an example snapshot for testing
func (ip *InputParser) CreateExampleSnapshot() *domain.Snapshot {
	age := 34
	retirementAge := 60
	mortgageRate := decimal.NewFromFloat(0.0625)
	mortgageTerm := 30

	return &domain.Snapshot{
		UserID:          "example",
		AsOf:            time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		MonthlyIncome:   decimal.NewFromInt(11500),
		MonthlyExpenses: decimal.NewFromInt(6200),
		Age:             &age,
		RetirementAge:   &retirementAge,
		Accounts: []domain.Account{
			{ID: "checking", Name: "Everyday Checking", Category: "checking", CurrentBalance: decimal.NewFromInt(8400)},
			{ID: "hysa", Name: "High-Yield Savings", Category: "savings", CurrentBalance: decimal.NewFromInt(32000)},
			{ID: "401k", Name: "Employer 401(k)", Category: "retirement", CurrentBalance: decimal.NewFromInt(186000)},
			{ID: "brokerage", Name: "Taxable Brokerage", Category: "investment", CurrentBalance: decimal.NewFromInt(54000)},
			{ID: "home", Name: "Primary Residence", Category: "real_estate", CurrentBalance: decimal.NewFromInt(420000)},
			{ID: "mortgage", Name: "Home Mortgage", Category: "mortgage", CurrentBalance: decimal.NewFromInt(318000),
				IsLiability: true, InterestRate: &mortgageRate, LoanTermYears: &mortgageTerm},
			{ID: "car", Name: "Car Loan", Category: "auto", CurrentBalance: decimal.NewFromInt(14500), IsLiability: true},
			{ID: "visa", Name: "Rewards Card", Category: "credit_card", CurrentBalance: decimal.NewFromInt(2300), IsLiability: true},
		},
	}
}
