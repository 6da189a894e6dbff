package calculation

import "github.com/ohitsming/guapital-sub001/internal/domain"

// NormalizeAccount stores the balance as a magnitude and marks the account as a
// liability when its raw balance is negative or its category is a known debt.
func NormalizeAccount(raw domain.Account, table *CategoryRateTable) domain.Account {
	acc := raw
	if acc.CurrentBalance.IsNegative() {
		acc.IsLiability = true
		acc.CurrentBalance = acc.CurrentBalance.Abs()
	}
	if table != nil && table.IsLiabilityCategory(acc.Category) {
		acc.IsLiability = true
	}
	return acc
}

// NormalizeAccounts applies NormalizeAccount to every account, returning a new slice
func NormalizeAccounts(accounts []domain.Account, table *CategoryRateTable) []domain.Account {
	out := make([]domain.Account, len(accounts))
	for i, acc := range accounts {
		out[i] = NormalizeAccount(acc, table)
	}
	return out
}
