package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadRateTable_Replace(t *testing.T) {
	path := writeFile(t, "rates.yaml", `
asset_fallback: misc
debt_fallback: loans
entries:
  - category: index_fund
    annual_rate: 0.10
  - category: misc
    annual_rate: 0.01
  - category: loans
    annual_rate: 0.08
    loan_term_years: 7
    is_liability: true
`)

	table, err := LoadRateTable(path)
	require.NoError(t, err)
	assert.True(t, table.RateFor("index").Equal(decimal.NewFromFloat(0.10)))
	assert.True(t, table.RateFor("mortgage").Equal(decimal.NewFromFloat(0.01)), "defaults are replaced")
	assert.Equal(t, 7, table.Lookup("boat loan", true).LoanTermYears)
}

func TestLoadRateTable_Extend(t *testing.T) {
	path := writeFile(t, "rates.yaml", `
extend: true
entries:
  - category: mortgage
    annual_rate: 0.055
    loan_term_years: 15
    is_liability: true
  - category: hsa
    annual_rate: 0.06
`)

	table, err := LoadRateTable(path)
	require.NoError(t, err)
	assert.True(t, table.RateFor("mortgage").Equal(decimal.NewFromFloat(0.055)))
	assert.Equal(t, 15, table.TermFor("mortgage"))
	assert.True(t, table.RateFor("hsa").Equal(decimal.NewFromFloat(0.06)))
	assert.True(t, table.RateFor("savings").Equal(decimal.NewFromFloat(0.04)), "untouched defaults survive")
}

func TestLoadRateTable_Errors(t *testing.T) {
	_, err := LoadRateTable(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	_, err = LoadRateTable(writeFile(t, "bad.yaml", "entries: {"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")

	_, err = LoadRateTable(writeFile(t, "dup.yaml", `
entries:
  - category: other
  - category: Other
  - category: other_debt
    is_liability: true
`))
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "duplicate")
}
