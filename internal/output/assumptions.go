package output

import (
	"fmt"

	"github.com/ohitsming/guapital-sub001/internal/calculation"
	"github.com/shopspring/decimal"
)

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs
// when a report carries none of its own.
var DefaultAssumptions = GenerateAssumptions(calculation.DefaultAverageAssetRate)

// GenerateAssumptions creates the assumptions list for a given average asset rate
func GenerateAssumptions(averageAssetRate decimal.Decimal) []string {
	return []string{
		fmt.Sprintf("FIRE number: %sx annual expenses (4%% withdrawal rule)", calculation.FireMultiple.String()),
		fmt.Sprintf("Scenario returns: conservative %s, base %s, aggressive %s",
			FormatRate(calculation.ConservativeReturn), FormatRate(calculation.BaseReturn), FormatRate(calculation.AggressiveReturn)),
		fmt.Sprintf("Milestone horizons compound assets at %s annually", FormatRate(averageAssetRate)),
		"Monthly savings are contributed at the end of each month",
		"Balances are nominal: no inflation or tax adjustment",
	}
}

func assumptionsFor(assumptions []string) []string {
	if len(assumptions) == 0 {
		return DefaultAssumptions
	}
	return assumptions
}

var decimalHundred = decimal.NewFromInt(100)
