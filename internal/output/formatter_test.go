package output

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ohitsming/guapital-sub001/internal/calculation"
	"github.com/ohitsming/guapital-sub001/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func intPtr(v int) *int { return &v }

func buildTestReport() *domain.TrajectoryReport {
	asOf := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	date := time.Date(2046, 6, 1, 0, 0, 0, 0, time.UTC)
	fire := domain.FireCalculation{
		MonthlyIncome:      dec(9000),
		MonthlyExpenses:    dec(4000),
		MonthlySavings:     dec(5000),
		SavingsRate:        decimal.NewFromFloat(55.56),
		FireNumber:         dec(1200000),
		CurrentNetWorth:    dec(250000),
		ProgressPercentage: decimal.NewFromFloat(20.83),
		ExpectedReturn:     decimal.NewFromFloat(0.07),
		YearsToFire:        decPtr(12.41),
		MonthsToFire:       intPtr(149),
		ProjectedDate:      &date,
	}
	conservative := fire
	conservative.ExpectedReturn = decimal.NewFromFloat(0.05)
	conservative.YearsToFire = decPtr(14.02)
	aggressive := fire
	aggressive.ExpectedReturn = decimal.NewFromFloat(0.09)
	aggressive.YearsToFire = decPtr(11.12)

	return &domain.TrajectoryReport{
		UserID:      "user-1",
		AsOf:        asOf,
		GeneratedAt: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		Projection: domain.NetWorthProjection{
			CurrentAssets:      dec(400000),
			CurrentLiabilities: dec(150000),
			CurrentNetWorth:    dec(250000),
			AverageAssetRate:   decimal.NewFromFloat(0.07),
			Points: []domain.ProjectionPoint{
				{HorizonYears: 1, AssetValue: dec(428000), LiabilityValue: dec(140000), NetWorth: dec(288000)},
				{HorizonYears: 5, AssetValue: dec(561000), LiabilityValue: dec(90000), NetWorth: dec(471000)},
			},
			Accounts: []domain.AccountProjection{
				{AccountID: "mortgage", Category: "mortgage", IsLiability: true, Rate: decimal.NewFromFloat(0.07), TermYears: 30, Method: domain.MethodAmortized, Current: dec(150000), Values: []decimal.Decimal{dec(140000), dec(90000)}},
				{AccountID: "brokerage", Name: "Brokerage", Category: "brokerage", Rate: decimal.NewFromFloat(0.07), Method: domain.MethodCompound, Current: dec(400000), Values: []decimal.Decimal{dec(428000), dec(561000)}},
			},
			YearsToMillion: decPtr(19.5),
		},
		Fire:      fire,
		Scenarios: domain.ScenarioSet{Conservative: conservative, BaseCase: fire, Aggressive: aggressive},
		Milestones: []domain.Milestone{
			{Key: domain.MilestoneCoastFire, Label: "Coast FIRE", Multiplier: decimal.NewFromFloat(4.4), Amount: dec(211000), Achieved: true},
			{Key: domain.MilestoneLeanFire, Label: "Lean FIRE", Multiplier: dec(20), Amount: dec(960000)},
			{Key: domain.MilestoneFire, Label: "FIRE", Multiplier: dec(25), Amount: dec(1200000)},
			{Key: domain.MilestoneFatFire, Label: "Fat FIRE", Multiplier: decimal.NewFromFloat(37.5), Amount: dec(1800000)},
		},
		Schedules: []domain.LiabilitySchedule{
			{AccountID: "mortgage", Category: "mortgage", Rate: decimal.NewFromFloat(0.07), TermYears: 30, MonthlyPayment: decimal.NewFromFloat(997.95), TotalInterest: dec(209263), PayoffMonths: intPtr(360),
				Rows: []domain.AmortizationRow{
					{Period: 1, Payment: decimal.NewFromFloat(997.95), Interest: dec(875), Principal: decimal.NewFromFloat(122.95), Balance: decimal.NewFromFloat(149877.05)},
					{Period: 2, Payment: decimal.NewFromFloat(997.95), Interest: decimal.NewFromFloat(874.28), Principal: decimal.NewFromFloat(123.67), Balance: decimal.NewFromFloat(149753.38)},
				}},
		},
		Assumptions: []string{"FIRE number is 25x annual expenses (4% withdrawal rule)"},
	}
}

func TestFormatterAliasResolution(t *testing.T) {
	tests := []struct {
		alias string
		want  string
	}{
		{"console-verbose", "console"},
		{"VERBOSE", "console"},
		{" text ", "console-lite"},
		{"csv-summary", "csv"},
		{"csv-detailed", "detailed-csv"},
		{"amortization", "schedule-csv"},
		{"html-report", "html"},
		{"json", "json"},
	}
	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			f := GetFormatterByName(tt.alias)
			require.NotNil(t, f, "alias %q did not resolve", tt.alias)
			assert.Equal(t, tt.want, f.Name())
		})
	}
	assert.Nil(t, GetFormatterByName("pdf"))
}

func TestAvailableFormatterNames(t *testing.T) {
	assert.Equal(t, []string{"console", "console-lite", "csv", "detailed-csv", "html", "json", "schedule-csv"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "verbose")
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "txt", Extension("console"))
	assert.Equal(t, "txt", Extension("text"))
	assert.Equal(t, "csv", Extension("amortization"))
	assert.Equal(t, "html", Extension("html"))
	assert.Equal(t, "json", Extension("json"))
}

func TestJSONFormatterRoundTrips(t *testing.T) {
	report := buildTestReport()
	out, err := JSONFormatter{}.Format(report)
	require.NoError(t, err)

	var decoded domain.TrajectoryReport
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "user-1", decoded.UserID)
	assert.True(t, decoded.Fire.FireNumber.Equal(dec(1200000)))
	require.NotNil(t, decoded.Fire.YearsToFire)
	assert.Equal(t, "12.41", decoded.Fire.YearsToFire.StringFixed(2))
	assert.Contains(t, string(out), `"base_case"`)
}

func TestJSONFormatterEncodesUnreachableAsNull(t *testing.T) {
	report := buildTestReport()
	report.Fire.YearsToFire = nil
	report.Fire.MonthsToFire = nil
	report.Fire.ProjectedDate = nil

	out, err := JSONFormatter{}.Format(report)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &raw))
	var fire map[string]any
	require.NoError(t, json.Unmarshal(raw["fire"], &fire))
	assert.Contains(t, fire, "years_to_fire")
	assert.Nil(t, fire["years_to_fire"])
	assert.Nil(t, fire["months_to_fire"])
	assert.Nil(t, fire["projected_date"])
}

func TestCSVSummarizerRows(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestReport())
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4, "header + current + 2 horizons")
	assert.Equal(t, []string{"UserID", "HorizonYears", "AssetValue", "LiabilityValue", "NetWorth"}, rows[0])
	assert.Equal(t, []string{"user-1", "0", "400000.00", "150000.00", "250000.00"}, rows[1])
	assert.Equal(t, []string{"user-1", "5", "561000.00", "90000.00", "471000.00"}, rows[3])
}

func TestCSVSummarizerUsesAnnualSeries(t *testing.T) {
	report := buildTestReport()
	report.Series = []domain.ProjectionPoint{
		{HorizonYears: 0, AssetValue: dec(400000), LiabilityValue: dec(150000), NetWorth: dec(250000)},
		{HorizonYears: 1, AssetValue: dec(428000), LiabilityValue: dec(140000), NetWorth: dec(288000)},
		{HorizonYears: 2, AssetValue: dec(458000), LiabilityValue: dec(130000), NetWorth: dec(328000)},
	}
	out, err := CSVSummarizer{}.Format(report)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4, "header + one row per year")
	assert.Equal(t, []string{"user-1", "0", "400000.00", "150000.00", "250000.00"}, rows[1])
	assert.Equal(t, []string{"user-1", "2", "458000.00", "130000.00", "328000.00"}, rows[3])
}

func TestCSVDetailedExporterDeterministicOrder(t *testing.T) {
	out, err := CSVDetailedExporter{}.Format(buildTestReport())
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	// accounts sorted by id: brokerage before mortgage
	assert.Equal(t, "brokerage", rows[1][0])
	assert.Equal(t, "1", rows[1][6])
	assert.Equal(t, "mortgage", rows[3][0])
	assert.Equal(t, "true", rows[3][2])
	assert.Equal(t, "amortized", rows[3][3])
	assert.Equal(t, "90000.00", rows[4][7])
}

func TestCSVScheduleExporter(t *testing.T) {
	out, err := CSVScheduleExporter{}.Format(buildTestReport())
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"mortgage", "mortgage", "1", "997.95", "875.00", "122.95", "149877.05"}, rows[1])

	empty, err := FormatSchedules(nil)
	require.NoError(t, err)
	assert.Equal(t, "AccountID,Category,Period,Payment,Interest,Principal,Balance\n", string(empty))
}

func TestConsoleLiteFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	content := string(out)
	assert.True(t, strings.HasPrefix(content, "FINANCIAL TRAJECTORY SUMMARY\n"))
	assert.Contains(t, content, "Net Worth: $250,000.00")
	assert.Contains(t, content, "Base Case (7.0%): Years=12.41 Date=2046-06-01")
	assert.Contains(t, content, "Status: on track, 1 of 4 milestones achieved")
	assert.Contains(t, content, "Next: Lean FIRE at $960,000.00 ($710,000.00 to go)")
	assert.NotContains(t, content, "In 10 years")

	report := buildTestReport()
	report.Projection.Points = append(report.Projection.Points,
		domain.ProjectionPoint{HorizonYears: 10, AssetValue: dec(787000), LiabilityValue: dec(60000), NetWorth: dec(727000)})
	out, err = ConsoleFormatter{}.Format(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), "In 10 years: $727,000.00")
}

func TestConsoleVerboseFormatter(t *testing.T) {
	out, err := ConsoleVerboseFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	content := string(out)
	for _, want := range []string{
		"FINANCIAL TRAJECTORY REPORT",
		"Net Worth Projection",
		"$471,000.00",
		"Brokerage",
		"mortgage (debt)",
		"Loan Amortization",
		"$997.95",
		"Next milestone: Lean FIRE",
		"Key Assumptions",
	} {
		assert.Contains(t, content, want)
	}
}

func TestConsoleVerboseFormatterUnreachable(t *testing.T) {
	report := buildTestReport()
	report.Fire.YearsToFire = nil
	report.Fire.ProjectedDate = nil
	report.Schedules = nil
	out, err := ConsoleVerboseFormatter{}.Format(report)
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "Status: unreachable")
	assert.NotContains(t, content, "Loan Amortization")
}

func TestHTMLFormatterBasic(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "Scenario Summary")
	assert.Contains(t, content, "$1,200,000.00")
	assert.Contains(t, content, "20.83%")
	assert.Contains(t, content, "Loan Amortization")
	assert.Contains(t, content, "Coast FIRE")
}

func TestHTMLFormatterChartsAnnualSeries(t *testing.T) {
	report := buildTestReport()
	out, err := HTMLFormatter{}.Format(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"horizon_years":5`)
	assert.NotContains(t, string(out), `"horizon_years":0`)

	report.Series = []domain.ProjectionPoint{
		{HorizonYears: 0, NetWorth: dec(250000)},
		{HorizonYears: 1, NetWorth: dec(288000)},
	}
	out, err = HTMLFormatter{}.Format(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"horizon_years":0`)
	assert.NotContains(t, string(out), `"horizon_years":5`)
}

func TestJSONJSUnmarshalableValue(t *testing.T) {
	assert.Equal(t, `null`, string(jsonJS(make(chan int))))
	assert.Equal(t, `{"a":1}`, string(jsonJS(map[string]int{"a": 1})))
}

func TestHTMLAssumptionsSectionPresent(t *testing.T) {
	report := buildTestReport()
	report.Assumptions = nil
	out, err := HTMLFormatter{}.Format(report)
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "Key Assumptions")

	found := false
	for _, a := range DefaultAssumptions {
		if strings.Contains(content, htmlEscaped(a)) {
			found = true
			break
		}
	}
	assert.True(t, found, "expected at least one default assumption to be rendered in HTML")
}

// htmlEscaped mirrors the escaping html/template applies to text nodes
func htmlEscaped(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "'", "&#39;", `"`, "&#34;").Replace(s)
}

func TestGenerateReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GenerateReport(buildTestReport(), "json-pretty", &buf))
	assert.True(t, json.Valid(buf.Bytes()))
}

func TestUnknownFormatErrorIncludesSuggestions(t *testing.T) {
	err := GenerateReport(buildTestReport(), "definitely-not-a-format", &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	assert.Contains(t, err.Error(), "Try one of:")
	assert.Contains(t, err.Error(), "schedule-csv")
}

func TestSaveReport(t *testing.T) {
	dir := t.TempDir()
	paths, err := SaveReport(buildTestReport(), "csv", dir)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(dir, "trajectory_user-1_20260101_120000.csv"), paths[0])

	paths, err = SaveReport(buildTestReport(), "all", filepath.Join(dir, "all"))
	require.NoError(t, err)
	require.Len(t, paths, 3)
	assert.Equal(t, filepath.Join(dir, "all", "trajectory_user-1_20260101_120000.detailed.csv"), paths[1])
	assert.Equal(t, filepath.Join(dir, "all", "trajectory_user-1_20260101_120000.schedule.csv"), paths[2])
	for _, p := range paths {
		_, statErr := os.Stat(p)
		assert.NoError(t, statErr)
	}

	_, err = SaveReport(buildTestReport(), "pdf", dir)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSaveSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	snap := &domain.Snapshot{
		UserID:          "user-1",
		MonthlyIncome:   dec(9000),
		MonthlyExpenses: dec(4000),
		Accounts:        []domain.Account{{ID: "hysa", Category: "savings", CurrentBalance: dec(1000)}},
	}
	require.NoError(t, SaveSnapshot(snap, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "user_id: user-1")
	assert.Contains(t, string(data), "category: savings")
}

func TestFormattersOnEngineReport(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	snap := &domain.Snapshot{
		UserID:          "engine",
		AsOf:            time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		MonthlyIncome:   dec(8000),
		MonthlyExpenses: dec(5000),
		Accounts: []domain.Account{
			{ID: "401k", Category: "retirement", CurrentBalance: dec(120000)},
			{ID: "loan", Category: "student_loan", CurrentBalance: dec(30000), IsLiability: true},
		},
	}
	report, err := engine.Evaluate(context.Background(), snap)
	require.NoError(t, err)

	for _, name := range AvailableFormatterNames() {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, GenerateReport(report, name, &buf))
			assert.NotEmpty(t, buf.Bytes())
		})
	}
}
