package output

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/ohitsming/guapital-sub001/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleVerboseFormatter renders the full trajectory report as styled tables.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.TrajectoryReport) ([]byte, error) {
	var buf bytes.Buffer
	p := report.Projection
	fire := report.Fire
	summary := AnalyzeTrajectory(report)

	buf.WriteString(renderTitle("FINANCIAL TRAJECTORY REPORT"))
	buf.WriteString("\n")
	buf.WriteString(renderKeyValue([][2]string{
		{"User", report.UserID},
		{"As of", report.AsOf.Format("2006-01-02")},
		{"Assets", FormatCurrency(p.CurrentAssets)},
		{"Liabilities", FormatCurrency(p.CurrentLiabilities)},
		{"Net worth", FormatCurrency(p.CurrentNetWorth)},
		{"Average asset rate", FormatRate(p.AverageAssetRate)},
		{"Years to $1M", FormatYears(p.YearsToMillion)},
		{"Years to double", FormatYears(p.YearsToDouble)},
	}))
	buf.WriteString("\n")

	rows := make([][]string, 0, len(p.Points))
	for _, pt := range p.Points {
		rows = append(rows, []string{
			fmt.Sprintf("%d yr", pt.HorizonYears),
			FormatCurrency(pt.AssetValue),
			FormatCurrency(pt.LiabilityValue),
			FormatCurrency(pt.NetWorth),
		})
	}
	buf.WriteString(renderTable(table{
		Title:   "Net Worth Projection",
		Headers: []string{"Horizon", "Assets", "Liabilities", "Net Worth"},
		Rows:    rows,
	}))
	buf.WriteString("\n")

	if len(p.Accounts) > 0 {
		rows = rows[:0]
		for _, ap := range p.Accounts {
			rows = append(rows, []string{
				accountLabel(ap),
				FormatRate(ap.Rate),
				string(ap.Method),
				FormatCurrency(ap.Current),
				FormatCurrency(lastValue(ap.Values)),
			})
		}
		buf.WriteString(renderTable(table{
			Title:   "Accounts",
			Headers: []string{"Account", "Rate", "Method", "Current", fmt.Sprintf("%d yr", lastHorizon(p.Points))},
			Rows:    rows,
		}))
		buf.WriteString("\n")
	}

	buf.WriteString("  ")
	buf.WriteString(headerStyle.Render("Financial Independence"))
	buf.WriteString("\n")
	buf.WriteString(renderKeyValue([][2]string{
		{"Monthly savings", FormatCurrency(fire.MonthlySavings)},
		{"Savings rate", FormatPercentage(fire.SavingsRate)},
		{"FIRE number", FormatCurrency(fire.FireNumber)},
		{"Progress", FormatPercentage(fire.ProgressPercentage)},
		{"Expected return", FormatRate(fire.ExpectedReturn)},
		{"Years to FIRE", FormatYears(fire.YearsToFire)},
		{"Projected date", FormatDate(fire.ProjectedDate)},
	}))
	buf.WriteString("  ")
	buf.WriteString(statusStyle(summary.Status).Render("Status: " + summary.Status))
	buf.WriteString("\n\n")

	rows = rows[:0]
	for _, sc := range report.Scenarios.Entries() {
		rows = append(rows, []string{
			sc.Label,
			FormatRate(sc.Result.ExpectedReturn),
			FormatYears(sc.Result.YearsToFire),
			FormatMonths(sc.Result.MonthsToFire),
			FormatDate(sc.Result.ProjectedDate),
		})
	}
	buf.WriteString(renderTable(table{
		Title:   "Scenarios",
		Headers: []string{"Scenario", "Return", "Years", "Months", "Date"},
		Rows:    rows,
	}))
	buf.WriteString("\n")

	rows = rows[:0]
	for _, m := range report.Milestones {
		state := "no"
		if m.Achieved {
			state = "yes"
		}
		rows = append(rows, []string{
			m.Label,
			m.Multiplier.StringFixed(2) + "x",
			FormatCurrency(m.Amount),
			FormatCurrency(m.Remaining(p.CurrentNetWorth)),
			state,
		})
	}
	buf.WriteString(renderTable(table{
		Title:   "Milestones",
		Headers: []string{"Milestone", "Multiple", "Target", "Remaining", "Achieved"},
		Rows:    rows,
	}))
	if summary.NextMilestone != nil {
		buf.WriteString("  ")
		buf.WriteString(warnStyle.Render(fmt.Sprintf("Next milestone: %s (%s to go)", summary.NextMilestone.Label, FormatCurrency(summary.Remaining))))
		buf.WriteString("\n")
	}
	buf.WriteString("\n")

	if len(report.Schedules) > 0 {
		rows = rows[:0]
		for _, s := range report.Schedules {
			rows = append(rows, []string{
				s.AccountID,
				FormatRate(s.Rate),
				intToString(s.TermYears) + " yr",
				FormatCurrency(s.MonthlyPayment),
				FormatCurrency(s.TotalInterest),
				FormatMonths(s.PayoffMonths),
			})
		}
		buf.WriteString(renderTable(table{
			Title:   "Loan Amortization",
			Headers: []string{"Account", "Rate", "Term", "Payment", "Total Interest", "Payoff Months"},
			Rows:    rows,
		}))
		buf.WriteString("\n")
	}

	buf.WriteString("  ")
	buf.WriteString(headerStyle.Render("Key Assumptions"))
	buf.WriteString("\n")
	for _, a := range assumptionsFor(report.Assumptions) {
		buf.WriteString(mutedStyle.Render("  • " + a))
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

func accountLabel(ap domain.AccountProjection) string {
	label := ap.AccountID
	if ap.Name != "" {
		label = ap.Name
	}
	if ap.IsLiability {
		label += " (debt)"
	}
	return label
}

func statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusIndependent:
		return goodStyle
	case StatusOnTrack:
		return valueStyle
	default:
		return badStyle
	}
}

func lastValue(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return values[len(values)-1]
}

func lastHorizon(points []domain.ProjectionPoint) int {
	if len(points) == 0 {
		return 0
	}
	return points[len(points)-1].HorizonYears
}
