package output

import (
	"bytes"
	"fmt"

	"github.com/ohitsming/guapital-sub001/internal/domain"
)

// ConsoleFormatter provides a concise, unstyled console summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.TrajectoryReport) ([]byte, error) {
	var buf bytes.Buffer
	p := report.Projection
	fmt.Fprintln(&buf, "FINANCIAL TRAJECTORY SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Net Worth: %s (assets %s, liabilities %s)\n",
		FormatCurrency(p.CurrentNetWorth), FormatCurrency(p.CurrentAssets), FormatCurrency(p.CurrentLiabilities))
	fmt.Fprintln(&buf)
	for _, pt := range p.Points {
		fmt.Fprintf(&buf, "Year %d: NetWorth=%s Assets=%s Liabilities=%s\n",
			pt.HorizonYears, FormatCurrency(pt.NetWorth), FormatCurrency(pt.AssetValue), FormatCurrency(pt.LiabilityValue))
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "FIRE Number: %s  Progress: %s  Savings Rate: %s\n",
		FormatCurrency(report.Fire.FireNumber), FormatPercentage(report.Fire.ProgressPercentage), FormatPercentage(report.Fire.SavingsRate))
	for _, sc := range report.Scenarios.Entries() {
		fmt.Fprintf(&buf, "%s (%s): Years=%s Date=%s\n",
			sc.Label, FormatRate(sc.Result.ExpectedReturn), FormatYears(sc.Result.YearsToFire), FormatDate(sc.Result.ProjectedDate))
	}

	summary := AnalyzeTrajectory(report)
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Status: %s, %d of %d milestones achieved\n", summary.Status, summary.Achieved, len(report.Milestones))
	if summary.NextMilestone != nil {
		fmt.Fprintf(&buf, "Next: %s at %s (%s to go)\n",
			summary.NextMilestone.Label, FormatCurrency(summary.NextMilestone.Amount), FormatCurrency(summary.Remaining))
	}
	if summary.Outlook != nil {
		fmt.Fprintf(&buf, "In %d years: %s\n", summary.Outlook.HorizonYears, FormatCurrency(summary.Outlook.NetWorth))
	}
	return buf.Bytes(), nil
}
