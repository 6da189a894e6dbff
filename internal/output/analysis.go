package output

import (
	"github.com/ohitsming/guapital-sub001/internal/domain"
	"github.com/shopspring/decimal"
)

// Trajectory status values reported by AnalyzeTrajectory
const (
	StatusIndependent = "independent"
	StatusOnTrack     = "on track"
	StatusUnreachable = "unreachable"
)

// outlookHorizon is the horizon AnalyzeTrajectory reports as the medium-term outlook
const outlookHorizon = 10

// Summary condenses a report into the few facts a reader looks for first.
type Summary struct {
	Status        string
	Achieved      int
	NextMilestone *domain.Milestone
	// Remaining is the gap between current net worth and NextMilestone
	Remaining decimal.Decimal
	// ScenarioSpread is how many more years the conservative scenario takes
	// than the aggressive one; nil when either is unreachable.
	ScenarioSpread *decimal.Decimal
	// Outlook is the projected point ten years out; nil when that horizon was not projected.
	Outlook *domain.ProjectionPoint
}

// AnalyzeTrajectory determines the next unmet milestone and the scenario spread.
// Extracted from the formatters for testability.
func AnalyzeTrajectory(report *domain.TrajectoryReport) Summary {
	var s Summary
	switch {
	case report.Fire.AlreadyIndependent():
		s.Status = StatusIndependent
	case report.Fire.Reachable():
		s.Status = StatusOnTrack
	default:
		s.Status = StatusUnreachable
	}

	netWorth := report.Projection.CurrentNetWorth
	for i := range report.Milestones {
		m := report.Milestones[i]
		if m.Achieved {
			s.Achieved++
			continue
		}
		// milestones are not ordered by amount (coast can be the smallest or not)
		if s.NextMilestone == nil || m.Amount.LessThan(s.NextMilestone.Amount) {
			s.NextMilestone = &m
		}
	}
	if s.NextMilestone != nil {
		s.Remaining = s.NextMilestone.Remaining(netWorth)
	}

	slow, fast := report.Scenarios.Conservative.YearsToFire, report.Scenarios.Aggressive.YearsToFire
	if slow != nil && fast != nil {
		spread := slow.Sub(*fast)
		s.ScenarioSpread = &spread
	}
	if pt, ok := report.Projection.PointAt(outlookHorizon); ok {
		s.Outlook = &pt
	}
	return s
}
