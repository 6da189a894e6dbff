package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ohitsming/guapital-sub001/internal/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the storage format of snapshot_date
const DateLayout = "2006-01-02"

// Record is one persisted trajectory snapshot, unique per user and calendar day
type Record struct {
	ID               string           `json:"id"`
	UserID           string           `json:"user_id"`
	SnapshotDate     time.Time        `json:"snapshot_date"`
	NetWorth         decimal.Decimal  `json:"net_worth"`
	TotalAssets      decimal.Decimal  `json:"total_assets"`
	TotalLiabilities decimal.Decimal  `json:"total_liabilities"`
	FireNumber       decimal.Decimal  `json:"fire_number"`
	YearsToFire      *decimal.Decimal `json:"years_to_fire"`
	Payload          json.RawMessage  `json:"payload,omitempty"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// RecordFromReport summarizes a report for persistence on the given day
func RecordFromReport(report *domain.TrajectoryReport, day time.Time) (Record, error) {
	if report == nil {
		return Record{}, fmt.Errorf("report is required")
	}
	if report.UserID == "" {
		return Record{}, fmt.Errorf("report has no user id")
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return Record{}, fmt.Errorf("encoding report: %w", err)
	}
	return Record{
		UserID:           report.UserID,
		SnapshotDate:     truncateDay(day),
		NetWorth:         report.Projection.CurrentNetWorth,
		TotalAssets:      report.Projection.CurrentAssets,
		TotalLiabilities: report.Projection.CurrentLiabilities,
		FireNumber:       report.Fire.FireNumber,
		YearsToFire:      report.Fire.YearsToFire,
		Payload:          payload,
	}, nil
}

// Report decodes the stored report payload
func (r Record) Report() (*domain.TrajectoryReport, error) {
	var report domain.TrajectoryReport
	if err := json.Unmarshal(r.Payload, &report); err != nil {
		return nil, fmt.Errorf("decoding report payload: %w", err)
	}
	return &report, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
