package output

import (
	"bytes"
	"encoding/csv"

	"github.com/ohitsming/guapital-sub001/internal/domain"
)

// CSVScheduleExporter writes the month-by-month amortization schedule of every
// amortizing liability in the report.
type CSVScheduleExporter struct{}

func (c CSVScheduleExporter) Name() string { return "schedule-csv" }

func (c CSVScheduleExporter) Format(report *domain.TrajectoryReport) ([]byte, error) {
	return FormatSchedules(report.Schedules)
}

// FormatSchedules renders schedules as CSV. It is shared with callers that
// build a schedule without a full report.
func FormatSchedules(schedules []domain.LiabilitySchedule) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"AccountID", "Category", "Period", "Payment", "Interest", "Principal", "Balance"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, s := range schedules {
		for _, r := range s.Rows {
			row := []string{
				s.AccountID,
				s.Category,
				intToString(r.Period),
				r.Payment.StringFixed(2),
				r.Interest.StringFixed(2),
				r.Principal.StringFixed(2),
				r.Balance.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
