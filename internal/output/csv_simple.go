package output

import (
	"bytes"
	"encoding/csv"

	"github.com/ohitsming/guapital-sub001/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per horizon).
// Horizon 0 is the current position. Reports carrying an annual series get one
// row per year instead.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.TrajectoryReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"UserID", "HorizonYears", "AssetValue", "LiabilityValue", "NetWorth"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	rows := report.Series
	if len(rows) == 0 {
		p := report.Projection
		rows = make([]domain.ProjectionPoint, 0, len(p.Points)+1)
		rows = append(rows, domain.ProjectionPoint{
			AssetValue:     p.CurrentAssets,
			LiabilityValue: p.CurrentLiabilities,
			NetWorth:       p.CurrentNetWorth,
		})
		rows = append(rows, p.Points...)
	}
	for _, pt := range rows {
		row := []string{
			report.UserID,
			intToString(pt.HorizonYears),
			pt.AssetValue.StringFixed(2),
			pt.LiabilityValue.StringFixed(2),
			pt.NetWorth.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
