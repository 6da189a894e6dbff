package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/ohitsming/guapital-sub001/internal/domain"
)

// CSVDetailedExporter provides per-account projected values, one row per account and horizon.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.TrajectoryReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"AccountID", "Category", "IsLiability", "Method", "Rate", "TermYears", "HorizonYears", "Value"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	horizons := make([]int, len(report.Projection.Points))
	for i, pt := range report.Projection.Points {
		horizons[i] = pt.HorizonYears
	}
	accounts := append([]domain.AccountProjection(nil), report.Projection.Accounts...)
	sort.SliceStable(accounts, func(i, j int) bool { return accounts[i].AccountID < accounts[j].AccountID })
	for _, ap := range accounts {
		for i, v := range ap.Values {
			if i >= len(horizons) {
				break
			}
			row := []string{
				ap.AccountID,
				ap.Category,
				boolToString(ap.IsLiability),
				string(ap.Method),
				ap.Rate.String(),
				intToString(ap.TermYears),
				intToString(horizons[i]),
				v.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
