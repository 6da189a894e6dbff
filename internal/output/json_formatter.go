package output

import (
	"encoding/json"

	"github.com/ohitsming/guapital-sub001/internal/domain"
)

// JSONFormatter serializes the trajectory report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.TrajectoryReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
