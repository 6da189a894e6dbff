package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"
	"time"

	"github.com/ohitsming/guapital-sub001/internal/domain"
)

// HTMLFormatter produces a self-contained HTML report with a projection chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    FormatCurrency,
	"pct":     FormatPercentage,
	"rate":    FormatRate,
	"years":   FormatYears,
	"months":  FormatMonths,
	"dateptr": FormatDate,
	"date":    func(t time.Time) string { return t.Format("2006-01-02") },
	"json":    jsonJS,
}).Parse(htmlTemplateSource))

// jsonJS embeds v in a script block; values that cannot be marshaled become null
func jsonJS(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return template.JS("null")
	}
	return template.JS(b)
}

func (h HTMLFormatter) Format(report *domain.TrajectoryReport) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.TrajectoryReport
		Summary     Summary
		Assumptions []string
	}{report, AnalyzeTrajectory(report), assumptionsFor(report.Assumptions)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
