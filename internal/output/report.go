package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ohitsming/guapital-sub001/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport renders a report with the named formatter and writes it to w
func GenerateReport(report *domain.TrajectoryReport, format string, w io.Writer) error {
	f, err := lookup(format)
	if err != nil {
		return err
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("format %s: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// SaveReport writes a report into dir using the named format. The format
// "all" writes the verbose console, detailed CSV and amortization CSV files.
func SaveReport(report *domain.TrajectoryReport, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var paths []string
		// both CSVs share an extension, so their kind goes into the file name
		for _, name := range []string{"console", "detailed-csv", "schedule-csv"} {
			ext := Extension(name)
			if kind, ok := strings.CutSuffix(name, "-csv"); ok {
				ext = kind + "." + ext
			}
			p, err := WriteFormatted(GetFormatterByName(name), report, dir, ext)
			if err != nil {
				return paths, err
			}
			paths = append(paths, p)
		}
		return paths, nil
	}
	f, err := lookup(format)
	if err != nil {
		return nil, err
	}
	p, err := WriteFormatted(f, report, dir, Extension(format))
	if err != nil {
		return nil, err
	}
	return []string{p}, nil
}

// SaveSnapshot writes a snapshot as YAML so it can be edited and re-read
func SaveSnapshot(snap *domain.Snapshot, filename string) error {
	b, err := yaml.Marshal(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}

// WriteSnapshot encodes a snapshot as YAML to w
func WriteSnapshot(snap *domain.Snapshot, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return err
	}
	return enc.Close()
}

func lookup(format string) (Formatter, error) {
	if f := GetFormatterByName(format); f != nil {
		return f, nil
	}
	// enrich error with available formatters and aliases
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}
