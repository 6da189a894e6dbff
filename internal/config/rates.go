package config

import (
	"fmt"
	"os"

	"github.com/ohitsming/guapital-sub001/internal/calculation"
	"github.com/ohitsming/guapital-sub001/internal/domain"
	"gopkg.in/yaml.v3"
)

// RateTableFile is the on-disk form of a category rate table.
// With Extend set, entries override or add to the built-in defaults.
type RateTableFile struct {
	Extend        bool                       `yaml:"extend"`
	AssetFallback string                     `yaml:"asset_fallback"`
	DebtFallback  string                     `yaml:"debt_fallback"`
	Entries       []domain.CategoryRateEntry `yaml:"entries"`
}

// LoadRateTable reads a category rate table from a YAML file
func LoadRateTable(filename string) (*calculation.CategoryRateTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate table %s: %w", filename, err)
	}

	var file RateTableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rate table YAML: %w", err)
	}
	return BuildRateTable(file)
}

// BuildRateTable turns a decoded rate table file into a table
func BuildRateTable(file RateTableFile) (*calculation.CategoryRateTable, error) {
	entries := file.Entries
	if file.Extend {
		entries = mergeEntries(calculation.DefaultCategoryRateEntries(), file.Entries)
	}
	if file.AssetFallback == "" {
		file.AssetFallback = "other"
	}
	if file.DebtFallback == "" {
		file.DebtFallback = "other_debt"
	}

	table, err := calculation.NewCategoryRateTable(entries, file.AssetFallback, file.DebtFallback)
	if err != nil {
		return nil, fmt.Errorf("%w: rate table: %v", ErrInvalidInput, err)
	}
	return table, nil
}

// mergeEntries replaces base entries that share a category and appends the rest
func mergeEntries(base, overrides []domain.CategoryRateEntry) []domain.CategoryRateEntry {
	out := make([]domain.CategoryRateEntry, len(base))
	copy(out, base)

	position := make(map[string]int, len(out))
	for i, e := range out {
		position[calculation.NormalizeCategory(e.Category)] = i
	}
	for _, e := range overrides {
		key := calculation.NormalizeCategory(e.Category)
		if i, ok := position[key]; ok {
			out[i] = e
			continue
		}
		position[key] = len(out)
		out = append(out, e)
	}
	return out
}
