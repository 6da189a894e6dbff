package calculation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/ohitsming/guapital-sub001/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// minSubstringMatch is the shortest word or category that may take part in a
	// token or containment match
	minSubstringMatch = 3
	// minSimilarity is the Levenshtein similarity needed for a typo match
	minSimilarity = 0.75
)

// MatchKind describes how a category was resolved against the rate table
type MatchKind string

const (
	MatchExact     MatchKind = "exact"
	MatchAlias     MatchKind = "alias"
	MatchToken     MatchKind = "token"
	MatchSubstring MatchKind = "substring"
	MatchSimilar   MatchKind = "similar"
	MatchFallback  MatchKind = "fallback"
)

// categoryAliases covers common names that share no useful word with their category
var categoryAliases = map[string]string{
	"car":              "auto_loan",
	"car_loan":         "auto_loan",
	"vehicle_loan":     "auto_loan",
	"home_loan":        "mortgage",
	"house_loan":       "mortgage",
	"home_equity":      "heloc",
	"home_equity_loan": "heloc",
	"education_loan":   "student_loan",
}

type matchSide int

const (
	anySide matchSide = iota
	assetSide
	debtSide
)

// CategoryRateTable maps account categories to default growth rates and loan terms.
// A table is immutable once built and safe for concurrent use.
type CategoryRateTable struct {
	entries       []domain.CategoryRateEntry
	index         map[string]int
	aliases       map[string]int
	assetFallback int
	debtFallback  int
}

// NewCategoryRateTable builds a table from entries in declaration order.
// Categories are normalized; the fallbacks must name an asset and a liability entry.
func NewCategoryRateTable(entries []domain.CategoryRateEntry, assetFallback, debtFallback string) (*CategoryRateTable, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("rate table has no entries")
	}

	t := &CategoryRateTable{
		entries: make([]domain.CategoryRateEntry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		key := NormalizeCategory(e.Category)
		if key == "" {
			return nil, fmt.Errorf("entry %d: category is required", i)
		}
		if _, dup := t.index[key]; dup {
			return nil, fmt.Errorf("entry %d: duplicate category %q", i, key)
		}
		if e.LoanTermYears < 0 {
			return nil, fmt.Errorf("entry %d (%s): loan term cannot be negative", i, key)
		}
		e.Category = key
		t.index[key] = len(t.entries)
		t.entries = append(t.entries, e)
	}

	// aliases only apply when the table carries their target and the name
	// is not a category of its own
	t.aliases = make(map[string]int, len(categoryAliases))
	for alias, target := range categoryAliases {
		i, ok := t.index[target]
		if _, own := t.index[alias]; ok && !own {
			t.aliases[alias] = i
		}
	}

	var ok bool
	if t.assetFallback, ok = t.index[NormalizeCategory(assetFallback)]; !ok || t.entries[t.assetFallback].IsLiability {
		return nil, fmt.Errorf("asset fallback %q must name an asset category", assetFallback)
	}
	if t.debtFallback, ok = t.index[NormalizeCategory(debtFallback)]; !ok || !t.entries[t.debtFallback].IsLiability {
		return nil, fmt.Errorf("debt fallback %q must name a liability category", debtFallback)
	}
	return t, nil
}

// DefaultCategoryRateEntries returns the built-in category defaults
func DefaultCategoryRateEntries() []domain.CategoryRateEntry {
	asset := func(category string, rate float64) domain.CategoryRateEntry {
		return domain.CategoryRateEntry{Category: category, AnnualRate: decimal.NewFromFloat(rate)}
	}
	debt := func(category string, rate float64, term int) domain.CategoryRateEntry {
		return domain.CategoryRateEntry{Category: category, AnnualRate: decimal.NewFromFloat(rate), LoanTermYears: term, IsLiability: true}
	}
	return []domain.CategoryRateEntry{
		asset("checking", 0),
		asset("savings", 0.04),
		asset("investment", 0.07),
		asset("brokerage", 0.07),
		asset("retirement", 0.07),
		asset("real_estate", 0.04),
		asset("vehicle", -0.15),
		asset("crypto", 0.10),
		asset("cash", 0),
		asset("other", 0.03),
		debt("mortgage", 0.07, 30),
		debt("auto_loan", 0.07, 5),
		debt("student_loan", 0.055, 10),
		debt("credit_card", 0.22, 0),
		debt("personal_loan", 0.11, 5),
		debt("heloc", 0.085, 10),
		debt("line_of_credit", 0.12, 0),
		debt("other_debt", -0.02, 0),
	}
}

// DefaultCategoryRateTable returns the built-in rate table
func DefaultCategoryRateTable() *CategoryRateTable {
	t, err := NewCategoryRateTable(DefaultCategoryRateEntries(), "other", "other_debt")
	if err != nil {
		panic(fmt.Sprintf("default rate table is invalid: %v", err))
	}
	return t
}

// NormalizeCategory lowercases and trims a category, mapping spaces and hyphens to underscores
func NormalizeCategory(category string) string {
	key := strings.ToLower(strings.TrimSpace(category))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	return key
}

// Entries returns a copy of the table entries in declaration order
func (t *CategoryRateTable) Entries() []domain.CategoryRateEntry {
	out := make([]domain.CategoryRateEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Fallback returns the default entry for unknown categories on one side of the balance sheet
func (t *CategoryRateTable) Fallback(isLiability bool) domain.CategoryRateEntry {
	if isLiability {
		return t.entries[t.debtFallback]
	}
	return t.entries[t.assetFallback]
}

// IsLiabilityCategory reports whether a category is an exact liability entry
func (t *CategoryRateTable) IsLiabilityCategory(category string) bool {
	i, ok := t.index[NormalizeCategory(category)]
	return ok && t.entries[i].IsLiability
}

// Lookup resolves a category for an account on the given side of the balance sheet.
// It never fails: unknown categories resolve to the side's fallback entry.
func (t *CategoryRateTable) Lookup(category string, isLiability bool) domain.CategoryRateEntry {
	e, _ := t.Explain(category, isLiability)
	return e
}

// Explain is Lookup that also reports which matching tier produced the entry
func (t *CategoryRateTable) Explain(category string, isLiability bool) (domain.CategoryRateEntry, MatchKind) {
	side := assetSide
	if isLiability {
		side = debtSide
	}
	if i, kind, ok := t.match(NormalizeCategory(category), side); ok {
		return t.entries[i], kind
	}
	return t.Fallback(isLiability), MatchFallback
}

// RateFor returns the default annual rate for a category
func (t *CategoryRateTable) RateFor(category string) decimal.Decimal {
	return t.lookupAny(category).AnnualRate
}

// TermFor returns the default loan term in years for a category (0 for revolving or assets)
func (t *CategoryRateTable) TermFor(category string) int {
	return t.lookupAny(category).LoanTermYears
}

func (t *CategoryRateTable) lookupAny(category string) domain.CategoryRateEntry {
	if i, _, ok := t.match(NormalizeCategory(category), anySide); ok {
		return t.entries[i]
	}
	return t.entries[t.assetFallback]
}

// match applies exact, alias, token, containment and similarity tiers in that
// order. Exact matches ignore the side; every other tier only considers entries on it.
func (t *CategoryRateTable) match(key string, side matchSide) (int, MatchKind, bool) {
	if key == "" {
		return 0, MatchFallback, false
	}
	if i, ok := t.index[key]; ok {
		return i, MatchExact, true
	}
	if i, ok := t.aliases[key]; ok && t.onSide(t.entries[i], side) {
		return i, MatchAlias, true
	}
	if i, ok := t.tokenMatch(key, side); ok {
		return i, MatchToken, true
	}
	if i, ok := t.substringMatch(key, side); ok {
		return i, MatchSubstring, true
	}
	if i, ok := t.similarMatch(key, side); ok {
		return i, MatchSimilar, true
	}
	return 0, MatchFallback, false
}

func (t *CategoryRateTable) onSide(e domain.CategoryRateEntry, side matchSide) bool {
	switch side {
	case assetSide:
		return !e.IsLiability
	case debtSide:
		return e.IsLiability
	default:
		return true
	}
}

// tokenMatch compares whole underscore-separated words. The entry sharing the
// most words wins, then the one with the fewest unmatched words, then
// declaration order, so "car" never reaches "credit_card".
func (t *CategoryRateTable) tokenMatch(key string, side matchSide) (int, bool) {
	words := strings.Split(key, "_")
	best, bestShared, bestExtra := -1, 0, 0
	for i, e := range t.entries {
		if !t.onSide(e, side) {
			continue
		}
		entryWords := strings.Split(e.Category, "_")
		shared := 0
		for _, w := range entryWords {
			if len(w) >= minSubstringMatch && slices.Contains(words, w) {
				shared++
			}
		}
		if shared == 0 {
			continue
		}
		extra := len(entryWords) - shared
		if shared > bestShared || (shared == bestShared && extra < bestExtra) {
			best, bestShared, bestExtra = i, shared, extra
		}
	}
	return best, best >= 0
}

// substringMatch catches run-together names such as "cryptocurrency".
// Only a key that contains a whole category matches; the longest category wins.
func (t *CategoryRateTable) substringMatch(key string, side matchSide) (int, bool) {
	best, bestLen := -1, 0
	for i, e := range t.entries {
		if !t.onSide(e, side) || len(e.Category) < minSubstringMatch {
			continue
		}
		if strings.Contains(key, e.Category) && len(e.Category) > bestLen {
			best, bestLen = i, len(e.Category)
		}
	}
	return best, best >= 0
}

// similarMatch tolerates typos such as "mortage"
func (t *CategoryRateTable) similarMatch(key string, side matchSide) (int, bool) {
	best, bestScore := -1, 0.0
	for i, e := range t.entries {
		if !t.onSide(e, side) {
			continue
		}
		score := similarity(key, e.Category)
		if score >= minSimilarity && score > bestScore {
			best, bestScore = i, score
		}
	}
	return best, best >= 0
}

func similarity(a, b string) float64 {
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
}
