package calculation

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ohitsming/guapital-sub001/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Debugf(format string, args ...any) { l.record("DEBUG", format, args...) }
func (l *recordingLogger) Infof(format string, args ...any)  { l.record("INFO", format, args...) }
func (l *recordingLogger) Warnf(format string, args ...any)  { l.record("WARN", format, args...) }
func (l *recordingLogger) Errorf(format string, args ...any) { l.record("ERROR", format, args...) }

func (l *recordingLogger) record(level, format string, args ...any) {
	l.lines = append(l.lines, level+" "+fmt.Sprintf(format, args...))
}

func sampleSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		UserID:          "user-1",
		AsOf:            fixedAsOf,
		MonthlyIncome:   decimal.NewFromInt(9000),
		MonthlyExpenses: decimal.NewFromInt(5000),
		Age:             intPtr(32),
		Accounts: []domain.Account{
			{ID: "401k", Category: "Retirement", CurrentBalance: decimal.NewFromInt(150000)},
			{ID: "hysa", Category: "savings account", CurrentBalance: decimal.NewFromInt(30000)},
			{ID: "car-loan", Category: "auto", CurrentBalance: decimal.NewFromInt(18000), IsLiability: true},
			{ID: "amex", Category: "credit_card", CurrentBalance: decimal.NewFromInt(-2500)},
		},
	}
}

func TestCalculationEngine_Evaluate(t *testing.T) {
	generated := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
	SetNowFunc(func() time.Time { return generated })
	defer SetNowFunc(time.Now)

	engine := NewCalculationEngine()
	logger := &recordingLogger{}
	engine.SetLogger(logger)

	report, err := engine.Evaluate(context.Background(), sampleSnapshot())
	require.NoError(t, err)

	assert.Equal(t, "user-1", report.UserID)
	assert.Equal(t, fixedAsOf, report.AsOf)
	assert.Equal(t, generated, report.GeneratedAt)

	assert.True(t, report.Projection.CurrentAssets.Equal(decimal.NewFromInt(180000)))
	assert.True(t, report.Projection.CurrentLiabilities.Equal(decimal.NewFromInt(20500)))
	assert.True(t, report.Fire.CurrentNetWorth.Equal(report.Projection.CurrentNetWorth))
	assert.True(t, report.Fire.ExpectedReturn.Equal(BaseReturn))
	assert.True(t, report.Fire.FireNumber.Equal(decimal.NewFromInt(1500000)))
	require.True(t, report.Fire.Reachable())
	assert.True(t, report.Fire.YearsToFire.Equal(*report.Scenarios.BaseCase.YearsToFire))
	assert.Len(t, report.Milestones, 4)

	// the annual series runs from today through the 30 year horizon
	require.Len(t, report.Series, 31)
	assert.True(t, report.Series[0].NetWorth.Equal(report.Projection.CurrentNetWorth))
	last := report.Projection.Points[len(report.Projection.Points)-1]
	assert.Equal(t, last.HorizonYears, report.Series[30].HorizonYears)
	assert.True(t, last.NetWorth.Equal(report.Series[30].NetWorth))
	pt, ok := report.Projection.PointAt(10)
	require.True(t, ok)
	assert.True(t, pt.AssetValue.Equal(report.Series[10].AssetValue))
	assert.True(t, pt.LiabilityValue.Equal(report.Series[10].LiabilityValue))

	// the auto loan amortizes; the credit card is revolving
	require.Len(t, report.Schedules, 1)
	assert.Equal(t, "car-loan", report.Schedules[0].AccountID)
	assert.Len(t, report.Schedules[0].Rows, 60)

	joined := strings.Join(report.Assumptions, "\n")
	assert.Contains(t, joined, "Revolving balances")
	assert.NotContains(t, joined, "current age of")

	assert.NotEmpty(t, logger.lines)
	assert.Contains(t, strings.Join(logger.lines, "\n"), `category "auto" resolved to "auto_loan"`)
}

func TestCalculationEngine_ExpectedReturnOverride(t *testing.T) {
	snap := sampleSnapshot()
	snap.ExpectedReturn = decPtr(0.04)

	report, err := NewCalculationEngine().Evaluate(context.Background(), snap)
	require.NoError(t, err)
	assert.True(t, report.Fire.ExpectedReturn.Equal(d(0.04)))
	assert.True(t, report.Fire.YearsToFire.GreaterThanOrEqual(*report.Scenarios.Conservative.YearsToFire))
}

func TestCalculationEngine_DefaultsAsOfAndAge(t *testing.T) {
	now := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	SetNowFunc(func() time.Time { return now })
	defer SetNowFunc(time.Now)

	snap := sampleSnapshot()
	snap.AsOf = time.Time{}
	snap.Age = nil

	report, err := NewCalculationEngine().Evaluate(context.Background(), snap)
	require.NoError(t, err)
	assert.Equal(t, now, report.AsOf)
	assert.Contains(t, strings.Join(report.Assumptions, "\n"), "current age of 30")
	assert.True(t, snap.AsOf.IsZero(), "input snapshot is not modified")
}

func TestCalculationEngine_Errors(t *testing.T) {
	engine := NewCalculationEngine()

	_, err := engine.Evaluate(context.Background(), nil)
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.Evaluate(ctx, sampleSnapshot())
	require.ErrorIs(t, err, context.Canceled)
}

func TestCalculationEngine_CustomRates(t *testing.T) {
	rates, err := NewCategoryRateTable([]domain.CategoryRateEntry{
		{Category: "cash", AnnualRate: decimal.Zero},
		{Category: "debt", AnnualRate: decimal.Zero, IsLiability: true},
	}, "cash", "debt")
	require.NoError(t, err)

	engine := NewCalculationEngineWithRates(rates)
	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)

	report, err := engine.Evaluate(context.Background(), sampleSnapshot())
	require.NoError(t, err)
	for _, pt := range report.Projection.Points {
		assert.True(t, pt.NetWorth.Equal(report.Projection.CurrentNetWorth), "flat rates keep net worth flat")
	}
	assert.Empty(t, report.Schedules)
}
