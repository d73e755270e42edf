package compliance

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cysce/handwash-dashboard-tui/internal/models"
)

// fixedSource returns the same draws every call.
type fixedSource struct {
	n int
	f float64
}

func (s fixedSource) IntN(n int) int {
	if s.n >= n {
		return n - 1
	}
	return s.n
}

func (s fixedSource) Float64() float64 { return s.f }

var today = time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

func TestGenerate_Invariants(t *testing.T) {
	g := NewGenerator(NewSource(42))
	records := g.Generate(today.AddDate(0, 0, -89), today, DefaultTargetRate)

	require.Len(t, records, 90)
	for i, r := range records {
		assert.GreaterOrEqual(t, r.Successes, 0)
		assert.LessOrEqual(t, r.Successes, r.Attempts)
		assert.GreaterOrEqual(t, r.Attempts, DailyAttempts.Min)
		assert.LessOrEqual(t, r.Attempts, DailyAttempts.Max)
		assert.GreaterOrEqual(t, r.ComplianceRate, 0.0)
		assert.LessOrEqual(t, r.ComplianceRate, 100.0)
		if i > 0 {
			assert.Equal(t, records[i-1].Date.AddDate(0, 0, 1), r.Date, "records must be consecutive days")
		}
	}
	assert.Equal(t, Day(today), records[len(records)-1].Date)
}

func TestGenerate_SuccessesFloorOfTarget(t *testing.T) {
	// IntN(80) == 20 puts attempts at 200.
	g := NewGenerator(fixedSource{n: 20})
	records := g.Generate(today, today, 0.76684)

	require.Len(t, records, 1)
	assert.Equal(t, 200, records[0].Attempts)
	assert.Equal(t, 153, records[0].Successes)
	assert.InDelta(t, 76.5, records[0].ComplianceRate, 0.001)
}

func TestGenerate_EndBeforeStart(t *testing.T) {
	g := NewGenerator(NewSource(1))
	records := g.Generate(today, today.AddDate(0, 0, -1), DefaultTargetRate)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestGenerate_ClampsRate(t *testing.T) {
	g := NewGenerator(NewSource(7))
	for _, r := range g.Generate(today.AddDate(0, 0, -6), today, 1.7) {
		assert.Equal(t, r.Attempts, r.Successes)
	}
	for _, r := range g.Generate(today.AddDate(0, 0, -6), today, -0.3) {
		assert.Zero(t, r.Successes)
	}
}

func TestGenerate_SameSeedSameSequence(t *testing.T) {
	a := NewGenerator(NewSource(99)).Generate(today.AddDate(0, 0, -29), today, DefaultTargetRate)
	b := NewGenerator(NewSource(99)).Generate(today.AddDate(0, 0, -29), today, DefaultTargetRate)
	assert.Equal(t, a, b)
}

func TestLookupStep(t *testing.T) {
	tests := []struct {
		id      int
		name    string
		wantErr bool
	}{
		{1, "Palm to palm", false},
		{4, "Backs of fingers", false},
		{6, "Fingertips to palm", false},
		{0, "", true},
		{7, "", true},
	}
	for _, tt := range tests {
		p, err := LookupStep(tt.id)
		if tt.wantErr {
			assert.True(t, errors.Is(err, ErrStepNotFound), "id %d", tt.id)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.name, p.Name)
	}
}

func TestGenerateStepSeries(t *testing.T) {
	g := NewGenerator(NewSource(3))
	records, profile, err := g.GenerateStepSeries(2, 30, today)
	require.NoError(t, err)
	require.Len(t, records, 30)
	assert.Equal(t, 72.0, profile.MeanCompliance)

	for _, r := range records {
		assert.GreaterOrEqual(t, r.Compliance, profile.Lower()-0.05)
		assert.LessOrEqual(t, r.Compliance, profile.Upper()+0.05)
		assert.GreaterOrEqual(t, r.Attempts, StepAttempts.Min)
		assert.LessOrEqual(t, r.Attempts, StepAttempts.Max)
		assert.LessOrEqual(t, r.Successes, r.Attempts)
		assert.Equal(t, profile.MeanCompliance, r.Mean)
		assert.Equal(t, profile.Upper(), r.Upper)
		assert.Equal(t, profile.Lower(), r.Lower)
		assert.Equal(t, r.Compliance, math.Round(r.Compliance*10)/10)
	}
	assert.Equal(t, Day(today), records[len(records)-1].Date)
}

func TestGenerateStepSeries_Extremes(t *testing.T) {
	// Float64 at the ends of [0,1) maps to mean ± std.
	g := NewGenerator(fixedSource{n: 0, f: 0.999})
	records, _, err := g.GenerateStepSeries(1, 3, today)
	require.NoError(t, err)
	for _, r := range records {
		assert.Equal(t, 98.5, r.Compliance)
	}

	g = NewGenerator(fixedSource{n: 0, f: 0})
	records, _, err = g.GenerateStepSeries(4, 1, today)
	require.NoError(t, err)
	assert.Equal(t, 55.7, records[0].Compliance)
}

func TestGenerateStepSeries_UnknownStep(t *testing.T) {
	g := NewGenerator(NewSource(3))
	_, _, err := g.GenerateStepSeries(9, 7, today)
	assert.ErrorIs(t, err, ErrStepNotFound)
}

func TestAggregate_SevenDayScenario(t *testing.T) {
	records := make([]models.DailyRecord, 7)
	for i := range records {
		records[i] = NewDailyRecord(today.AddDate(0, 0, -i), 200, 153)
	}

	s := Aggregate(records)
	assert.Equal(t, 1400, s.TotalAttempts)
	assert.Equal(t, 1071, s.TotalSuccesses)
	assert.Equal(t, "76.5%", s.RateLabel())
	assert.Equal(t, 76.5, Round1(s.SuccessRate))
	assert.Equal(t, 7, s.Days)
	assert.Zero(t, s.StdDeviation)
}

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil)
	assert.Zero(t, s.TotalAttempts)
	assert.Zero(t, s.TotalSuccesses)
	assert.Zero(t, s.SuccessRate)
	assert.False(t, math.IsNaN(s.SuccessRate))
	assert.False(t, math.IsNaN(s.Mean))
}

func TestAggregate_Idempotent(t *testing.T) {
	records := NewGenerator(NewSource(11)).Generate(today.AddDate(0, 0, -29), today, DefaultTargetRate)
	a := Aggregate(records)
	b := Aggregate(records)
	assert.Equal(t, a, b)
	assert.LessOrEqual(t, a.TotalSuccesses, a.TotalAttempts)
}

func TestAggregate_PopulationStdDev(t *testing.T) {
	records := []models.DailyRecord{
		NewDailyRecord(today, 100, 70),
		NewDailyRecord(today, 100, 90),
	}
	s := Aggregate(records)
	assert.InDelta(t, 80.0, s.Mean, 1e-9)
	assert.InDelta(t, 10.0, s.StdDeviation, 1e-9)
	assert.InDelta(t, 80.0, s.SuccessRate, 1e-9)
}

func TestAggregateUnits(t *testing.T) {
	g := NewGenerator(NewSource(5))
	units, err := models.ExpandUnit(models.UnitAll)
	require.NoError(t, err)
	w := models.Window{Start: Day(today).AddDate(0, 0, -6), End: Day(today)}

	s := AggregateUnits(g.GenerateUnits(units, w, DefaultTargetRate))
	assert.Equal(t, 5, s.UnitCount)
	assert.Equal(t, 7, s.Days)
	assert.GreaterOrEqual(t, s.TotalAttempts, 5*7*DailyAttempts.Min)
}

func TestCompareWithPrevious(t *testing.T) {
	current := models.PeriodSummary{TotalAttempts: 1100, TotalSuccesses: 880, SuccessRate: 80}
	previous := models.PeriodSummary{TotalAttempts: 1000, TotalSuccesses: 760, SuccessRate: 76}

	c := CompareWithPrevious(current, previous)
	assert.InDelta(t, 10.0, c.AttemptsChange, 1e-9)
	assert.InDelta(t, 15.789, c.SuccessesChange, 0.001)
	assert.InDelta(t, 4.0, c.SuccessRateDelta, 1e-9)

	zero := CompareWithPrevious(current, models.PeriodSummary{})
	assert.Zero(t, zero.AttemptsChange)
	assert.Zero(t, zero.SuccessesChange)
}

func TestResolveWindow(t *testing.T) {
	d := func(y int, m time.Month, day int) time.Time { return time.Date(y, m, day, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name      string
		filter    models.Filter
		wantStart time.Time
		wantEnd   time.Time
		wantDays  int
		wantErr   error
	}{
		{"7 days", models.Filter{Range: models.TimeRange7Days}, d(2026, 3, 9), d(2026, 3, 15), 7, nil},
		{"90 days", models.Filter{Range: models.TimeRange90Days}, d(2025, 12, 16), d(2026, 3, 15), 90, nil},
		{"explicit", models.Filter{Start: d(2026, 3, 1), End: d(2026, 3, 10)}, d(2026, 3, 1), d(2026, 3, 10), 10, nil},
		{"swapped", models.Filter{Start: d(2026, 3, 10), End: d(2026, 3, 1)}, d(2026, 3, 1), d(2026, 3, 10), 10, nil},
		{"clamped to today", models.Filter{Start: d(2026, 3, 12), End: d(2026, 4, 30)}, d(2026, 3, 12), d(2026, 3, 15), 4, nil},
		{"start only", models.Filter{Start: d(2026, 3, 14)}, d(2026, 3, 14), d(2026, 3, 15), 2, nil},
		{"bad range", models.Filter{Range: 12}, time.Time{}, time.Time{}, 0, ErrInvalidRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ResolveWindow(tt.filter, today)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, w.Start)
			assert.Equal(t, tt.wantEnd, w.End)
			assert.Equal(t, tt.wantDays, w.Days())
		})
	}
}

func TestWindowPrevious(t *testing.T) {
	w, err := ResolveWindow(models.Filter{Range: models.TimeRange7Days}, today)
	require.NoError(t, err)
	prev := w.Previous()
	assert.Equal(t, 7, prev.Days())
	assert.Equal(t, w.Start.AddDate(0, 0, -1), prev.End)
}

func TestValidateFilter(t *testing.T) {
	assert.NoError(t, ValidateFilter(models.DefaultFilter()))
	assert.ErrorIs(t, ValidateFilter(models.Filter{Unit: "morgue"}), models.ErrUnitNotFound)
	assert.ErrorIs(t, ValidateFilter(models.Filter{Unit: "icu", Kind: "weekly"}), models.ErrReportKindNotFound)
}

func TestRecentWashes(t *testing.T) {
	g := NewGenerator(NewSource(8))
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	events := g.RecentWashes(5, now)

	require.Len(t, events, 5)
	assert.Equal(t, "#L-1847", events[0].ID)
	assert.Equal(t, "#L-1843", events[4].ID)
	for i, ev := range events {
		assert.True(t, ev.Timestamp.Before(now))
		if i > 0 {
			assert.True(t, ev.Timestamp.Before(events[i-1].Timestamp))
		}
		if ev.Status == models.WashSuccess {
			assert.GreaterOrEqual(t, ev.Compliance, 85)
		}
	}
	assert.Nil(t, g.RecentWashes(0, now))
}
