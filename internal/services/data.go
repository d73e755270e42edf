package services

import (
	"strconv"
	"time"

	"github.com/cysce/handwash-dashboard-tui/internal/compliance"
	"github.com/cysce/handwash-dashboard-tui/internal/models"
)

// StatCard is one headline figure with its change against the previous window.
type StatCard struct {
	Title  string
	Value  string
	Change float64 // percent, or points for rates
	Points bool
}

// DashboardData is everything the dashboard view renders for one time range.
type DashboardData struct {
	Range        models.TimeRange
	Window       models.Window
	Comparison   models.PeriodComparison
	Trend        []models.DailyRecord
	Today        models.DailyRecord
	Cards        []StatCard
	Alerts       []models.QualityAlert
	RecentWashes []models.WashEvent
	Units        []UnitSummary
	GeneratedAt  time.Time
}

// UnitSummary is the period summary of one unit.
type UnitSummary struct {
	Unit    models.Unit
	Summary models.PeriodSummary
}

// StepMetrics is the per-step view data.
type StepMetrics struct {
	Profile models.StepProfile
	Range   models.TimeRange
	Records []models.StepRecord
	Summary models.PeriodSummary
}

// LastDays returns up to the last n records.
func (s *StepMetrics) LastDays(n int) []models.StepRecord {
	if len(s.Records) <= n {
		return s.Records
	}
	return s.Records[len(s.Records)-n:]
}

// ReportPreview is the live summary shown while a report is being configured.
type ReportPreview struct {
	Filter  models.Filter
	Window  models.Window
	Unit    models.Unit
	Kind    models.ReportKind
	Summary models.PeriodSummary
}

func buildCards(today models.DailyRecord, cmp models.PeriodComparison) []StatCard {
	return []StatCard{
		{Title: "Washes Today", Value: strconv.Itoa(today.Attempts), Change: cmp.AttemptsChange},
		{Title: "Correct Washes", Value: strconv.Itoa(today.Successes), Change: cmp.SuccessesChange},
		{Title: "Avg. Wash Time", Value: models.AverageWashTime.String()},
		{Title: "Success Rate", Value: cmp.Current.RateLabel(), Change: cmp.SuccessRateDelta, Points: true},
	}
}

func unitSummaries(series []compliance.UnitSeries) []UnitSummary {
	out := make([]UnitSummary, 0, len(series))
	for _, us := range series {
		s := compliance.Aggregate(us.Records)
		out = append(out, UnitSummary{Unit: us.Unit, Summary: s})
	}
	return out
}
