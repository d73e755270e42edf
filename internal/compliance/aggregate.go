package compliance

import (
	"math"
	"sort"
	"time"

	"github.com/cysce/handwash-dashboard-tui/internal/models"
)

// Aggregate reduces daily records into a period summary. An empty list yields
// zero totals and a zero success rate.
func Aggregate(records []models.DailyRecord) models.PeriodSummary {
	var s models.PeriodSummary
	rates := make([]float64, 0, len(records))
	for _, r := range records {
		s.TotalAttempts += r.Attempts
		s.TotalSuccesses += r.Successes
		rates = append(rates, r.ComplianceRate)
	}
	s.Days = len(records)
	s.SuccessRate = Rate(s.TotalSuccesses, s.TotalAttempts)
	s.Mean, s.StdDeviation = meanStd(rates)
	s.UnitCount = 1
	if len(records) == 0 {
		s.UnitCount = 0
	}
	return s
}

// AggregateSteps is Aggregate for a per-step series. Mean and deviation are
// taken over the sampled compliance values.
func AggregateSteps(records []models.StepRecord) models.PeriodSummary {
	var s models.PeriodSummary
	values := make([]float64, 0, len(records))
	for _, r := range records {
		s.TotalAttempts += r.Attempts
		s.TotalSuccesses += r.Successes
		values = append(values, r.Compliance)
	}
	s.Days = len(records)
	s.SuccessRate = Rate(s.TotalSuccesses, s.TotalAttempts)
	s.Mean, s.StdDeviation = meanStd(values)
	return s
}

// AggregateUnits merges the summaries of several unit series. Days is the
// window length, not the sum across units.
func AggregateUnits(series []UnitSeries) models.PeriodSummary {
	var all []models.DailyRecord
	days := 0
	for _, us := range series {
		all = append(all, us.Records...)
		days = max(days, len(us.Records))
	}
	s := Aggregate(all)
	s.Days = days
	s.UnitCount = len(series)
	return s
}

// MergeUnits sums unit series day by day into one series, oldest first.
func MergeUnits(series []UnitSeries) []models.DailyRecord {
	var order []time.Time
	totals := make(map[time.Time][2]int)
	for _, us := range series {
		for _, r := range us.Records {
			t, ok := totals[r.Date]
			if !ok {
				order = append(order, r.Date)
			}
			t[0] += r.Attempts
			t[1] += r.Successes
			totals[r.Date] = t
		}
	}
	sort.Slice(order, func(i, j int) bool { return order[i].Before(order[j]) })

	merged := make([]models.DailyRecord, 0, len(order))
	for _, d := range order {
		t := totals[d]
		merged = append(merged, NewDailyRecord(d, t[0], t[1]))
	}
	return merged
}

// CompareWithPrevious computes the change from previous to current. A zero
// previous total reports 0% change.
func CompareWithPrevious(current, previous models.PeriodSummary) models.PeriodComparison {
	return models.PeriodComparison{
		Current:          current,
		Previous:         previous,
		AttemptsChange:   PercentChange(float64(current.TotalAttempts), float64(previous.TotalAttempts)),
		SuccessesChange:  PercentChange(float64(current.TotalSuccesses), float64(previous.TotalSuccesses)),
		SuccessRateDelta: current.SuccessRate - previous.SuccessRate,
	}
}

// PercentChange returns (current - previous) / previous × 100, or 0 when
// previous is 0.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// Round1 rounds to the canonical one-decimal precision.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(sq / float64(len(values)))
}
