package compliance

import (
	"fmt"
	"math"
	"time"

	"github.com/cysce/handwash-dashboard-tui/internal/models"
)

// DefaultTargetRate is the success rate every unit series converges to.
const DefaultTargetRate = 0.76684

// Band is an inclusive integer range draws are taken from.
type Band struct {
	Min int
	Max int
}

var (
	// DailyAttempts is the per-day wash attempt band for a unit.
	DailyAttempts = Band{Min: 180, Max: 259}
	// StepAttempts is the per-day attempt band for a single step.
	StepAttempts = Band{Min: 50, Max: 79}
)

// UnitSeries is the generated daily series of one unit.
type UnitSeries struct {
	Unit    models.Unit
	Records []models.DailyRecord
}

// Generator produces synthetic compliance records from an injected source.
type Generator struct {
	src Source
}

// NewGenerator creates a generator. A nil source falls back to a time-seeded one.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = NewTimeSource()
	}
	return &Generator{src: &lockedSource{src: src}}
}

// Source returns the shared, lock-protected source the generator draws from.
func (g *Generator) Source() Source {
	return g.src
}

// Generate returns one record per calendar day in [start, end], oldest first.
// Successes are floor(attempts × targetRate), so the realized rate tracks the
// target closely. An end before start yields an empty slice.
func (g *Generator) Generate(start, end time.Time, targetRate float64) []models.DailyRecord {
	start, end = Day(start), Day(end)
	if end.Before(start) {
		return []models.DailyRecord{}
	}
	targetRate = clamp(targetRate, 0, 1)

	records := make([]models.DailyRecord, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		attempts := uniformInt(g.src, DailyAttempts.Min, DailyAttempts.Max)
		records = append(records, NewDailyRecord(d, attempts, successesFor(attempts, targetRate)))
	}
	return records
}

// GenerateWindow is Generate over a resolved window.
func (g *Generator) GenerateWindow(w models.Window, targetRate float64) []models.DailyRecord {
	return g.Generate(w.Start, w.End, targetRate)
}

// GenerateUnits generates an independent series for each unit.
func (g *Generator) GenerateUnits(units []models.Unit, w models.Window, targetRate float64) []UnitSeries {
	series := make([]UnitSeries, 0, len(units))
	for _, u := range units {
		series = append(series, UnitSeries{Unit: u, Records: g.GenerateWindow(w, targetRate)})
	}
	return series
}

// RecentWashes returns the last n wash events before now, newest first.
func (g *Generator) RecentWashes(n int, now time.Time) []models.WashEvent {
	if n <= 0 {
		return nil
	}
	units := models.Units[1:]
	events := make([]models.WashEvent, 0, n)
	ts := now
	for i := range n {
		ts = ts.Add(-time.Duration(uniformInt(g.src, 2, 6)) * time.Minute)
		ev := models.WashEvent{
			ID:        fmt.Sprintf("#L-%d", 1847-i),
			Unit:      units[g.src.IntN(len(units))].Name,
			Timestamp: ts,
			Status:    models.WashSuccess,
		}
		if g.src.IntN(10) == 0 {
			ev.Status = models.WashInvalid
			ev.Compliance = uniformInt(g.src, 30, 60)
			ev.Duration = time.Duration(uniformInt(g.src, 10, 18)) * time.Second
		} else {
			ev.Compliance = uniformInt(g.src, 85, 100)
			ev.Duration = time.Duration(uniformInt(g.src, 22, 34)) * time.Second
		}
		events = append(events, ev)
	}
	return events
}

// NewDailyRecord builds a record and derives its compliance rate.
func NewDailyRecord(date time.Time, attempts, successes int) models.DailyRecord {
	if attempts < 0 {
		attempts = 0
	}
	successes = min(max(successes, 0), attempts)
	return models.DailyRecord{
		Date:           Day(date),
		Attempts:       attempts,
		Successes:      successes,
		ComplianceRate: Rate(successes, attempts),
	}
}

// Rate returns successes / attempts × 100, or 0 when attempts is 0.
func Rate(successes, attempts int) float64 {
	if attempts <= 0 {
		return 0
	}
	return float64(successes) / float64(attempts) * 100
}

func successesFor(attempts int, rate float64) int {
	return int(math.Floor(float64(attempts) * rate))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
