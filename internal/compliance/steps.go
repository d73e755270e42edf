package compliance

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cysce/handwash-dashboard-tui/internal/models"
)

// ErrStepNotFound is returned for a step id outside 1..6.
var ErrStepNotFound = errors.New("step not found")

// stepTable holds the six wash-technique profiles.
var stepTable = []models.StepProfile{
	{ID: 1, Name: "Palm to palm", MeanCompliance: 95, StdDeviation: 3.5},
	{ID: 2, Name: "Palm over dorsum", MeanCompliance: 72, StdDeviation: 8.2},
	{ID: 3, Name: "Palms interlaced", MeanCompliance: 88, StdDeviation: 5.1},
	{ID: 4, Name: "Backs of fingers", MeanCompliance: 65, StdDeviation: 9.3},
	{ID: 5, Name: "Thumb rotation", MeanCompliance: 70, StdDeviation: 7.8},
	{ID: 6, Name: "Fingertips to palm", MeanCompliance: 68, StdDeviation: 8.5},
}

// Steps returns a copy of the step table ordered by id.
func Steps() []models.StepProfile {
	return append([]models.StepProfile(nil), stepTable...)
}

// LookupStep returns the profile for a step id.
func LookupStep(id int) (models.StepProfile, error) {
	if id < 1 || id > len(stepTable) {
		return models.StepProfile{}, fmt.Errorf("%w: %d", ErrStepNotFound, id)
	}
	return stepTable[id-1], nil
}

// GenerateStepSeries returns numDays records for the step ending at today.
// Compliance is mean + U(-1,1) × std clamped to [0,100]; the uniform draw is a
// cheap stand-in for a normal sampler.
func (g *Generator) GenerateStepSeries(stepID, numDays int, today time.Time) ([]models.StepRecord, models.StepProfile, error) {
	profile, err := LookupStep(stepID)
	if err != nil {
		return nil, models.StepProfile{}, err
	}
	if numDays <= 0 {
		return []models.StepRecord{}, profile, nil
	}

	today = Day(today)
	records := make([]models.StepRecord, 0, numDays)
	for i := numDays - 1; i >= 0; i-- {
		jitter := (g.src.Float64() - 0.5) * 2
		compliance := clamp(profile.MeanCompliance+jitter*profile.StdDeviation, 0, 100)
		compliance = math.Round(compliance*10) / 10

		attempts := uniformInt(g.src, StepAttempts.Min, StepAttempts.Max)
		records = append(records, models.StepRecord{
			Date:       today.AddDate(0, 0, -i),
			Compliance: compliance,
			Attempts:   attempts,
			Successes:  int(math.Floor(compliance / 100 * float64(attempts))),
			Mean:       profile.MeanCompliance,
			Upper:      profile.Upper(),
			Lower:      profile.Lower(),
		})
	}
	return records, profile, nil
}

// StepBreakdown generates every step over numDays and returns the mean
// compliance of each, for the per-step report table.
func (g *Generator) StepBreakdown(numDays int, today time.Time) []models.StepRow {
	rows := make([]models.StepRow, 0, len(stepTable))
	for _, p := range stepTable {
		records, _, err := g.GenerateStepSeries(p.ID, numDays, today)
		if err != nil {
			continue
		}
		summary := AggregateSteps(records)
		rows = append(rows, models.StepRow{
			StepID:     p.ID,
			Name:       p.Name,
			Compliance: math.Round(summary.Mean*10) / 10,
		})
	}
	return rows
}
