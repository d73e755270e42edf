// Package report assembles aggregated compliance data into paginated documents
// and renders them as a terminal print view or a standalone HTML export.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/cysce/handwash-dashboard-tui/internal/compliance"
	"github.com/cysce/handwash-dashboard-tui/internal/models"
)

const (
	// DetailRowLimit is the number of most recent days shown per unit.
	DetailRowLimit = 10
	// Attribution is printed in the footer of every page.
	Attribution = "Hand-Wash © 2026 CYSCE - Hospital HDS"
)

// BuildInput is everything a document is assembled from.
type BuildInput struct {
	ID            string
	Kind          models.ReportKind
	UnitLabel     string
	Window        models.Window
	Units         []compliance.UnitSeries
	StepBreakdown []models.StepRow
	GeneratedAt   time.Time
}

// Build assembles a report document. Each unit block shows at most the last
// DetailRowLimit days while its totals cover the whole window.
func Build(in BuildInput) models.ReportDocument {
	doc := models.ReportDocument{
		ID:             in.ID,
		UnitLabel:      in.UnitLabel,
		Kind:           in.Kind,
		Summary:        compliance.AggregateUnits(in.Units),
		DateRangeLabel: in.Window.Label(),
		GeneratedAt:    in.GeneratedAt,
		Trend:          compliance.MergeUnits(in.Units),
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.GeneratedAt.IsZero() {
		doc.GeneratedAt = time.Now()
	}
	if in.Kind.ID == models.ReportSteps {
		doc.StepBreakdown = append([]models.StepRow(nil), in.StepBreakdown...)
	}

	for _, us := range in.Units {
		totals := compliance.Aggregate(us.Records)
		doc.Details = append(doc.Details, models.UnitDetail{
			Unit:      us.Unit,
			Rows:      lastN(us.Records, DetailRowLimit),
			Totals:    totals,
			TotalDays: len(us.Records),
		})
	}
	return doc
}

func lastN(records []models.DailyRecord, n int) []models.DailyRecord {
	if len(records) > n {
		records = records[len(records)-n:]
	}
	return append([]models.DailyRecord(nil), records...)
}
