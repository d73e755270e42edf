package models

import "time"

// StepRow is one line of the per-step breakdown in a report.
type StepRow struct {
	StepID     int
	Name       string
	Compliance float64
}

// UnitDetail is the detail block of one unit in a report. Rows holds at most the
// last ten days; Totals is computed over the full dataset.
type UnitDetail struct {
	Unit      Unit
	Rows      []DailyRecord
	Totals    PeriodSummary
	TotalDays int
}

// ReportDocument is an assembled report ready for pagination and rendering.
type ReportDocument struct {
	ID             string
	UnitLabel      string
	Kind           ReportKind
	Summary        PeriodSummary
	StepBreakdown  []StepRow
	Details        []UnitDetail
	Trend          []DailyRecord
	DateRangeLabel string
	GeneratedAt    time.Time
}

// Empty reports whether the document has no detail rows at all.
func (d *ReportDocument) Empty() bool {
	for _, u := range d.Details {
		if len(u.Rows) > 0 {
			return false
		}
	}
	return true
}

// ExportRecord is the export log entry for a written report file.
type ExportRecord struct {
	ID             string
	GeneratedAt    time.Time
	Path           string
	Format         string
	UnitLabel      string
	Kind           string
	DateRangeLabel string
	TotalAttempts  int
	TotalSuccesses int
	SuccessRate    float64
	Pages          int
}

// ExportFile is a report file found in the export directory.
type ExportFile struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}
