// Package models defines data structures and domain types.
package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day format used for filters and exports.
const DateLayout = "2006-01-02"

// DailyRecord is one synthetic day of wash activity for a unit.
type DailyRecord struct {
	Date           time.Time
	Attempts       int
	Successes      int
	ComplianceRate float64 // Successes / Attempts × 100
}

// Label returns the short day/month label used in tables and chart axes.
func (d DailyRecord) Label() string {
	return fmt.Sprintf("%d/%d", d.Date.Day(), int(d.Date.Month()))
}

// StepProfile describes one of the six tracked wash-technique steps.
type StepProfile struct {
	ID             int
	Name           string
	MeanCompliance float64
	StdDeviation   float64
}

// Upper returns the +1σ reference value.
func (p StepProfile) Upper() float64 {
	return p.MeanCompliance + p.StdDeviation
}

// Lower returns the -1σ reference value.
func (p StepProfile) Lower() float64 {
	return p.MeanCompliance - p.StdDeviation
}

// StepRecord is one synthetic day for a single step, with reference lines.
type StepRecord struct {
	Date       time.Time
	Compliance float64
	Attempts   int
	Successes  int
	Mean       float64
	Upper      float64
	Lower      float64
}

// Label returns the short day/month label.
func (s StepRecord) Label() string {
	return fmt.Sprintf("%d/%d", s.Date.Day(), int(s.Date.Month()))
}

// PeriodSummary is the reduction of a list of records over a window.
type PeriodSummary struct {
	TotalAttempts  int
	TotalSuccesses int
	SuccessRate    float64 // percentage, 0 when TotalAttempts is 0
	Mean           float64 // mean of per-day compliance
	StdDeviation   float64 // population standard deviation of per-day compliance
	Days           int
	UnitCount      int
}

// RateLabel formats the success rate with the canonical one-decimal precision.
func (p PeriodSummary) RateLabel() string {
	return FormatPercent(p.SuccessRate)
}

// PeriodComparison holds the change between a window and the one before it.
type PeriodComparison struct {
	Current          PeriodSummary
	Previous         PeriodSummary
	AttemptsChange   float64 // percent
	SuccessesChange  float64 // percent
	SuccessRateDelta float64 // percentage points
}

// FormatPercent renders a percentage with one decimal place.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// FormatChange renders a signed change with one decimal place.
func FormatChange(v float64) string {
	return fmt.Sprintf("%+.1f%%", v)
}

// WashStatus is the outcome of a single observed wash.
type WashStatus string

const (
	WashSuccess WashStatus = "success"
	WashInvalid WashStatus = "invalid"
)

// WashEvent is one entry in the recent washes list.
type WashEvent struct {
	ID         string
	Unit       string
	Compliance int
	Duration   time.Duration
	Timestamp  time.Time
	Status     WashStatus
}

// Band returns the compliance band used to color a wash: invalid, high, medium or low.
func (w WashEvent) Band() string {
	switch {
	case w.Status == WashInvalid:
		return "invalid"
	case w.Compliance >= 95:
		return "high"
	case w.Compliance >= 85:
		return "medium"
	default:
		return "low"
	}
}

// QualityAlert is one category of quality events shown on the dashboard.
type QualityAlert struct {
	Kind     string
	Count    int
	Percent  float64
	Critical bool
}

// QualityAlerts is the static alert catalog displayed on the dashboard.
var QualityAlerts = []QualityAlert{
	{Kind: "Invalid wash", Count: 8, Percent: 3.2, Critical: true},
	{Kind: "Out of frame", Count: 5, Percent: 2.0},
	{Kind: "Unusual object", Count: 2, Percent: 0.8},
	{Kind: "Space invasion", Count: 1, Percent: 0.4},
	{Kind: "Incomplete technique", Count: 6, Percent: 2.4, Critical: true},
	{Kind: "No detection", Count: 3, Percent: 1.2},
}

// AverageWashTime is the baseline average wash duration shown on stat cards.
const AverageWashTime = 28 * time.Second
