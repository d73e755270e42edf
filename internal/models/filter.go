package models

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnitNotFound is returned for an unknown unit id.
	ErrUnitNotFound = errors.New("unit not found")
	// ErrReportKindNotFound is returned for an unknown report kind id.
	ErrReportKindNotFound = errors.New("report kind not found")
)

// TimeRange is a quick-range selection in days.
type TimeRange int

const (
	TimeRange7Days  TimeRange = 7
	TimeRange30Days TimeRange = 30
	TimeRange90Days TimeRange = 90
)

// QuickRanges lists the selectable quick ranges in display order.
var QuickRanges = []TimeRange{TimeRange7Days, TimeRange30Days, TimeRange90Days}

// String returns the display name for a time range.
func (t TimeRange) String() string {
	switch t {
	case TimeRange7Days:
		return "7 Days"
	case TimeRange30Days:
		return "30 Days"
	case TimeRange90Days:
		return "90 Days"
	default:
		return "Unknown"
	}
}

// Days returns the number of days covered.
func (t TimeRange) Days() int {
	return int(t)
}

// Valid reports whether t is one of the quick ranges.
func (t TimeRange) Valid() bool {
	for _, r := range QuickRanges {
		if r == t {
			return true
		}
	}
	return false
}

// Next cycles to the next quick range.
func (t TimeRange) Next() TimeRange {
	for i, r := range QuickRanges {
		if r == t {
			return QuickRanges[(i+1)%len(QuickRanges)]
		}
	}
	return TimeRange30Days
}

// Unit is a hospital unit that reports wash activity.
type Unit struct {
	ID   string
	Name string
}

// UnitAll is the id that expands to every concrete unit.
const UnitAll = "all"

// Units lists the selectable units, "all" first.
var Units = []Unit{
	{ID: UnitAll, Name: "All Units"},
	{ID: "icu", Name: "ICU"},
	{ID: "emergency", Name: "Emergency"},
	{ID: "surgery", Name: "Operating Room"},
	{ID: "pediatrics", Name: "Pediatrics"},
	{ID: "inpatient", Name: "Inpatient"},
}

// LookupUnit returns the unit with the given id.
func LookupUnit(id string) (Unit, error) {
	for _, u := range Units {
		if u.ID == id {
			return u, nil
		}
	}
	return Unit{}, fmt.Errorf("%w: %q", ErrUnitNotFound, id)
}

// ExpandUnit returns the concrete units a selection covers.
func ExpandUnit(id string) ([]Unit, error) {
	u, err := LookupUnit(id)
	if err != nil {
		return nil, err
	}
	if u.ID != UnitAll {
		return []Unit{u}, nil
	}
	return append([]Unit(nil), Units[1:]...), nil
}

// ReportKind identifies the layout of a generated report.
type ReportKind struct {
	ID          string
	Name        string
	Description string
}

// Report kind ids.
const (
	ReportGeneral     = "general"
	ReportCompliance  = "compliance"
	ReportSteps       = "steps"
	ReportComparative = "comparative"
)

// ReportKinds lists the available report kinds.
var ReportKinds = []ReportKind{
	{ID: ReportGeneral, Name: "General Report", Description: "Full summary of every metric"},
	{ID: ReportCompliance, Name: "Compliance", Description: "Focused on compliance rates"},
	{ID: ReportSteps, Name: "By Step", Description: "Detailed analysis of each step"},
	{ID: ReportComparative, Name: "Comparative", Description: "Comparison between units"},
}

// LookupReportKind returns the report kind with the given id.
func LookupReportKind(id string) (ReportKind, error) {
	for _, k := range ReportKinds {
		if k.ID == id {
			return k, nil
		}
	}
	return ReportKind{}, fmt.Errorf("%w: %q", ErrReportKindNotFound, id)
}

// Filter is the immutable set of options a view or report is computed from.
// When Start and End are both zero the quick Range applies.
type Filter struct {
	Range TimeRange
	Start time.Time
	End   time.Time
	Unit  string
	Kind  string
}

// DefaultFilter returns the filter the reports view starts with.
func DefaultFilter() Filter {
	return Filter{Range: TimeRange30Days, Unit: UnitAll, Kind: ReportGeneral}
}

// Explicit reports whether the filter uses explicit bounds.
func (f Filter) Explicit() bool {
	return !f.Start.IsZero() || !f.End.IsZero()
}

// Window is a resolved, inclusive calendar-day range.
type Window struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of calendar days in the window.
func (w Window) Days() int {
	if w.End.Before(w.Start) {
		return 0
	}
	return int(w.End.Sub(w.Start).Hours()/24+0.5) + 1
}

// Previous returns the immediately preceding window of equal length.
func (w Window) Previous() Window {
	n := w.Days()
	return Window{
		Start: w.Start.AddDate(0, 0, -n),
		End:   w.Start.AddDate(0, 0, -1),
	}
}

// Label renders the window as "start - end".
func (w Window) Label() string {
	return w.Start.Format("02/01/2006") + " - " + w.End.Format("02/01/2006")
}
