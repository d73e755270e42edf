package compliance

import (
	"errors"
	"fmt"
	"time"

	"github.com/cysce/handwash-dashboard-tui/internal/models"
)

// ErrInvalidRange is returned for a quick range other than 7, 30 or 90 days.
var ErrInvalidRange = errors.New("invalid range")

// ResolveWindow turns a filter into an inclusive calendar window ending no
// later than today. Reversed explicit bounds are swapped. A single explicit
// bound is paired with today (end) or with itself (start).
func ResolveWindow(f models.Filter, today time.Time) (models.Window, error) {
	today = Day(today)

	if !f.Explicit() {
		if !f.Range.Valid() {
			return models.Window{}, fmt.Errorf("%w: %d days", ErrInvalidRange, int(f.Range))
		}
		return models.Window{
			Start: today.AddDate(0, 0, -(f.Range.Days() - 1)),
			End:   today,
		}, nil
	}

	start, end := Day(f.Start), Day(f.End)
	switch {
	case f.Start.IsZero():
		start = end
	case f.End.IsZero():
		end = today
	}
	if end.Before(start) {
		start, end = end, start
	}
	if end.After(today) {
		end = today
	}
	if start.After(end) {
		start = end
	}
	return models.Window{Start: start, End: end}, nil
}

// ValidateFilter checks the unit and report kind ids of a filter.
func ValidateFilter(f models.Filter) error {
	if _, err := models.LookupUnit(f.Unit); err != nil {
		return err
	}
	if f.Kind == "" {
		return nil
	}
	if _, err := models.LookupReportKind(f.Kind); err != nil {
		return err
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(models.DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}
