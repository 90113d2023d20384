package attendance

import (
	"time"

	"github.com/clubops/backend/internal/domain/shared"
)

// DayWindow is the closed interval covering one calendar day in a fixed
// timezone. Matching is inclusive on both ends everywhere; the canonical
// stored date of a record is Start.
type DayWindow struct {
	Start time.Time
	End   time.Time
}

// NewDayWindow normalizes an instant to the day window containing it,
// evaluated in the given location. The location pins the day boundary so
// records cannot silently shift days across deployments.
func NewDayWindow(at time.Time, loc *time.Location) DayWindow {
	if loc == nil {
		loc = time.UTC
	}
	local := at.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return DayWindow{
		Start: start,
		End:   start.AddDate(0, 0, 1).Add(-time.Nanosecond),
	}
}

// RangeWindow builds the inclusive window spanning two calendar days.
// It fails when the end day precedes the start day.
func RangeWindow(start, end time.Time, loc *time.Location) (DayWindow, error) {
	first := NewDayWindow(start, loc)
	last := NewDayWindow(end, loc)
	if last.Start.Before(first.Start) {
		return DayWindow{}, shared.NewDomainError("INVALID_DATE_RANGE", "End date cannot be before start date")
	}
	return DayWindow{Start: first.Start, End: last.End}, nil
}

// MonthWindow builds the window covering one calendar month
func MonthWindow(year, month int, loc *time.Location) (DayWindow, error) {
	if month < 1 || month > 12 {
		return DayWindow{}, shared.NewDomainError("INVALID_MONTH", "Month must be between 1 and 12")
	}
	if year < 1 {
		return DayWindow{}, shared.NewDomainError("INVALID_YEAR", "Year is required")
	}
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	return DayWindow{
		Start: start,
		End:   start.AddDate(0, 1, 0).Add(-time.Nanosecond),
	}, nil
}

// Contains reports whether the instant falls inside the window
func (w DayWindow) Contains(at time.Time) bool {
	return !at.Before(w.Start) && !at.After(w.End)
}

// ISODay returns the window's start day formatted as YYYY-MM-DD
func (w DayWindow) ISODay() string {
	return w.Start.Format("2006-01-02")
}
