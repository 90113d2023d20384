package handler

import (
	"errors"
	"time"
)

// parseDateRange parses start/end YYYY-MM-DD strings and validates ordering
func parseDateRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("Invalid start date, expected YYYY-MM-DD")
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("Invalid end date, expected YYYY-MM-DD")
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, errors.New("End date must not precede start date")
	}
	return startDate, endDate, nil
}
