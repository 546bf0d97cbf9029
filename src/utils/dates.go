package utils

import (
	"fmt"
	"time"
)

const ShortDashDateLayout = "2006-01-02"

// ParseDate parses a calendar date in the wire format used across every
// storage and API boundary. Dates travel as plain strings; time.Time values
// never cross a network boundary.
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(ShortDashDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return date, nil
}

// FormatDate renders a date in the wire format, dropping any time component.
func FormatDate(date time.Time) string {
	return date.Format(ShortDashDateLayout)
}

// Today returns the current calendar date truncated to midnight UTC, so that
// "as of today" comparisons line up with date-only observations.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
