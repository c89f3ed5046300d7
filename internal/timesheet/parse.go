package timesheet

import (
	"fmt"
	"time"
)

// Layouts for the naive local timestamps used throughout the API and the
// database. There is no timezone handling; all times are wall-clock local.
const (
	// LayoutMinute is the compact form the entry forms submit.
	LayoutMinute = "2006-01-02T15:04"
	// LayoutSecond is the stored and serialized form.
	LayoutSecond = "2006-01-02T15:04:05"
	// LayoutDate is the form used by list date-range filters.
	LayoutDate = "2006-01-02"
)

// ParseDateTime accepts 'YYYY-MM-DDTHH:MM' or 'YYYY-MM-DDTHH:MM:SS'.
func ParseDateTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(LayoutMinute, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(LayoutSecond, s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid datetime format, use 'YYYY-MM-DDTHH:MM'")
}

// ParseDate accepts 'YYYY-MM-DD'.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(LayoutDate, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, use 'YYYY-MM-DD'")
	}
	return t, nil
}
