package schedule

import (
	"time"
)

// DayMillis is the chart's time quantum: one calendar day in milliseconds.
const DayMillis int64 = 86_400_000

// dayLayouts are the accepted date formats, tried in order.
var dayLayouts = []string{
	"2006-01-02",  // ISO date (storage format)
	"2 Jan 2006",  // e.g., 30 Oct 2025
	time.RFC3339,  // full RFC3339
	"02 Jan 2006", // zero-padded day
	"2006-01-02 15:04:05",
	"01-02-06", // Excel default short date
}

// ParseDay parses a calendar date and truncates it to day granularity
// (UTC midnight), so all day arithmetic is free of partial-day rounding.
func ParseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// FormatDay renders a day-granular date back to the storage format.
func FormatDay(t time.Time) string {
	return t.Format("2006-01-02")
}

// PlannedFinish returns the last scheduled day of a task: start plus
// duration-1 days. A one-day task finishes the day it starts.
func PlannedFinish(start time.Time, duration int) time.Time {
	return start.AddDate(0, 0, duration-1)
}

// dayMillis places a day-granular date on the chart's millisecond axis.
func dayMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// daysBetween returns the signed whole-day distance from a to b.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
