package timeutil

import (
	"time"
)

const DateLayout = "2006-01-02"

// ===================== now =====================

// NowUTC returns the current time in UTC truncated to whole seconds, which is
// the precision of the report table's datetime columns.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// ===================== windows =====================

// Range is an inclusive [Start, End] window; End is the last second of the window.
type Range struct {
	Start time.Time
	End   time.Time
}

// DayStart returns 00:00:00 UTC of t's calendar day.
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayRange covers t's UTC day, 00:00:00 to 23:59:59.
func DayRange(t time.Time) Range {
	start := DayStart(t)
	return Range{Start: start, End: start.AddDate(0, 0, 1).Add(-time.Second)}
}

// WeekRange covers the ISO week containing t, Monday 00:00:00 to Sunday 23:59:59.
func WeekRange(t time.Time) Range {
	day := DayStart(t)
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	return Range{Start: start, End: start.AddDate(0, 0, 7).Add(-time.Second)}
}

// MonthRange covers t's calendar month.
func MonthRange(t time.Time) Range {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Range{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Second)}
}

// DateSpan covers whole days from..to inclusive.
func DateSpan(from, to time.Time) Range {
	return Range{Start: DayStart(from), End: DayRange(to).End}
}

// ===================== format / parse =====================

// FormatISO8601 formats as RFC3339 in UTC (2025-10-03T06:45:21Z).
func FormatISO8601(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatDate formats as YYYY-MM-DD in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ChartLabel is the short day label used by the dashboard series ("Jan 02").
func ChartLabel(t time.Time) string {
	return t.UTC().Format("Jan 02")
}

// ParseDate parses YYYY-MM-DD as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
