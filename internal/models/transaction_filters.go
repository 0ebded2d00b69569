package models

import "time"

// DateRange is an inclusive window over Transaction.Date
type DateRange struct {
	From time.Time
	To   time.Time
}

// Days returns the length of the window in whole days
func (r DateRange) Days() int {
	return int(r.To.Sub(r.From).Hours() / 24)
}

// StartOfDay truncates t to midnight UTC
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the last nanosecond of t's UTC day
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Nanosecond)
}

// MonthBounds returns the first and last instant of t's UTC month
func MonthBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
}
