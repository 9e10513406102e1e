package gamification

import "time"

// All streak and daily-login math works on UTC calendar days. The app
// has no per-user timezone, so the server's day boundary is fixed at
// UTC midnight for every user.

// DateOnly truncates t to its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// IsYesterday reports whether candidate falls on the calendar day
// immediately before reference.
func IsYesterday(candidate, reference time.Time) bool {
	return SameDay(candidate, DateOnly(reference).AddDate(0, 0, -1))
}

// DaysBetween returns the number of whole calendar days from from to to.
// Negative when from is after to.
func DaysBetween(from, to time.Time) int {
	return int(DateOnly(to).Sub(DateOnly(from)).Hours() / 24)
}
