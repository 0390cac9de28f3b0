// Package biztime provides utilities for billing time calculations.
// All storage, transport, and metering windows use UTC. Usage windows for
// recurring features are calendar months in UTC: a "monthly" counter spans
// from the first instant of the current UTC month to the first instant of
// the next one.
package biztime

import "time"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfMonthUTC returns the first instant of t's calendar month in UTC.
func StartOfMonthUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NextMonthStartUTC returns the first instant of the calendar month
// following t's month in UTC. This is the reset instant for monthly
// usage windows.
func NextMonthStartUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}

// MonthlyWindow returns the inclusive lower bound and the reset instant of
// the monthly usage window containing t.
func MonthlyWindow(t time.Time) (start, resetAt time.Time) {
	return StartOfMonthUTC(t), NextMonthStartUTC(t)
}
