package kernel

import "time"

// businessDayOffset is subtracted from a timestamp before taking its
// calendar date. The business operates past midnight; without the rewind
// a single operating night would split into two reporting days.
const businessDayOffset = 4 * time.Hour

// BusinessDate maps a timestamp to the business date it belongs to,
// returned as midnight of that date in the timestamp's location.
//
// A timestamp of 02:00 maps to the previous calendar date; 05:00 starts
// a new business date.
func BusinessDate(t time.Time) time.Time {
	shifted := t.Add(-businessDayOffset)
	return time.Date(shifted.Year(), shifted.Month(), shifted.Day(), 0, 0, 0, 0, shifted.Location())
}

// SameBusinessDay reports whether two timestamps fall on the same
// business date. Used for slot exclusivity, "completed today" statistics
// and session freshness checks.
func SameBusinessDay(a, b time.Time) bool {
	return BusinessDate(a).Equal(BusinessDate(b.In(a.Location())))
}
