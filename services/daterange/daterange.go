// Package daterange implements the inclusive day-count and closed-interval
// overlap rules the booking calendar is built on. Both rental days and
// availability conflicts count the first day, so a same-day rental is one
// billable day and ranges touching on a boundary day do overlap.
package daterange

import (
	"time"

	"rental-booking/apperrors"
)

// truncateToDay drops the time-of-day component so arithmetic works on day
// boundaries regardless of how the timestamps were parsed.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// InclusiveDays returns the number of billable days in [start, end], counting
// both endpoints: InclusiveDays(D, D) == 1. Returns ErrInvalidDateRange when
// end falls before start.
func InclusiveDays(start, end time.Time) (int, error) {
	s := truncateToDay(start)
	e := truncateToDay(end)

	days := int(e.Sub(s).Hours()/24) + 1
	if days < 1 {
		return 0, apperrors.ErrInvalidDateRange
	}
	return days, nil
}

// Overlaps reports whether the closed intervals [s1, e1] and [s2, e2] share
// at least one day: s1 <= e2 && e1 >= s2.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	a1, b1 := truncateToDay(s1), truncateToDay(e1)
	a2, b2 := truncateToDay(s2), truncateToDay(e2)
	return !a1.After(b2) && !b1.Before(a2)
}
