// file: internals/features/finance/fees/calendar/calendar.go
//
// Calendar policy for club sessions. Sessions run every Saturday at 20:00
// local time; a billing month covers either 4 or 5 Saturdays and nothing
// else (no proration).
package calendar

import "time"

const (
	// SessionWeekday is the fixed club session day.
	SessionWeekday = time.Saturday

	// SessionHour is the local start hour of a session (20:00).
	SessionHour = 20
)

// WeeksInMonth counts the Saturdays inside the given month by scanning
// forward from the 1st. The result is always 4 or 5; days/7 approximations
// are wrong for months whose weekday layout packs an extra Saturday.
func WeeksInMonth(year int, month time.Month) int {
	loc := time.Local
	n := 0
	for d := time.Date(year, month, 1, 0, 0, 0, 0, loc); d.Month() == month; d = d.AddDate(0, 0, 1) {
		if d.Weekday() == SessionWeekday {
			n++
		}
	}
	return n
}

// SessionDatesInMonth returns every Saturday of the month, in order, each
// normalized to the 20:00 session time.
func SessionDatesInMonth(year int, month time.Month) []time.Time {
	loc := time.Local
	var out []time.Time
	for d := time.Date(year, month, 1, 0, 0, 0, 0, loc); d.Month() == month; d = d.AddDate(0, 0, 1) {
		if d.Weekday() == SessionWeekday {
			out = append(out, time.Date(d.Year(), d.Month(), d.Day(), SessionHour, 0, 0, 0, loc))
		}
	}
	return out
}

// NextSessionDate returns the soonest session at or after from. A Saturday
// past 20:00 already belongs to the running session, so it rolls to the
// following week.
func NextSessionDate(from time.Time) time.Time {
	d := time.Date(from.Year(), from.Month(), from.Day(), SessionHour, 0, 0, 0, from.Location())
	for d.Weekday() != SessionWeekday || d.Before(from) {
		d = d.AddDate(0, 0, 1)
		d = time.Date(d.Year(), d.Month(), d.Day(), SessionHour, 0, 0, 0, d.Location())
	}
	return d
}

// MonthRange returns the half-open interval [first day of t's month,
// first day of the next month) used by billing-month queries.
func MonthRange(t time.Time) (from, to time.Time) {
	from = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	to = from.AddDate(0, 1, 0)
	return from, to
}
