package calendar

import (
	"testing"
	"time"
)

func TestWeeksInMonthKnownMonths(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.October, 4},  // Saturdays: 4, 11, 18, 25
		{2025, time.November, 5}, // Saturdays: 1, 8, 15, 22, 29
		{2026, time.February, 4},
		{2026, time.August, 5},
		{2024, time.June, 5},
	}
	for _, tc := range cases {
		if got := WeeksInMonth(tc.year, tc.month); got != tc.want {
			t.Errorf("WeeksInMonth(%d, %s) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestWeeksInMonthAlwaysFourOrFive(t *testing.T) {
	for year := 2020; year <= 2030; year++ {
		for m := time.January; m <= time.December; m++ {
			got := WeeksInMonth(year, m)
			if got != 4 && got != 5 {
				t.Fatalf("WeeksInMonth(%d, %s) = %d, want 4 or 5", year, m, got)
			}
		}
	}
}

func TestSessionDatesInMonth(t *testing.T) {
	dates := SessionDatesInMonth(2025, time.October)
	if len(dates) != 4 {
		t.Fatalf("got %d session dates, want 4", len(dates))
	}
	wantDays := []int{4, 11, 18, 25}
	for i, d := range dates {
		if d.Weekday() != time.Saturday {
			t.Errorf("date %d: weekday = %s, want Saturday", i, d.Weekday())
		}
		if d.Hour() != SessionHour || d.Minute() != 0 {
			t.Errorf("date %d: time = %02d:%02d, want %02d:00", i, d.Hour(), d.Minute(), SessionHour)
		}
		if d.Day() != wantDays[i] {
			t.Errorf("date %d: day = %d, want %d", i, d.Day(), wantDays[i])
		}
	}
}

func TestSessionDatesMatchWeekCount(t *testing.T) {
	for year := 2024; year <= 2026; year++ {
		for m := time.January; m <= time.December; m++ {
			if got, want := len(SessionDatesInMonth(year, m)), WeeksInMonth(year, m); got != want {
				t.Errorf("%d-%s: %d dates vs %d weeks", year, m, got, want)
			}
		}
	}
}

func TestNextSessionDate(t *testing.T) {
	loc := time.Local

	// Wednesday rolls to the coming Saturday.
	from := time.Date(2025, time.October, 1, 10, 0, 0, 0, loc)
	got := NextSessionDate(from)
	want := time.Date(2025, time.October, 4, SessionHour, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("from Wednesday: got %v, want %v", got, want)
	}

	// A Saturday before 20:00 is still that day's session.
	from = time.Date(2025, time.October, 4, 19, 59, 0, 0, loc)
	got = NextSessionDate(from)
	if !got.Equal(want) {
		t.Errorf("Saturday 19:59: got %v, want %v", got, want)
	}

	// Past 20:00 the session is running; roll a week.
	from = time.Date(2025, time.October, 4, 20, 1, 0, 0, loc)
	got = NextSessionDate(from)
	want = time.Date(2025, time.October, 11, SessionHour, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("Saturday 20:01: got %v, want %v", got, want)
	}
}

func TestMonthRange(t *testing.T) {
	from, to := MonthRange(time.Date(2025, time.October, 18, 20, 0, 0, 0, time.Local))
	if from.Day() != 1 || from.Month() != time.October || from.Hour() != 0 {
		t.Errorf("from = %v, want 2025-10-01 00:00", from)
	}
	if to.Day() != 1 || to.Month() != time.November {
		t.Errorf("to = %v, want 2025-11-01 00:00", to)
	}
	// December wraps the year.
	from, to = MonthRange(time.Date(2025, time.December, 31, 23, 0, 0, 0, time.Local))
	if to.Year() != 2026 || to.Month() != time.January {
		t.Errorf("december to = %v, want 2026-01-01", to)
	}
	_ = from
}
