package gamification

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSameDay(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want bool
	}{
		{"identical", date(2026, 3, 15), date(2026, 3, 15), true},
		{"same day different hours", time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC), time.Date(2026, 3, 15, 0, 1, 0, 0, time.UTC), true},
		{"adjacent days 90 seconds apart", time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC), time.Date(2026, 3, 16, 0, 0, 30, 0, time.UTC), false},
		{"same day-of-month different month", date(2026, 3, 15), date(2026, 4, 15), false},
		{"same date different year", date(2025, 3, 15), date(2026, 3, 15), false},
	}

	for _, tt := range tests {
		if got := SameDay(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: SameDay(%v, %v) = %v, want %v", tt.name, tt.a, tt.b, got, tt.want)
		}
	}
}

func TestIsYesterday(t *testing.T) {
	tests := []struct {
		name      string
		candidate time.Time
		reference time.Time
		want      bool
	}{
		{"plain yesterday", date(2026, 3, 14), date(2026, 3, 15), true},
		{"same day", date(2026, 3, 15), date(2026, 3, 15), false},
		{"two days ago", date(2026, 3, 13), date(2026, 3, 15), false},
		{"across month boundary", date(2026, 2, 28), date(2026, 3, 1), true},
		{"across year boundary", date(2025, 12, 31), date(2026, 1, 1), true},
		{"leap day", date(2024, 2, 29), date(2024, 3, 1), true},
		{"tomorrow is not yesterday", date(2026, 3, 16), date(2026, 3, 15), false},
	}

	for _, tt := range tests {
		if got := IsYesterday(tt.candidate, tt.reference); got != tt.want {
			t.Errorf("%s: IsYesterday(%v, %v) = %v, want %v", tt.name, tt.candidate, tt.reference, got, tt.want)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		from, to time.Time
		want     int
	}{
		{"same day", date(2026, 3, 15), date(2026, 3, 15), 0},
		{"one day", date(2026, 3, 14), date(2026, 3, 15), 1},
		{"one week", date(2026, 3, 8), date(2026, 3, 15), 7},
		{"across month", date(2026, 2, 27), date(2026, 3, 2), 3},
		{"reversed is negative", date(2026, 3, 15), date(2026, 3, 14), -1},
		{"ignores time of day", time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC), time.Date(2026, 3, 15, 0, 1, 0, 0, time.UTC), 1},
	}

	for _, tt := range tests {
		if got := DaysBetween(tt.from, tt.to); got != tt.want {
			t.Errorf("%s: DaysBetween(%v, %v) = %d, want %d", tt.name, tt.from, tt.to, got, tt.want)
		}
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2026, 3, 15, 18, 42, 7, 123, time.UTC)
	got := DateOnly(in)
	want := date(2026, 3, 15)
	if !got.Equal(want) {
		t.Errorf("DateOnly(%v) = %v, want %v", in, got, want)
	}

	// Non-UTC input normalizes to the UTC calendar day
	loc := time.FixedZone("UTC+5", 5*3600)
	in = time.Date(2026, 3, 15, 2, 0, 0, 0, loc) // 2026-03-14 21:00 UTC
	got = DateOnly(in)
	want = date(2026, 3, 14)
	if !got.Equal(want) {
		t.Errorf("DateOnly(%v) = %v, want %v", in, got, want)
	}
}
