package gamification

import (
	"testing"
	"time"

	"github.com/studyloop/backend/internal/models"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestAdvanceStreak(t *testing.T) {
	today := date(2026, 3, 15)

	tests := []struct {
		name       string
		streak     int
		lastActive *time.Time
		want       models.StreakUpdateResult
	}{
		{"first ever activity", 0, nil, models.StreakUpdateResult{Streak: 1}},
		{"same day is a no-op", 4, datePtr(2026, 3, 15), models.StreakUpdateResult{Streak: 4}},
		{"consecutive day increments", 4, datePtr(2026, 3, 14), models.StreakUpdateResult{Streak: 5}},
		{"two day gap resets", 4, datePtr(2026, 3, 13), models.StreakUpdateResult{Streak: 1, WasReset: true}},
		{"long gap resets", 30, datePtr(2026, 1, 1), models.StreakUpdateResult{Streak: 1, WasReset: true}},
		{"reset from one is still flagged", 1, datePtr(2026, 3, 1), models.StreakUpdateResult{Streak: 1, WasReset: true}},
	}

	for _, tt := range tests {
		got := AdvanceStreak(tt.streak, tt.lastActive, today)
		if got != tt.want {
			t.Errorf("%s: AdvanceStreak(%d, %v, today) = %+v, want %+v", tt.name, tt.streak, tt.lastActive, got, tt.want)
		}
	}
}

func TestAdvanceStreakIdempotentWithinDay(t *testing.T) {
	today := date(2026, 3, 15)
	last := datePtr(2026, 3, 14)

	first := AdvanceStreak(3, last, today)
	if first.Streak != 4 || first.WasReset {
		t.Fatalf("first advance = %+v, want streak 4", first)
	}

	// A second trigger on the same day sees today's date persisted
	second := AdvanceStreak(first.Streak, &today, today)
	if second.Streak != 4 || second.WasReset {
		t.Errorf("second advance same day = %+v, want unchanged streak 4", second)
	}
}

func TestBuildStreakCalendar(t *testing.T) {
	today := date(2026, 3, 15) // a Sunday
	last := datePtr(2026, 3, 15)

	days := BuildStreakCalendar(3, last, today)
	if len(days) != 7 {
		t.Fatalf("calendar has %d days, want 7", len(days))
	}

	// Oldest first, ending today
	if days[0].Date != "2026-03-09" {
		t.Errorf("first day = %q, want 2026-03-09", days[0].Date)
	}
	if days[6].Date != "2026-03-15" {
		t.Errorf("last day = %q, want 2026-03-15", days[6].Date)
	}

	// Streak of 3 ending today marks the last three days active
	wantActive := []bool{false, false, false, false, true, true, true}
	for i, day := range days {
		if day.IsActive != wantActive[i] {
			t.Errorf("day %d (%s) active = %v, want %v", i, day.Date, day.IsActive, wantActive[i])
		}
	}

	if days[6].DayOfWeek != "Sun" {
		t.Errorf("today's weekday = %q, want Sun", days[6].DayOfWeek)
	}
}

func TestBuildStreakCalendarNoActivity(t *testing.T) {
	today := date(2026, 3, 15)
	days := BuildStreakCalendar(0, nil, today)
	for i, day := range days {
		if day.IsActive {
			t.Errorf("day %d active with no streak and no last activity", i)
		}
	}
}

func TestBuildStreakCalendarAtRiskDay(t *testing.T) {
	// Streak alive but not yet checked in today: the window still
	// counts back from today, so today itself lights up and the day
	// exactly streak days back does not.
	today := date(2026, 3, 15)
	last := datePtr(2026, 3, 14)

	days := BuildStreakCalendar(5, last, today)
	wantActive := map[string]bool{
		"2026-03-11": true,
		"2026-03-12": true,
		"2026-03-13": true,
		"2026-03-14": true,
		"2026-03-15": true,
	}
	for _, day := range days {
		if day.IsActive != wantActive[day.Date] {
			t.Errorf("day %s active = %v, want %v", day.Date, day.IsActive, wantActive[day.Date])
		}
	}
}

func TestBuildStreakCalendarStaleStreak(t *testing.T) {
	// A lapsed streak: the window back from today still applies, and
	// the last active date is marked even when it falls outside it.
	today := date(2026, 3, 15)
	last := datePtr(2026, 3, 10)

	days := BuildStreakCalendar(5, last, today)
	wantActive := map[string]bool{
		"2026-03-10": true,
		"2026-03-11": true,
		"2026-03-12": true,
		"2026-03-13": true,
		"2026-03-14": true,
		"2026-03-15": true,
	}
	for _, day := range days {
		if day.IsActive != wantActive[day.Date] {
			t.Errorf("day %s active = %v, want %v", day.Date, day.IsActive, wantActive[day.Date])
		}
	}
}

func TestStreakAtRisk(t *testing.T) {
	today := date(2026, 3, 15)

	tests := []struct {
		name       string
		streak     int
		lastActive *time.Time
		want       bool
	}{
		{"active yesterday", 5, datePtr(2026, 3, 14), true},
		{"active today", 5, datePtr(2026, 3, 15), false},
		{"already lapsed", 5, datePtr(2026, 3, 12), false},
		{"no streak", 0, datePtr(2026, 3, 14), false},
		{"never active", 0, nil, false},
	}

	for _, tt := range tests {
		if got := StreakAtRisk(tt.streak, tt.lastActive, today); got != tt.want {
			t.Errorf("%s: StreakAtRisk(%d, %v, today) = %v, want %v", tt.name, tt.streak, tt.lastActive, got, tt.want)
		}
	}
}
