package gamification

import (
	"time"

	"github.com/studyloop/backend/internal/models"
)

// AdvanceStreak classifies one check-in against the user's prior state
// and returns the resulting streak. It is a pure function; the store
// applies its output atomically.
//
//   - no prior activity        → streak 1
//   - last active today        → unchanged (same-day check-ins are no-ops)
//   - last active yesterday    → streak + 1
//   - last active 2+ days ago  → reset to 1, WasReset set
func AdvanceStreak(streak int, lastActive *time.Time, today time.Time) models.StreakUpdateResult {
	switch {
	case lastActive == nil:
		return models.StreakUpdateResult{Streak: 1}
	case SameDay(*lastActive, today):
		return models.StreakUpdateResult{Streak: streak}
	case IsYesterday(*lastActive, today):
		return models.StreakUpdateResult{Streak: streak + 1}
	default:
		return models.StreakUpdateResult{Streak: 1, WasReset: true}
	}
}

// BuildStreakCalendar returns the 7 calendar days ending today, oldest
// first. A day is active when its distance from today is strictly less
// than the streak length, or when it equals the last active date.
func BuildStreakCalendar(streak int, lastActive *time.Time, today time.Time) []models.StreakDay {
	calendar := make([]models.StreakDay, 0, 7)
	for i := 6; i >= 0; i-- {
		date := DateOnly(today).AddDate(0, 0, -i)

		active := false
		if lastActive != nil {
			if DaysBetween(date, today) < streak {
				active = true
			} else if SameDay(date, *lastActive) {
				active = true
			}
		}

		calendar = append(calendar, models.StreakDay{
			Date:      date.Format("2006-01-02"),
			IsActive:  active,
			DayOfWeek: date.Format("Mon"),
		})
	}
	return calendar
}

// StreakAtRisk reports whether the user has a live streak that lapses
// unless they act today: last activity was exactly yesterday. False once
// today's activity has been recorded.
func StreakAtRisk(streak int, lastActive *time.Time, today time.Time) bool {
	return lastActive != nil && streak > 0 && IsYesterday(*lastActive, today)
}
