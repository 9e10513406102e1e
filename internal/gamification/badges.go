package gamification

import (
	"math"

	"github.com/studyloop/backend/internal/models"
)

// BadgeSatisfied evaluates a badge definition's structured requirement
// against a stats snapshot. Social badges carry no predicate and are
// never auto-awarded.
func BadgeSatisfied(def models.BadgeDefinition, stats models.UserStats) bool {
	switch def.Category {
	case models.BadgeCategoryUpload:
		return stats.UploadCount >= def.RequirementThreshold
	case models.BadgeCategoryQuiz:
		switch def.RequirementKind {
		case models.RequirementFirstQuiz:
			return stats.TotalQuizCount >= 1
		case models.RequirementPerfectCount:
			return stats.PerfectQuizCount >= def.RequirementThreshold
		}
		return false
	case models.BadgeCategoryStreak:
		return stats.CurrentStreak >= def.RequirementThreshold
	case models.BadgeCategoryAchievement:
		return stats.Level >= def.RequirementThreshold
	default:
		return false
	}
}

// badgeCurrentValue returns the stat a badge measures, for progress
// reporting.
func badgeCurrentValue(def models.BadgeDefinition, stats models.UserStats) int {
	switch def.Category {
	case models.BadgeCategoryUpload:
		return stats.UploadCount
	case models.BadgeCategoryQuiz:
		if def.RequirementKind == models.RequirementFirstQuiz {
			return stats.TotalQuizCount
		}
		return stats.PerfectQuizCount
	case models.BadgeCategoryStreak:
		return stats.CurrentStreak
	case models.BadgeCategoryAchievement:
		return stats.Level
	default:
		return 0
	}
}

// BadgeProgress returns (progress, percentage) toward a badge. Progress
// is capped at the threshold; earned badges always report 100%.
func BadgeProgress(def models.BadgeDefinition, stats models.UserStats, earned bool) (int, int) {
	threshold := def.RequirementThreshold
	if def.RequirementKind == models.RequirementFirstQuiz {
		threshold = 1
	}
	if earned {
		return threshold, 100
	}
	if threshold <= 0 {
		return 0, 0
	}

	progress := badgeCurrentValue(def, stats)
	if progress > threshold {
		progress = threshold
	}
	pct := int(math.Round(float64(progress) / float64(threshold) * 100))
	return progress, pct
}
