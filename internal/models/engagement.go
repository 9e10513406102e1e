package models

import "time"

// ── Core Engagement Structs ───────────────────────────────

// UserProgress is the one-per-user engagement record. It is created at
// account creation and mutated only through the XP award and streak
// update operations.
type UserProgress struct {
	UserID         int64      `json:"user_id"`
	Points         int64      `json:"points"`
	Level          int        `json:"level"`
	Streak         int        `json:"streak"`
	LastActiveDate *time.Time `json:"last_active_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// StreakUpdateResult is the outcome of one streak check-in.
type StreakUpdateResult struct {
	Streak   int  `json:"streak"`
	WasReset bool `json:"was_reset"`
}

// AwardXPResult reports a completed XP award, including whether the
// delta crossed a level boundary.
type AwardXPResult struct {
	NewPoints int64 `json:"new_points"`
	OldLevel  int   `json:"old_level"`
	NewLevel  int   `json:"new_level"`
	LeveledUp bool  `json:"leveled_up"`
}

type XPEvent struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	EventType string    `json:"event_type"`
	XPAmount  int       `json:"xp_amount"`
	Metadata  string    `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ── Badges ────────────────────────────────────────────────

const (
	BadgeCategoryUpload      = "upload"
	BadgeCategoryQuiz        = "quiz"
	BadgeCategoryStreak      = "streak"
	BadgeCategoryAchievement = "achievement"
	BadgeCategorySocial      = "social"
)

// Requirement kinds. Each badge carries a structured requirement decided
// at authoring time instead of a free-text description parsed at
// evaluation time.
const (
	RequirementCount        = "count"
	RequirementFirstQuiz    = "first_quiz"
	RequirementPerfectCount = "perfect_count"
	RequirementStreakDays   = "streak_days"
	RequirementLevel        = "level"
	RequirementManual       = "manual"
)

// BadgeDefinition is static reference data seeded by migration.
type BadgeDefinition struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Description          string `json:"description"`
	Icon                 string `json:"icon"`
	Category             string `json:"category"`
	RequirementKind      string `json:"requirement_kind"`
	RequirementThreshold int    `json:"requirement_threshold"`
	RewardXP             int    `json:"reward_xp"`
	SortOrder            int    `json:"sort_order"`
}

// EarnedBadge is an append-only join row. At most one exists per
// (user, badge) pair; rows are never deleted or modified.
type EarnedBadge struct {
	UserID   int64     `json:"user_id"`
	BadgeID  string    `json:"badge_id"`
	EarnedAt time.Time `json:"earned_at"`
}

// UserStats is the ephemeral input vector to badge evaluation. It is
// computed on demand and never persisted.
type UserStats struct {
	UploadCount      int `json:"upload_count"`
	PerfectQuizCount int `json:"perfect_quiz_count"`
	TotalQuizCount   int `json:"total_quiz_count"`
	CurrentStreak    int `json:"current_streak"`
	Level            int `json:"level"`
}

// BadgeStatus is the UI-facing view of one badge: its definition plus
// the user's earned state and progress toward the threshold.
type BadgeStatus struct {
	BadgeDefinition
	Earned             bool       `json:"earned"`
	EarnedAt           *time.Time `json:"earned_at,omitempty"`
	Progress           int        `json:"progress"`
	ProgressPercentage int        `json:"progress_percentage"`
}

// ── Streak Views ──────────────────────────────────────────

// StreakDay is one cell of the 7-day streak calendar.
type StreakDay struct {
	Date      string `json:"date"`
	IsActive  bool   `json:"is_active"`
	DayOfWeek string `json:"day_of_week"`
}

type StreakStats struct {
	CurrentStreak int  `json:"current_streak"`
	LongestStreak int  `json:"longest_streak"`
	IsAtRisk      bool `json:"is_at_risk"`
}

// ── Notifications ─────────────────────────────────────────

const (
	NotificationXPAwarded   = "xp_awarded"
	NotificationLevelUp     = "level_up"
	NotificationBadgeEarned = "badge_earned"
)

// Notification is one celebratory event handed to the presentation
// layer. Multiple pending notifications are queued and shown one at a
// time, never simultaneously.
type Notification struct {
	Kind     string `json:"kind"`
	XPAmount int    `json:"xp_amount,omitempty"`
	OldLevel int    `json:"old_level,omitempty"`
	NewLevel int    `json:"new_level,omitempty"`
	BadgeID  string `json:"badge_id,omitempty"`
}

// ── Request / Response Types ──────────────────────────────

type QuizCompleteRequest struct {
	Score int `json:"score"`
}

type EngagementResponse struct {
	Points         int64      `json:"points"`
	Level          int        `json:"level"`
	LevelProgress  float64    `json:"level_progress"`
	XPToNextLevel  int64      `json:"xp_to_next_level"`
	Streak         int        `json:"streak"`
	LastActiveDate *time.Time `json:"last_active_date,omitempty"`
}

type TriggerResponse struct {
	Streak        *StreakUpdateResult `json:"streak,omitempty"`
	XP            *AwardXPResult      `json:"xp,omitempty"`
	NewBadges     []string            `json:"new_badges"`
	Notifications []Notification      `json:"notifications"`
}

type StreakWarningResponse struct {
	ShowWarning   bool `json:"show_warning"`
	CurrentStreak int  `json:"current_streak"`
}

type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	UserID        int64  `json:"user_id"`
	DisplayName   string `json:"display_name"`
	Username      string `json:"username"`
	Points        int64  `json:"points"`
	Level         int    `json:"level"`
	IsCurrentUser bool   `json:"is_current_user"`
}

type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}
