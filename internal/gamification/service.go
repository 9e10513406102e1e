package gamification

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/studyloop/backend/internal/models"
)

// EngagementStore is the persistence surface the orchestrator drives.
// *Store implements it against Postgres; tests use an in-memory
// implementation.
type EngagementStore interface {
	GetOrCreateProgress(userID int64) (*models.UserProgress, error)
	GetProgress(userID int64) (*models.UserProgress, error)
	AwardXP(userID int64, amount int, reason string) (*models.AwardXPResult, error)
	UpdateStreak(userID int64, today time.Time) (*models.StreakUpdateResult, error)
	GetUserStats(userID int64) (*models.UserStats, error)
	GetBadgeDefinitions() ([]models.BadgeDefinition, error)
	GetEarnedBadges(userID int64) ([]models.EarnedBadge, error)
	InsertEarnedBadge(userID int64, badgeID string) error
	LogXPEvent(userID int64, eventType string, xpAmount int, metadata map[string]interface{}) error
	GetXPEvents(userID int64, limit int) ([]models.XPEvent, error)
	GetLeaderboard(limit int) ([]models.LeaderboardEntry, error)
}

// Service sequences the engagement subsystem in response to trigger
// events: record activity, update streak, award XP, evaluate badges,
// queue notifications.
type Service struct {
	store EngagementStore
	now   func() time.Time
}

func NewService(store EngagementStore) *Service {
	return &Service{store: store, now: time.Now}
}

// TriggerResult is the full outcome of one trigger event. Notifications
// are queued FIFO for the presentation layer to drain one at a time.
type TriggerResult struct {
	Streak        *models.StreakUpdateResult
	XP            *models.AwardXPResult
	NewBadges     []string
	Notifications *NotificationQueue
}

func newTriggerResult() *TriggerResult {
	return &TriggerResult{NewBadges: []string{}, Notifications: &NotificationQueue{}}
}

// ── Triggers ────────────────────────────────────────────

// HandleSessionStart runs the app-foreground sequence: streak check-in,
// then daily-login XP if it has not been granted today, then badge
// evaluation. The login check reads lastActiveDate before the streak
// update, because the update itself advances it.
func (s *Service) HandleSessionStart(userID int64) (*TriggerResult, error) {
	progress, err := s.store.GetOrCreateProgress(userID)
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}

	today := s.now()
	loginXPDue := progress.LastActiveDate == nil || !SameDay(*progress.LastActiveDate, today)

	streak, err := s.store.UpdateStreak(userID, today)
	if err != nil {
		return nil, fmt.Errorf("update streak: %w", err)
	}

	result := newTriggerResult()
	result.Streak = streak

	if loginXPDue {
		if err := s.awardXP(userID, XPRewardDailyLogin, "daily_login", nil, result); err != nil {
			return nil, err
		}
	}

	s.checkBadges(userID, result)
	return result, nil
}

// HandleUploadComplete awards upload XP and re-evaluates badges.
func (s *Service) HandleUploadComplete(userID int64) (*TriggerResult, error) {
	if _, err := s.store.GetOrCreateProgress(userID); err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}

	result := newTriggerResult()
	if err := s.awardXP(userID, XPRewardUpload, "content_upload", nil, result); err != nil {
		return nil, err
	}
	s.checkBadges(userID, result)
	return result, nil
}

// HandleQuizComplete awards quiz XP scaled by the score percentage and
// re-evaluates badges.
func (s *Service) HandleQuizComplete(userID int64, score int) (*TriggerResult, error) {
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("score must be between 0 and 100, got %d", score)
	}
	if _, err := s.store.GetOrCreateProgress(userID); err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}

	result := newTriggerResult()
	meta := map[string]interface{}{"score": score}
	if err := s.awardXP(userID, QuizXP(score), "quiz_completed", meta, result); err != nil {
		return nil, err
	}
	s.checkBadges(userID, result)
	return result, nil
}

// HandleStoryChapter awards the fixed story-chapter XP. No badge keys
// off this event today, but the evaluation is idempotent and cheap, so
// it runs anyway.
func (s *Service) HandleStoryChapter(userID int64) (*TriggerResult, error) {
	return s.handleFixedReward(userID, XPRewardStoryChapter, "story_chapter")
}

// HandleAudioComplete awards the fixed audio-completion XP.
func (s *Service) HandleAudioComplete(userID int64) (*TriggerResult, error) {
	return s.handleFixedReward(userID, XPRewardAudioComplete, "audio_complete")
}

func (s *Service) handleFixedReward(userID int64, amount int, reason string) (*TriggerResult, error) {
	if _, err := s.store.GetOrCreateProgress(userID); err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}

	result := newTriggerResult()
	if err := s.awardXP(userID, amount, reason, nil, result); err != nil {
		return nil, err
	}
	s.checkBadges(userID, result)
	return result, nil
}

// awardXP runs one XP award, records the audit event, and queues the XP
// and level-up notifications in display order.
func (s *Service) awardXP(userID int64, amount int, reason string, metadata map[string]interface{}, result *TriggerResult) error {
	award, err := s.store.AwardXP(userID, amount, reason)
	if err != nil {
		return fmt.Errorf("award xp (%s): %w", reason, err)
	}
	result.XP = award

	if err := s.store.LogXPEvent(userID, reason, amount, metadata); err != nil {
		log.Printf("[gamification] failed to log xp event for user %d: %v", userID, err)
	}

	result.Notifications.Enqueue(models.Notification{
		Kind:     models.NotificationXPAwarded,
		XPAmount: amount,
	})
	if award.LeveledUp {
		result.Notifications.Enqueue(models.Notification{
			Kind:     models.NotificationLevelUp,
			OldLevel: award.OldLevel,
			NewLevel: award.NewLevel,
		})
	}
	return nil
}

// checkBadges runs badge evaluation and queues one notification per
// newly earned badge. Evaluation failures are cosmetic: they are logged
// and never fail the trigger.
func (s *Service) checkBadges(userID int64, result *TriggerResult) {
	newBadges, err := s.CheckAndAwardBadges(userID)
	if err != nil {
		log.Printf("[gamification] badge check failed for user %d: %v", userID, err)
		return
	}
	result.NewBadges = newBadges
	for _, id := range newBadges {
		result.Notifications.Enqueue(models.Notification{
			Kind:    models.NotificationBadgeEarned,
			BadgeID: id,
		})
	}
}

// ── Badge Evaluation ────────────────────────────────────

// CheckAndAwardBadges evaluates every unearned badge definition against
// the user's current stats and awards the newly satisfied ones. Returns
// the badge IDs inserted in this pass; a badge lost to a concurrent
// insert counts as already earned, not an error, and one failed insert
// does not abort the rest.
func (s *Service) CheckAndAwardBadges(userID int64) ([]string, error) {
	defs, err := s.store.GetBadgeDefinitions()
	if err != nil {
		return nil, fmt.Errorf("get badge definitions: %w", err)
	}
	earned, err := s.store.GetEarnedBadges(userID)
	if err != nil {
		return nil, fmt.Errorf("get earned badges: %w", err)
	}
	stats, err := s.store.GetUserStats(userID)
	if err != nil {
		return nil, fmt.Errorf("get user stats: %w", err)
	}

	earnedSet := make(map[string]bool, len(earned))
	for _, b := range earned {
		earnedSet[b.BadgeID] = true
	}

	newlyEarned := []string{}
	for _, def := range defs {
		if earnedSet[def.ID] {
			continue
		}
		if !BadgeSatisfied(def, *stats) {
			continue
		}
		if err := s.store.InsertEarnedBadge(userID, def.ID); err != nil {
			if errors.Is(err, ErrDuplicateBadge) {
				continue
			}
			log.Printf("[gamification] failed to award badge %s to user %d: %v", def.ID, userID, err)
			continue
		}
		newlyEarned = append(newlyEarned, def.ID)
	}
	return newlyEarned, nil
}

// ── Read-Only Views ─────────────────────────────────────

func (s *Service) GetEngagement(userID int64) (*models.EngagementResponse, error) {
	progress, err := s.store.GetOrCreateProgress(userID)
	if err != nil {
		return nil, err
	}
	return &models.EngagementResponse{
		Points:         progress.Points,
		Level:          CalculateLevel(progress.Points),
		LevelProgress:  CalculateLevelProgress(progress.Points),
		XPToNextLevel:  CalculateXPToNextLevel(progress.Points),
		Streak:         progress.Streak,
		LastActiveDate: progress.LastActiveDate,
	}, nil
}

func (s *Service) GetStreakCalendar(userID int64) ([]models.StreakDay, error) {
	progress, err := s.store.GetProgress(userID)
	if err != nil {
		return nil, err
	}
	return BuildStreakCalendar(progress.Streak, progress.LastActiveDate, s.now()), nil
}

func (s *Service) ShouldShowStreakWarning(userID int64) (*models.StreakWarningResponse, error) {
	progress, err := s.store.GetProgress(userID)
	if err != nil {
		return nil, err
	}
	return &models.StreakWarningResponse{
		ShowWarning:   StreakAtRisk(progress.Streak, progress.LastActiveDate, s.now()),
		CurrentStreak: progress.Streak,
	}, nil
}

// GetStreakStats returns streak stats for display. No historical
// maximum is stored, so longest streak equals the current streak.
func (s *Service) GetStreakStats(userID int64) (*models.StreakStats, error) {
	progress, err := s.store.GetProgress(userID)
	if err != nil {
		return nil, err
	}
	return &models.StreakStats{
		CurrentStreak: progress.Streak,
		LongestStreak: progress.Streak,
		IsAtRisk:      StreakAtRisk(progress.Streak, progress.LastActiveDate, s.now()),
	}, nil
}

// GetBadges returns every badge definition with the user's earned state
// and progress toward unearned thresholds.
func (s *Service) GetBadges(userID int64) ([]models.BadgeStatus, error) {
	defs, err := s.store.GetBadgeDefinitions()
	if err != nil {
		return nil, fmt.Errorf("get badge definitions: %w", err)
	}
	earned, err := s.store.GetEarnedBadges(userID)
	if err != nil {
		return nil, fmt.Errorf("get earned badges: %w", err)
	}
	stats, err := s.store.GetUserStats(userID)
	if err != nil {
		return nil, fmt.Errorf("get user stats: %w", err)
	}

	earnedAt := make(map[string]time.Time, len(earned))
	for _, b := range earned {
		earnedAt[b.BadgeID] = b.EarnedAt
	}

	statuses := make([]models.BadgeStatus, 0, len(defs))
	for _, def := range defs {
		status := models.BadgeStatus{BadgeDefinition: def}
		if at, ok := earnedAt[def.ID]; ok {
			status.Earned = true
			t := at
			status.EarnedAt = &t
		}
		status.Progress, status.ProgressPercentage = BadgeProgress(def, *stats, status.Earned)
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// GetXPHistory returns the user's recent XP awards from the audit log,
// newest first.
func (s *Service) GetXPHistory(userID int64, limit int) ([]models.XPEvent, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	events, err := s.store.GetXPEvents(userID, limit)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []models.XPEvent{}
	}
	return events, nil
}

func (s *Service) GetLeaderboard(userID int64, limit int) (*models.LeaderboardResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	entries, err := s.store.GetLeaderboard(limit)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].UserID == userID {
			entries[i].IsCurrentUser = true
		}
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	return &models.LeaderboardResponse{Entries: entries}, nil
}
