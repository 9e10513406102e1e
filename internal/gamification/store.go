package gamification

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/studyloop/backend/internal/models"
)

var (
	// ErrNotFound means the user's progress row is missing. Progress is
	// created at account creation, so this is a precondition violation.
	ErrNotFound = errors.New("user progress not found")

	// ErrDuplicateBadge means an earned-badge insert hit the uniqueness
	// constraint. Benign: the badge was already earned.
	ErrDuplicateBadge = errors.New("badge already earned")
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── User Progress ───────────────────────────────────────

func (s *Store) GetOrCreateProgress(userID int64) (*models.UserProgress, error) {
	_, err := s.db.Exec(
		`INSERT INTO user_progress (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert progress: %w", err)
	}
	return s.GetProgress(userID)
}

func (s *Store) GetProgress(userID int64) (*models.UserProgress, error) {
	var p models.UserProgress
	err := s.db.QueryRow(
		`SELECT user_id, points, level, streak, last_active_date, created_at, updated_at
		 FROM user_progress WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.Points, &p.Level, &p.Streak, &p.LastActiveDate, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return &p, nil
}

// ── XP Award ────────────────────────────────────────────

// AwardXP adds amount to the user's points and writes the recomputed
// level in the same transaction. The row lock serializes concurrent
// awards for the same user; on any failure nothing is written.
func (s *Store) AwardXP(userID int64, amount int, reason string) (*models.AwardXPResult, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin xp award: %w", err)
	}
	defer tx.Rollback()

	var points int64
	err = tx.QueryRow(
		`SELECT points FROM user_progress WHERE user_id = $1 FOR UPDATE`,
		userID,
	).Scan(&points)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read points: %w", err)
	}

	newPoints := points + int64(amount)
	result := &models.AwardXPResult{
		NewPoints: newPoints,
		OldLevel:  CalculateLevel(points),
		NewLevel:  CalculateLevel(newPoints),
	}
	result.LeveledUp = result.NewLevel > result.OldLevel

	_, err = tx.Exec(
		`UPDATE user_progress SET points = $2, level = $3, updated_at = NOW()
		 WHERE user_id = $1`,
		userID, newPoints, result.NewLevel,
	)
	if err != nil {
		return nil, fmt.Errorf("write points: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit xp award: %w", err)
	}
	return result, nil
}

func (s *Store) LogXPEvent(userID int64, eventType string, xpAmount int, metadata map[string]interface{}) error {
	var metaJSON *string
	if metadata != nil {
		b, err := json.Marshal(metadata)
		if err == nil {
			str := string(b)
			metaJSON = &str
		}
	}
	_, err := s.db.Exec(
		`INSERT INTO xp_events (user_id, event_type, xp_amount, metadata)
		 VALUES ($1, $2, $3, $4)`,
		userID, eventType, xpAmount, metaJSON,
	)
	return err
}

// GetXPEvents returns the user's most recent XP awards, newest first.
func (s *Store) GetXPEvents(userID int64, limit int) ([]models.XPEvent, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, event_type, xp_amount, COALESCE(metadata::text, ''), created_at
		 FROM xp_events WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get xp events: %w", err)
	}
	defer rows.Close()

	var events []models.XPEvent
	for rows.Next() {
		var e models.XPEvent
		if err := rows.Scan(&e.ID, &e.UserID, &e.EventType, &e.XPAmount, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan xp event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// ── Streak ──────────────────────────────────────────────

// UpdateStreak applies one check-in for the given day. Read,
// classification, and write happen inside one transaction with the row
// locked, so two rapid check-ins cannot double-increment.
func (s *Store) UpdateStreak(userID int64, today time.Time) (*models.StreakUpdateResult, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin streak update: %w", err)
	}
	defer tx.Rollback()

	var streak int
	var lastActive *time.Time
	err = tx.QueryRow(
		`SELECT streak, last_active_date FROM user_progress WHERE user_id = $1 FOR UPDATE`,
		userID,
	).Scan(&streak, &lastActive)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read streak: %w", err)
	}

	result := AdvanceStreak(streak, lastActive, today)

	_, err = tx.Exec(
		`UPDATE user_progress SET streak = $2, last_active_date = $3, updated_at = NOW()
		 WHERE user_id = $1`,
		userID, result.Streak, DateOnly(today),
	)
	if err != nil {
		return nil, fmt.Errorf("write streak: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit streak update: %w", err)
	}
	return &result, nil
}

// ── Stats ───────────────────────────────────────────────

func (s *Store) CountUploads(userID int64) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM content_items WHERE user_id = $1`,
		userID,
	).Scan(&count)
	return count, err
}

func (s *Store) CountQuizAttempts(userID int64, perfectOnly bool) (int, error) {
	query := `SELECT COUNT(*) FROM quiz_attempts WHERE user_id = $1`
	if perfectOnly {
		query += ` AND score = 100`
	}
	var count int
	err := s.db.QueryRow(query, userID).Scan(&count)
	return count, err
}

// GetUserStats assembles the badge-evaluation snapshot. Level is
// recomputed from stored points rather than read back, so a drifted
// level column can never leak into evaluation.
func (s *Store) GetUserStats(userID int64) (*models.UserStats, error) {
	progress, err := s.GetProgress(userID)
	if err != nil {
		return nil, err
	}
	uploads, err := s.CountUploads(userID)
	if err != nil {
		return nil, fmt.Errorf("count uploads: %w", err)
	}
	totalQuizzes, err := s.CountQuizAttempts(userID, false)
	if err != nil {
		return nil, fmt.Errorf("count quiz attempts: %w", err)
	}
	perfectQuizzes, err := s.CountQuizAttempts(userID, true)
	if err != nil {
		return nil, fmt.Errorf("count perfect quizzes: %w", err)
	}

	return &models.UserStats{
		UploadCount:      uploads,
		PerfectQuizCount: perfectQuizzes,
		TotalQuizCount:   totalQuizzes,
		CurrentStreak:    progress.Streak,
		Level:            CalculateLevel(progress.Points),
	}, nil
}

// ── Badges ──────────────────────────────────────────────

func (s *Store) GetBadgeDefinitions() ([]models.BadgeDefinition, error) {
	rows, err := s.db.Query(
		`SELECT id, name, description, icon, category, requirement_kind,
		        requirement_threshold, reward_xp, sort_order
		 FROM badges ORDER BY sort_order`,
	)
	if err != nil {
		return nil, fmt.Errorf("get badge definitions: %w", err)
	}
	defer rows.Close()

	var defs []models.BadgeDefinition
	for rows.Next() {
		var d models.BadgeDefinition
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Icon, &d.Category,
			&d.RequirementKind, &d.RequirementThreshold, &d.RewardXP, &d.SortOrder); err != nil {
			return nil, fmt.Errorf("scan badge definition: %w", err)
		}
		defs = append(defs, d)
	}
	return defs, rows.Err()
}

func (s *Store) GetEarnedBadges(userID int64) ([]models.EarnedBadge, error) {
	rows, err := s.db.Query(
		`SELECT user_id, badge_id, earned_at FROM user_badges
		 WHERE user_id = $1 ORDER BY earned_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("get earned badges: %w", err)
	}
	defer rows.Close()

	var earned []models.EarnedBadge
	for rows.Next() {
		var b models.EarnedBadge
		if err := rows.Scan(&b.UserID, &b.BadgeID, &b.EarnedAt); err != nil {
			return nil, fmt.Errorf("scan earned badge: %w", err)
		}
		earned = append(earned, b)
	}
	return earned, rows.Err()
}

// InsertEarnedBadge awards a badge exactly once. The unique constraint
// on (user_id, badge_id) is the concurrency boundary: a conflicted
// insert returns ErrDuplicateBadge.
func (s *Store) InsertEarnedBadge(userID int64, badgeID string) error {
	result, err := s.db.Exec(
		`INSERT INTO user_badges (user_id, badge_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, badge_id) DO NOTHING`,
		userID, badgeID,
	)
	if err != nil {
		return fmt.Errorf("insert earned badge: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrDuplicateBadge
	}
	return nil
}

// ── Leaderboard ─────────────────────────────────────────

func (s *Store) GetLeaderboard(limit int) ([]models.LeaderboardEntry, error) {
	rows, err := s.db.Query(
		`SELECT u.id, u.name, COALESCE(u.username, ''), p.points, p.level,
		        ROW_NUMBER() OVER (ORDER BY p.points DESC) AS rank
		 FROM user_progress p
		 JOIN users u ON u.id = p.user_id
		 WHERE p.points > 0
		 ORDER BY p.points DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		var fullName string
		if err := rows.Scan(&e.UserID, &fullName, &e.Username, &e.Points, &e.Level, &e.Rank); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		e.DisplayName = models.User{Name: fullName}.DisplayName()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
