package content

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/studyloop/backend/internal/models"
)

var ErrNotFound = errors.New("content item not found")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateItem records one uploaded study document. Status starts at
// uploaded; the external conversion pipeline moves it forward.
func (s *Store) CreateItem(userID int64, title, fileURL, fileType string) (*models.ContentItem, error) {
	item := models.ContentItem{
		ID:       uuid.NewString(),
		UserID:   userID,
		Title:    title,
		FileURL:  fileURL,
		FileType: fileType,
		Status:   models.ContentStatusUploaded,
	}
	err := s.db.QueryRow(
		`INSERT INTO content_items (id, user_id, title, file_url, file_type, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		item.ID, item.UserID, item.Title, item.FileURL, item.FileType, item.Status,
	).Scan(&item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert content item: %w", err)
	}
	return &item, nil
}

func (s *Store) GetItem(id string, userID int64) (*models.ContentItem, error) {
	var item models.ContentItem
	err := s.db.QueryRow(
		`SELECT id, user_id, title, file_url, file_type, status, created_at
		 FROM content_items WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&item.ID, &item.UserID, &item.Title, &item.FileURL, &item.FileType, &item.Status, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get content item: %w", err)
	}
	return &item, nil
}

func (s *Store) ListItems(userID int64) ([]models.ContentItem, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, title, file_url, file_type, status, created_at
		 FROM content_items WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list content items: %w", err)
	}
	defer rows.Close()

	var items []models.ContentItem
	for rows.Next() {
		var item models.ContentItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.Title, &item.FileURL,
			&item.FileType, &item.Status, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan content item: %w", err)
		}
		items = append(items, item)
	}
	if items == nil {
		items = []models.ContentItem{}
	}
	return items, rows.Err()
}

func (s *Store) UpdateItemStatus(id string, userID int64, status string) error {
	result, err := s.db.Exec(
		`UPDATE content_items SET status = $3 WHERE id = $1 AND user_id = $2`,
		id, userID, status,
	)
	if err != nil {
		return fmt.Errorf("update content status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateQuizAttempt records one completed quiz with its score
// percentage.
func (s *Store) CreateQuizAttempt(userID int64, contentID string, score int) (*models.QuizAttempt, error) {
	attempt := models.QuizAttempt{
		UserID:    userID,
		ContentID: contentID,
		Score:     score,
	}
	err := s.db.QueryRow(
		`INSERT INTO quiz_attempts (user_id, content_id, score)
		 VALUES ($1, $2, $3)
		 RETURNING id, completed_at`,
		userID, contentID, score,
	).Scan(&attempt.ID, &attempt.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("insert quiz attempt: %w", err)
	}
	return &attempt, nil
}
