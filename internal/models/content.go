package models

import "time"

// Content lifecycle statuses. The conversion pipeline that moves an item
// from uploaded to completed is an external service; this backend only
// records the states it is told about.
const (
	ContentStatusUploaded   = "uploaded"
	ContentStatusProcessing = "processing"
	ContentStatusCompleted  = "completed"
	ContentStatusError      = "error"
)

type ContentItem struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	FileURL   string    `json:"file_url"`
	FileType  string    `json:"file_type"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type QuizAttempt struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	ContentID   string    `json:"content_id"`
	Score       int       `json:"score"`
	CompletedAt time.Time `json:"completed_at"`
}

type UploadRequest struct {
	Title    string `json:"title"`
	FileURL  string `json:"file_url"`
	FileType string `json:"file_type"`
}

// StatusUpdateRequest is the conversion pipeline's report of a content
// item's new lifecycle state.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// UploadResponse pairs the recorded item with the engagement side
// effects of the upload trigger. Engagement is omitted when the
// engagement update failed; the upload itself still succeeded.
type UploadResponse struct {
	Content    ContentItem      `json:"content"`
	Engagement *TriggerResponse `json:"engagement,omitempty"`
}

type QuizAttemptResponse struct {
	Attempt    QuizAttempt      `json:"attempt"`
	Engagement *TriggerResponse `json:"engagement,omitempty"`
}

type CompletionResponse struct {
	Engagement *TriggerResponse `json:"engagement,omitempty"`
}
