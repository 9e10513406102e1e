package content

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/studyloop/backend/internal/gamification"
	"github.com/studyloop/backend/internal/models"
)

type Handler struct {
	store      *Store
	engagement *gamification.Service
}

func NewHandler(store *Store, engagement *gamification.Service) *Handler {
	return &Handler{store: store, engagement: engagement}
}

func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

// Upload records a completed document upload and fires the upload
// engagement trigger. An engagement failure never fails the upload: the
// item is already recorded, so the response omits the engagement block
// and the failure is logged for the next trigger to absorb.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Title == "" || req.FileURL == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "title and file_url are required"})
		return
	}

	item, err := h.store.CreateItem(userID, req.Title, req.FileURL, req.FileType)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to record upload"})
		return
	}

	resp := models.UploadResponse{Content: *item}
	if result, err := h.engagement.HandleUploadComplete(userID); err != nil {
		log.Printf("[content] engagement update failed for upload %s: %v", item.ID, err)
	} else {
		resp.Engagement = engagementResponse(result)
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	items, err := h.store.ListItems(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list content"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"content": items})
}

var validStatuses = map[string]bool{
	models.ContentStatusUploaded:   true,
	models.ContentStatusProcessing: true,
	models.ContentStatusCompleted:  true,
	models.ContentStatusError:      true,
}

// UpdateStatus records a lifecycle transition reported by the external
// conversion pipeline.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if !validStatuses[req.Status] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid status"})
		return
	}

	contentID := mux.Vars(r)["id"]
	if err := h.store.UpdateItemStatus(contentID, userID, req.Status); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Content not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update status"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"status": req.Status})
}

// CompleteQuiz records a quiz attempt against a content item and fires
// the quiz engagement trigger with the score.
func (h *Handler) CompleteQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	contentID := mux.Vars(r)["id"]

	var req models.QuizCompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Score < 0 || req.Score > 100 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "score must be between 0 and 100"})
		return
	}

	if _, err := h.store.GetItem(contentID, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Content not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to look up content"})
		return
	}

	attempt, err := h.store.CreateQuizAttempt(userID, contentID, req.Score)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to record quiz attempt"})
		return
	}

	resp := models.QuizAttemptResponse{Attempt: *attempt}
	if result, err := h.engagement.HandleQuizComplete(userID, req.Score); err != nil {
		log.Printf("[content] engagement update failed for quiz on %s: %v", contentID, err)
	} else {
		resp.Engagement = engagementResponse(result)
	}

	writeJSON(w, http.StatusCreated, resp)
}

// CompleteStoryChapter fires the story-chapter engagement trigger.
func (h *Handler) CompleteStoryChapter(w http.ResponseWriter, r *http.Request) {
	h.completion(w, r, h.engagement.HandleStoryChapter)
}

// CompleteAudio fires the audio-completion engagement trigger.
func (h *Handler) CompleteAudio(w http.ResponseWriter, r *http.Request) {
	h.completion(w, r, h.engagement.HandleAudioComplete)
}

func (h *Handler) completion(w http.ResponseWriter, r *http.Request, trigger func(int64) (*gamification.TriggerResult, error)) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	contentID := mux.Vars(r)["id"]
	if _, err := h.store.GetItem(contentID, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Content not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to look up content"})
		return
	}

	resp := models.CompletionResponse{}
	if result, err := trigger(userID); err != nil {
		log.Printf("[content] engagement update failed for completion on %s: %v", contentID, err)
	} else {
		resp.Engagement = engagementResponse(result)
	}

	writeJSON(w, http.StatusOK, resp)
}

func engagementResponse(result *gamification.TriggerResult) *models.TriggerResponse {
	return &models.TriggerResponse{
		Streak:        result.Streak,
		XP:            result.XP,
		NewBadges:     result.NewBadges,
		Notifications: result.Notifications.Items(),
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
