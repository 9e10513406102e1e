package gamification

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/studyloop/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

// triggerResponse flattens a TriggerResult for the wire, draining the
// notification queue in FIFO order.
func triggerResponse(result *TriggerResult) *models.TriggerResponse {
	return &models.TriggerResponse{
		Streak:        result.Streak,
		XP:            result.XP,
		NewBadges:     result.NewBadges,
		Notifications: result.Notifications.Items(),
	}
}

// ── Triggers ────────────────────────────────────────────

func (h *Handler) SessionStart(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	result, err := h.service.HandleSessionStart(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to record session"})
		return
	}

	writeJSON(w, http.StatusOK, triggerResponse(result))
}

// ── Engagement State ────────────────────────────────────

func (h *Handler) GetEngagement(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	resp, err := h.service.GetEngagement(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get engagement state"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) XPHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	limit := intQueryParam(r.URL.Query(), "limit", 50)

	events, err := h.service.GetXPHistory(userID, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get XP history"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

// ── Streak Views ────────────────────────────────────────

func (h *Handler) StreakCalendar(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	calendar, err := h.service.GetStreakCalendar(userID)
	if err != nil {
		writeJSON(w, statusFor(err), models.ErrorResponse{Error: "Failed to get streak calendar"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"days": calendar})
}

func (h *Handler) StreakStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	stats, err := h.service.GetStreakStats(userID)
	if err != nil {
		writeJSON(w, statusFor(err), models.ErrorResponse{Error: "Failed to get streak stats"})
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) StreakWarning(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	resp, err := h.service.ShouldShowStreakWarning(userID)
	if err != nil {
		writeJSON(w, statusFor(err), models.ErrorResponse{Error: "Failed to check streak warning"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ── Badges ──────────────────────────────────────────────

func (h *Handler) ListBadges(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	badges, err := h.service.GetBadges(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get badges"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"badges": badges})
}

// ── Leaderboard ─────────────────────────────────────────

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	limit := intQueryParam(r.URL.Query(), "limit", 20)

	resp, err := h.service.GetLeaderboard(userID, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get leaderboard"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ── Helpers ─────────────────────────────────────────────

func statusFor(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func intQueryParam(query url.Values, key string, defaultVal int) int {
	s := query.Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	return v
}
