package gamification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/studyloop/backend/internal/models"
)

func authedRequest(method, target string, userID int64) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := context.WithValue(req.Context(), "user_id", userID)
	return req.WithContext(ctx)
}

func TestSessionStartHandler(t *testing.T) {
	store := newMemStore()
	store.defs = testBadges()
	svc := newTestService(store, date(2026, 3, 15))
	h := NewHandler(svc)

	rec := httptest.NewRecorder()
	h.SessionStart(rec, authedRequest(http.MethodPost, "/api/v1/engagement/session", 1))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp models.TriggerResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Streak == nil || resp.Streak.Streak != 1 {
		t.Errorf("streak = %+v, want 1", resp.Streak)
	}
	if resp.XP == nil || resp.XP.NewPoints != XPRewardDailyLogin {
		t.Errorf("xp = %+v, want daily login award", resp.XP)
	}
	if resp.NewBadges == nil || resp.Notifications == nil {
		t.Error("new_badges and notifications must serialize as arrays, not null")
	}
	if len(resp.Notifications) != 1 || resp.Notifications[0].Kind != models.NotificationXPAwarded {
		t.Errorf("notifications = %+v, want one xp_awarded entry", resp.Notifications)
	}
}

func TestSessionStartHandlerRequiresAuth(t *testing.T) {
	h := NewHandler(newTestService(newMemStore(), date(2026, 3, 15)))

	rec := httptest.NewRecorder()
	h.SessionStart(rec, httptest.NewRequest(http.MethodPost, "/api/v1/engagement/session", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestStreakCalendarHandlerUnknownUser(t *testing.T) {
	h := NewHandler(newTestService(newMemStore(), date(2026, 3, 15)))

	rec := httptest.NewRecorder()
	h.StreakCalendar(rec, authedRequest(http.MethodGet, "/api/v1/streak/calendar", 99))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for a user with no progress row", rec.Code)
	}
}

func TestLeaderboardHandlerLimit(t *testing.T) {
	store := newMemStore()
	for i := int64(1); i <= 5; i++ {
		store.board = append(store.board, models.LeaderboardEntry{Rank: int(i), UserID: i})
	}
	h := NewHandler(newTestService(store, date(2026, 3, 15)))

	rec := httptest.NewRecorder()
	h.Leaderboard(rec, authedRequest(http.MethodGet, "/api/v1/leaderboard?limit=3", 1))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp models.LeaderboardResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Entries) != 3 {
		t.Errorf("entries = %d, want 3", len(resp.Entries))
	}
}

func TestIntQueryParam(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 20},
		{"limit=5", 5},
		{"limit=abc", 20},
		{"limit=-1", 20},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/leaderboard?"+tt.query, nil)
		if got := intQueryParam(req.URL.Query(), "limit", 20); got != tt.want {
			t.Errorf("intQueryParam(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}
