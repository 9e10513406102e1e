package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func authedRequest(method, target, body string, userID int64) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := context.WithValue(req.Context(), "user_id", userID)
	return req.WithContext(ctx)
}

func TestUpdateStatusRequiresAuth(t *testing.T) {
	h := NewHandler(NewStore(nil), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/content/abc/status", strings.NewReader(`{"status":"completed"}`))
	h.UpdateStatus(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestUpdateStatusRejectsInvalid(t *testing.T) {
	h := NewHandler(NewStore(nil), nil)

	tests := []struct {
		name string
		body string
	}{
		{"unknown status", `{"status":"archived"}`},
		{"empty status", `{"status":""}`},
		{"missing status", `{}`},
		{"malformed body", `{"status":`},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.UpdateStatus(rec, authedRequest(http.MethodPatch, "/api/v1/content/abc/status", tt.body, 1))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tt.name, rec.Code)
		}
	}
}
