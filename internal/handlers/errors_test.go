package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondWithError(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		userMsg    string
		err        error
		wantStatus int
	}{
		{"bad request", http.StatusBadRequest, "Invalid form data", errors.New("parse failed"), http.StatusBadRequest},
		{"internal error", http.StatusInternalServerError, "Internal server error", errors.New("db down"), http.StatusInternalServerError},
		{"no underlying error", http.StatusNotFound, "Not found", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondWithError(rec, tt.status, tt.userMsg, "", tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if body := strings.TrimSpace(rec.Body.String()); body != tt.userMsg {
				t.Errorf("body = %q, want %q", body, tt.userMsg)
			}
		})
	}
}
