package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lateshow/lateshow-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expose   bool
		wantCode int
		wantMsg  string
	}{
		{"guest not found", fmt.Errorf("create appearance: %w", domain.ErrGuestNotFound), false, http.StatusNotFound, "Guest not found"},
		{"episode not found", domain.ErrEpisodeNotFound, false, http.StatusNotFound, "Episode not found"},
		{"appearance not found", domain.ErrAppearanceNotFound, false, http.StatusNotFound, "Appearance not found"},
		{"invalid rating", fmt.Errorf("%w: got 9", domain.ErrInvalidRating), false, http.StatusBadRequest, "rating must be between 1 and 5"},
		{"invalid user", domain.ErrInvalidUser, false, http.StatusBadRequest, domain.ErrInvalidUser.Error()},
		{"bad credentials", domain.ErrInvalidCredentials, false, http.StatusUnauthorized, "invalid credentials"},
		{"unauthorized", domain.ErrUnauthorized, false, http.StatusUnauthorized, "unauthorized"},
		{"user exists", domain.ErrUserExists, false, http.StatusConflict, "user already exists"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "Rating, guest_id, and episode_id are required"), false, http.StatusBadRequest, "Rating, guest_id, and episode_id are required"},
		{"internal hidden", errors.New("pq: relation does not exist"), false, http.StatusInternalServerError, "internal server error"},
		{"internal exposed", errors.New("pq: relation does not exist"), true, http.StatusInternalServerError, "pq: relation does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop(), tt.expose)(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tt.wantMsg {
				t.Fatalf("expected message %q, got %q", tt.wantMsg, body.Error)
			}
		})
	}
}
