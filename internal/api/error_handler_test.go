package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rewardsystem/rewards-api/internal/core/domain"
)

func renderError(t *testing.T, err error, path string) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, resp
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
		wantMsg    string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED", "invalid username or password"},
		{"user exists", domain.ErrUserExists, http.StatusConflict, "CONFLICT", "username already exists"},
		{"email exists", domain.ErrEmailExists, http.StatusConflict, "CONFLICT", "email already exists"},
		{"customer not found", domain.ErrCustomerNotFound, http.StatusNotFound, "NOT_FOUND", "customer not found"},
		{"validation", domain.Validation("Username is required"), http.StatusBadRequest, "BAD_REQUEST", "Username is required"},
		{"echo error", echo.NewHTTPError(http.StatusUnprocessableEntity, "bad field"), http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY", "bad field"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, resp := renderError(t, tc.err, "/some/path")
			if code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, code)
			}
			if resp.Status != tc.wantStatus || resp.Error != tc.wantError || resp.Message != tc.wantMsg {
				t.Fatalf("unexpected envelope: %+v", resp)
			}
			if resp.Path != "/some/path" {
				t.Fatalf("unexpected path: %q", resp.Path)
			}
		})
	}
}

func TestErrorHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	code, resp := renderError(t, errors.New("mongo: connection reset"), "/v1/api/rewards")
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if resp.Message != "internal server error" {
		t.Fatalf("internal details leaked: %q", resp.Message)
	}
	if resp.Error != "INTERNAL_SERVER_ERROR" {
		t.Fatalf("unexpected error code: %q", resp.Error)
	}
}
