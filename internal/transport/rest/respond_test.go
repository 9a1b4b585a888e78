package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHandleError_Mapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{"invalid api key", domain.ErrInvalidKey, http.StatusUnauthorized, "invalid_api_key"},
		{"invalid share token looks like 404", domain.ErrInvalidShareToken, http.StatusNotFound, "not_found"},
		{"not a member", domain.ErrNotAMember, http.StatusForbidden, "not_a_member"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"not found", domain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"version conflict", domain.ErrConflict, http.StatusConflict, "version_conflict"},
		{"already exists", domain.ErrAlreadyExists, http.StatusConflict, "already_exists"},
		{"wrapped sentinel", fmt.Errorf("note.Update: %w", domain.ErrConflict), http.StatusConflict, "version_conflict"},
		{"unknown", errors.New("pool exhausted"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			handleError(rec, req, testLogger(), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}

func TestHandleError_Validation(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)

	handleError(rec, req, testLogger(), domain.NewValidationError("title", "required"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "validation_failed", env.Error.Code)
	assert.Equal(t, "required", env.Error.Fields["title"])
}

func TestHandleError_InternalHidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	handleError(rec, req, testLogger(), errors.New("dsn=postgres://user:password@db"))

	// The real error must never reach the response body.
	assert.NotContains(t, rec.Body.String(), "password")
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "internal server error", env.Error.Message)
}

func TestWriteData_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()

	writeData(rec, http.StatusCreated, map[string]string{"id": "42"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
}
