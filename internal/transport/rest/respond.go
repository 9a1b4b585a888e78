// Package rest serves the JSON HTTP API. Every response is wrapped in a
// uniform envelope: {"success": true, "data": ...} or
// {"success": false, "error": {"code", "message", "fields"}}.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, envelope{Success: false, Error: &errorBody{
		Code:    code,
		Message: message,
	}})
}

// handleError maps domain errors to HTTP responses. Anything unmapped is
// a 500 with a generic body; the real error goes to the log only.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: &errorBody{
			Code:    "validation_failed",
			Message: "validation failed",
			Fields:  vErr.FieldMap(),
		}})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
	case errors.Is(err, domain.ErrInvalidKey):
		writeError(w, http.StatusUnauthorized, "invalid_api_key", "invalid api key")
	case errors.Is(err, domain.ErrInvalidShareToken):
		writeError(w, http.StatusNotFound, "not_found", "not found")
	case errors.Is(err, domain.ErrNotAMember):
		writeError(w, http.StatusForbidden, "not_a_member", "not a member of this organization")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "not found")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "version_conflict", "stale version, re-read and retry")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already_exists", "already exists")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}
