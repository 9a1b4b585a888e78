package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

// sharedNoteService defines the minimal interface needed by
// SharedHandler.
type sharedNoteService interface {
	GetShared(ctx context.Context, token string) (*domain.Note, error)
	UpdateShared(ctx context.Context, token, content string, expectedVersion *int) (*domain.Note, error)
}

// SharedHandler serves the anonymous share-link endpoints. The token in
// the URL path is the entire credential; no other authentication
// applies.
type SharedHandler struct {
	svc sharedNoteService
	log *slog.Logger
}

// NewSharedHandler creates a SharedHandler.
func NewSharedHandler(svc sharedNoteService, logger *slog.Logger) *SharedHandler {
	return &SharedHandler{svc: svc, log: logger.With("handler", "shared")}
}

type sharedUpdateRequest struct {
	Content         string `json:"content"`
	ExpectedVersion *int   `json:"expected_version,omitempty"`
}

// sharedNoteResponse deliberately omits author and sharing metadata: an
// anonymous holder of the token learns only the document itself.
type sharedNoteResponse struct {
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Version     int       `json:"version"`
	AccessLevel string    `json:"access_level"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Get handles GET /api/v1/shared/{token}.
func (h *SharedHandler) Get(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.GetShared(r.Context(), r.PathValue("token"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusOK, toSharedNoteResponse(n))
}

// Update handles PUT /api/v1/shared/{token}. Content only; an edit-level
// token does not grant title changes or any member operation.
func (h *SharedHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req sharedUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	n, err := h.svc.UpdateShared(r.Context(), r.PathValue("token"), req.Content, req.ExpectedVersion)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusOK, toSharedNoteResponse(n))
}

func toSharedNoteResponse(n *domain.Note) sharedNoteResponse {
	return sharedNoteResponse{
		Title:       n.Title,
		Content:     n.Content,
		Version:     n.Version,
		AccessLevel: n.ShareAccessLevel.String(),
		UpdatedAt:   n.UpdatedAt,
	}
}
