package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/domain"
	"github.com/teamledger/teamledger-backend/internal/service/note"
)

// noteService defines the minimal interface needed by NoteHandler.
type noteService interface {
	Create(ctx context.Context, orgID, projectID uuid.UUID, author *uuid.UUID, input note.CreateInput) (*domain.Note, error)
	Get(ctx context.Context, orgID, projectID, noteID uuid.UUID) (*domain.Note, error)
	List(ctx context.Context, orgID, projectID uuid.UUID) ([]domain.Note, error)
	Update(ctx context.Context, orgID, projectID, noteID uuid.UUID, editor *uuid.UUID, input note.UpdateInput) (*domain.Note, error)
	Delete(ctx context.Context, orgID, projectID, noteID uuid.UUID) error
	GenerateShareLink(ctx context.Context, orgID, projectID, noteID uuid.UUID, level domain.AccessLevel) (*note.ShareResult, error)
	RevokeShareLink(ctx context.Context, orgID, projectID, noteID uuid.UUID) error
}

// NoteHandler serves note REST endpoints.
type NoteHandler struct {
	svc noteService
	log *slog.Logger
}

// NewNoteHandler creates a NoteHandler.
func NewNoteHandler(svc noteService, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{svc: svc, log: logger.With("handler", "note")}
}

type createNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type updateNoteRequest struct {
	Title           *string `json:"title,omitempty"`
	Content         *string `json:"content,omitempty"`
	ExpectedVersion *int    `json:"expected_version,omitempty"`
}

type shareRequest struct {
	AccessLevel string `json:"access_level"`
}

type noteResponse struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"project_id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Version      int       `json:"version"`
	CreatedBy    *string   `json:"created_by"`
	LastEditedBy *string   `json:"last_edited_by"`
	IsShared     bool      `json:"is_shared"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type shareResponse struct {
	Token       string `json:"token"`
	AccessLevel string `json:"access_level"`
}

// Create handles POST /api/v1/projects/{projectID}/notes.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := orgPrincipal(w, r, domain.ScopeWrite)
	if !ok {
		return
	}

	projectID, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}

	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	n, err := h.svc.Create(r.Context(), p.OrgID, projectID, authorID(p), note.CreateInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusCreated, toNoteResponse(n))
}

// List handles GET /api/v1/projects/{projectID}/notes.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := orgPrincipal(w, r, domain.ScopeRead)
	if !ok {
		return
	}

	projectID, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}

	notes, err := h.svc.List(r.Context(), p.OrgID, projectID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]noteResponse, 0, len(notes))
	for i := range notes {
		out = append(out, toNoteResponse(&notes[i]))
	}

	writeData(w, http.StatusOK, out)
}

// Get handles GET /api/v1/projects/{projectID}/notes/{noteID}.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := orgPrincipal(w, r, domain.ScopeRead)
	if !ok {
		return
	}

	projectID, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}
	noteID, ok := pathUUID(w, r, "noteID")
	if !ok {
		return
	}

	n, err := h.svc.Get(r.Context(), p.OrgID, projectID, noteID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusOK, toNoteResponse(n))
}

// Update handles PUT /api/v1/projects/{projectID}/notes/{noteID}.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := orgPrincipal(w, r, domain.ScopeWrite)
	if !ok {
		return
	}

	projectID, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}
	noteID, ok := pathUUID(w, r, "noteID")
	if !ok {
		return
	}

	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	n, err := h.svc.Update(r.Context(), p.OrgID, projectID, noteID, authorID(p), note.UpdateInput{
		Title:           req.Title,
		Content:         req.Content,
		ExpectedVersion: req.ExpectedVersion,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusOK, toNoteResponse(n))
}

// Delete handles DELETE /api/v1/projects/{projectID}/notes/{noteID}.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := orgPrincipal(w, r, domain.ScopeWrite)
	if !ok {
		return
	}

	projectID, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}
	noteID, ok := pathUUID(w, r, "noteID")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), p.OrgID, projectID, noteID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Share handles POST /api/v1/projects/{projectID}/notes/{noteID}/share.
// Always issues a fresh token; any previous one stops working.
func (h *NoteHandler) Share(w http.ResponseWriter, r *http.Request) {
	p, ok := orgPrincipal(w, r, domain.ScopeWrite)
	if !ok {
		return
	}

	projectID, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}
	noteID, ok := pathUUID(w, r, "noteID")
	if !ok {
		return
	}

	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	result, err := h.svc.GenerateShareLink(r.Context(), p.OrgID, projectID, noteID,
		domain.AccessLevel(req.AccessLevel))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusCreated, shareResponse{
		Token:       result.Token,
		AccessLevel: result.Note.ShareAccessLevel.String(),
	})
}

// Unshare handles DELETE /api/v1/projects/{projectID}/notes/{noteID}/share.
func (h *NoteHandler) Unshare(w http.ResponseWriter, r *http.Request) {
	p, ok := orgPrincipal(w, r, domain.ScopeWrite)
	if !ok {
		return
	}

	projectID, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}
	noteID, ok := pathUUID(w, r, "noteID")
	if !ok {
		return
	}

	if err := h.svc.RevokeShareLink(r.Context(), p.OrgID, projectID, noteID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusOK, map[string]string{"status": "revoked"})
}

func toNoteResponse(n *domain.Note) noteResponse {
	resp := noteResponse{
		ID:        n.ID.String(),
		ProjectID: n.ProjectID.String(),
		Title:     n.Title,
		Content:   n.Content,
		Version:   n.Version,
		IsShared:  n.IsShared(),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	if n.CreatedBy != nil {
		s := n.CreatedBy.String()
		resp.CreatedBy = &s
	}
	if n.LastEditedBy != nil {
		s := n.LastEditedBy.String()
		resp.LastEditedBy = &s
	}
	return resp
}
