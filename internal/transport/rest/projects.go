package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/domain"
	"github.com/teamledger/teamledger-backend/internal/service/project"
)

// projectService defines the minimal interface needed by ProjectHandler.
type projectService interface {
	Create(ctx context.Context, orgID uuid.UUID, input project.CreateInput) (*domain.Project, error)
	Get(ctx context.Context, orgID, projectID uuid.UUID) (*domain.Project, error)
	List(ctx context.Context, orgID uuid.UUID) ([]domain.Project, error)
	Update(ctx context.Context, orgID, projectID uuid.UUID, input project.UpdateInput) (*domain.Project, error)
	Import(ctx context.Context, orgID uuid.UUID, author *uuid.UUID, input project.ImportInput) (*domain.Project, error)
}

// ProjectHandler serves project REST endpoints.
type ProjectHandler struct {
	svc projectService
	log *slog.Logger
}

// NewProjectHandler creates a ProjectHandler.
func NewProjectHandler(svc projectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{svc: svc, log: logger.With("handler", "project")}
}

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

type importProjectRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Notes       []importNoteRequest `json:"notes"`
}

type importNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type projectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Create handles POST /api/v1/projects.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := orgPrincipal(w, r, domain.ScopeWrite)
	if !ok {
		return
	}

	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	proj, err := h.svc.Create(r.Context(), p.OrgID, project.CreateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusCreated, toProjectResponse(proj))
}

// List handles GET /api/v1/projects.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := orgPrincipal(w, r, domain.ScopeRead)
	if !ok {
		return
	}

	projects, err := h.svc.List(r.Context(), p.OrgID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]projectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, toProjectResponse(&projects[i]))
	}

	writeData(w, http.StatusOK, out)
}

// Get handles GET /api/v1/projects/{projectID}.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := orgPrincipal(w, r, domain.ScopeRead)
	if !ok {
		return
	}

	projectID, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}

	proj, err := h.svc.Get(r.Context(), p.OrgID, projectID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusOK, toProjectResponse(proj))
}

// Update handles PATCH /api/v1/projects/{projectID}.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := orgPrincipal(w, r, domain.ScopeWrite)
	if !ok {
		return
	}

	projectID, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}

	var req updateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	input := project.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Status != nil {
		status := domain.ProjectStatus(*req.Status)
		input.Status = &status
	}

	proj, err := h.svc.Update(r.Context(), p.OrgID, projectID, input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusOK, toProjectResponse(proj))
}

// Import handles POST /api/v1/projects/import.
func (h *ProjectHandler) Import(w http.ResponseWriter, r *http.Request) {
	p, ok := orgPrincipal(w, r, domain.ScopeWrite)
	if !ok {
		return
	}

	var req importProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	input := project.ImportInput{
		Name:        req.Name,
		Description: req.Description,
		Notes:       make([]project.ImportNote, 0, len(req.Notes)),
	}
	for _, n := range req.Notes {
		input.Notes = append(input.Notes, project.ImportNote{
			Title:   n.Title,
			Content: n.Content,
		})
	}

	proj, err := h.svc.Import(r.Context(), p.OrgID, authorID(p), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusCreated, toProjectResponse(proj))
}

func toProjectResponse(p *domain.Project) projectResponse {
	return projectResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status.String(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
