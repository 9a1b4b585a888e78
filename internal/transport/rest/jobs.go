package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

// jobService defines the minimal interface needed by JobHandler.
type jobService interface {
	Submit(ctx context.Context, orgID uuid.UUID, jobType domain.JobType) (*domain.Job, error)
	Get(ctx context.Context, orgID, jobID uuid.UUID) (*domain.Job, error)
}

// JobHandler serves asynchronous job REST endpoints.
type JobHandler struct {
	svc jobService
	log *slog.Logger
}

// NewJobHandler creates a JobHandler.
func NewJobHandler(svc jobService, logger *slog.Logger) *JobHandler {
	return &JobHandler{svc: svc, log: logger.With("handler", "job")}
}

type jobResponse struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	ResultPath    *string    `json:"result_path,omitempty"`
	FailureReason *string    `json:"failure_reason,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// SubmitExport handles POST /api/v1/exports. Returns 202: the work
// happens later, poll the job to see it finish.
func (h *JobHandler) SubmitExport(w http.ResponseWriter, r *http.Request) {
	p, ok := orgPrincipal(w, r, domain.ScopeRead)
	if !ok {
		return
	}

	j, err := h.svc.Submit(r.Context(), p.OrgID, domain.JobTypeExport)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusAccepted, toJobResponse(j))
}

// Get handles GET /api/v1/jobs/{jobID}. Polling is a pure read; asking
// about a job never changes it.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := orgPrincipal(w, r, domain.ScopeRead)
	if !ok {
		return
	}

	jobID, ok := pathUUID(w, r, "jobID")
	if !ok {
		return
	}

	j, err := h.svc.Get(r.Context(), p.OrgID, jobID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeData(w, http.StatusOK, toJobResponse(j))
}

func toJobResponse(j *domain.Job) jobResponse {
	return jobResponse{
		ID:            j.ID.String(),
		Type:          j.Type.String(),
		Status:        j.Status.String(),
		ResultPath:    j.ResultPath,
		FailureReason: j.FailureReason,
		CreatedAt:     j.CreatedAt,
		StartedAt:     j.StartedAt,
		CompletedAt:   j.CompletedAt,
	}
}
