package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

// usageService defines the minimal interface needed by UsageHandler.
type usageService interface {
	List(ctx context.Context, orgID uuid.UUID) ([]domain.UsageRecord, error)
}

// UsageHandler serves usage counter REST endpoints.
type UsageHandler struct {
	svc usageService
	log *slog.Logger
}

// NewUsageHandler creates a UsageHandler.
func NewUsageHandler(svc usageService, logger *slog.Logger) *UsageHandler {
	return &UsageHandler{svc: svc, log: logger.With("handler", "usage")}
}

type usageResponse struct {
	Metric    string    `json:"metric"`
	Value     int64     `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// List handles GET /api/v1/usage.
func (h *UsageHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := orgPrincipal(w, r, domain.ScopeRead)
	if !ok {
		return
	}

	records, err := h.svc.List(r.Context(), p.OrgID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]usageResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, usageResponse{
			Metric:    rec.Metric,
			Value:     rec.Value,
			UpdatedAt: rec.UpdatedAt,
		})
	}

	writeData(w, http.StatusOK, out)
}
