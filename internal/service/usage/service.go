// Package usage implements per-organization usage counters.
package usage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

// usageRepo defines the usage repository interface needed by the service.
type usageRepo interface {
	Increment(ctx context.Context, orgID uuid.UUID, metric string, amount int64) error
	ListByOrg(ctx context.Context, orgID uuid.UUID) ([]domain.UsageRecord, error)
}

// Service implements usage counter operations.
type Service struct {
	log     *slog.Logger
	records usageRepo
}

// NewService creates a new usage service instance.
func NewService(logger *slog.Logger, records usageRepo) *Service {
	return &Service{
		log:     logger.With("service", "usage"),
		records: records,
	}
}

// Record increments a metric counter. Best effort: a failed increment is
// logged and swallowed so that billing accounting can never fail the
// request it is accounting for.
func (s *Service) Record(ctx context.Context, orgID uuid.UUID, metric string, delta int64) {
	if err := s.records.Increment(ctx, orgID, metric, delta); err != nil {
		s.log.ErrorContext(ctx, "usage increment failed",
			slog.String("org_id", orgID.String()),
			slog.String("metric", metric),
			slog.String("error", err.Error()))
	}
}

// List returns the organization's counters.
func (s *Service) List(ctx context.Context, orgID uuid.UUID) ([]domain.UsageRecord, error) {
	records, err := s.records.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("usage.List: %w", err)
	}
	return records, nil
}
