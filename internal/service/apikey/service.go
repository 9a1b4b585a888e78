// Package apikey implements the API key lifecycle: creation with a
// show-once secret, listing, one-way revocation, and request-time
// verification.
package apikey

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

// keyRepo defines the API key repository interface needed by the service.
type keyRepo interface {
	Create(ctx context.Context, k *domain.APIKey) (*domain.APIKey, error)
	GetByID(ctx context.Context, id, orgID uuid.UUID) (*domain.APIKey, error)
	ListByOrg(ctx context.Context, orgID uuid.UUID) ([]domain.APIKey, error)
	ListByPrefix(ctx context.Context, prefix string) ([]domain.APIKey, error)
	Revoke(ctx context.Context, id, orgID uuid.UUID) (*domain.APIKey, error)
}

// usageRecorder defines the usage metric interface needed by the service.
type usageRecorder interface {
	Record(ctx context.Context, orgID uuid.UUID, metric string, delta int64)
}

// Service implements API key operations.
type Service struct {
	log   *slog.Logger
	keys  keyRepo
	usage usageRecorder
}

// NewService creates a new API key service instance.
func NewService(logger *slog.Logger, keys keyRepo, usage usageRecorder) *Service {
	return &Service{
		log:   logger.With("service", "apikey"),
		keys:  keys,
		usage: usage,
	}
}
