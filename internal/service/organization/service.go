// Package organization implements organization lifecycle: creation with
// slug derivation, membership listing, and the invite/join flow.
package organization

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

// orgRepo defines the organization repository interface needed by the
// organization service.
type orgRepo interface {
	Create(ctx context.Context, org *domain.Organization) (*domain.Organization, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Organization, error)
	CreateMembership(ctx context.Context, m *domain.Membership) (*domain.Membership, error)
	GetMembership(ctx context.Context, userID, orgID uuid.UUID) (*domain.Membership, error)
}

// txManager defines the transaction manager interface needed by the
// organization service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// inviteTokens defines the invite token interface needed by the
// organization service.
type inviteTokens interface {
	IssueInvite(orgID uuid.UUID) (string, error)
	ValidateInvite(token string) (uuid.UUID, error)
}

// Service implements organization operations.
type Service struct {
	log     *slog.Logger
	orgs    orgRepo
	tx      txManager
	invites inviteTokens
}

// NewService creates a new organization service instance.
func NewService(logger *slog.Logger, orgs orgRepo, tx txManager, invites inviteTokens) *Service {
	return &Service{
		log:     logger.With("service", "organization"),
		orgs:    orgs,
		tx:      tx,
		invites: invites,
	}
}
