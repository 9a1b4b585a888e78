// Package auth implements identity and tenancy operations: registration,
// login, organization switching, and session resolution.
package auth

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/auth"
	"github.com/teamledger/teamledger-backend/internal/config"
	"github.com/teamledger/teamledger-backend/internal/domain"
)

// userRepo defines the user repository interface needed by the auth service.
type userRepo interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// membershipRepo defines the membership lookup interface needed by the
// auth service.
type membershipRepo interface {
	GetMembership(ctx context.Context, userID, orgID uuid.UUID) (*domain.Membership, error)
}

// tokenManager defines the credential issuance interface needed by the
// auth service.
type tokenManager interface {
	IssueSession(userID uuid.UUID, orgID *uuid.UUID, role string) (string, error)
	ValidateSession(token string) (*auth.SessionClaims, error)
}

// Service implements auth operations.
type Service struct {
	log         *slog.Logger
	users       userRepo
	memberships membershipRepo
	tokens      tokenManager
	cfg         config.AuthConfig
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	memberships membershipRepo,
	tokens tokenManager,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:         logger.With("service", "auth"),
		users:       users,
		memberships: memberships,
		tokens:      tokens,
		cfg:         cfg,
	}
}
