package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/auth"
	"github.com/teamledger/teamledger-backend/internal/domain"
)

type userRepoMock struct {
	CreateFunc     func(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func (m *userRepoMock) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return m.CreateFunc(ctx, user)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

type membershipRepoMock struct {
	GetMembershipFunc func(ctx context.Context, userID, orgID uuid.UUID) (*domain.Membership, error)
}

func (m *membershipRepoMock) GetMembership(ctx context.Context, userID, orgID uuid.UUID) (*domain.Membership, error) {
	return m.GetMembershipFunc(ctx, userID, orgID)
}

type tokenManagerMock struct {
	IssueSessionFunc    func(userID uuid.UUID, orgID *uuid.UUID, role string) (string, error)
	ValidateSessionFunc func(token string) (*auth.SessionClaims, error)

	issueCalls int
}

func (m *tokenManagerMock) IssueSession(userID uuid.UUID, orgID *uuid.UUID, role string) (string, error) {
	m.issueCalls++
	return m.IssueSessionFunc(userID, orgID, role)
}

func (m *tokenManagerMock) ValidateSession(token string) (*auth.SessionClaims, error) {
	return m.ValidateSessionFunc(token)
}
