package organization

import (
	"context"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

type orgRepoMock struct {
	CreateFunc           func(ctx context.Context, org *domain.Organization) (*domain.Organization, error)
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
	SlugExistsFunc       func(ctx context.Context, slug string) (bool, error)
	ListByUserFunc       func(ctx context.Context, userID uuid.UUID) ([]domain.Organization, error)
	CreateMembershipFunc func(ctx context.Context, m *domain.Membership) (*domain.Membership, error)
	GetMembershipFunc    func(ctx context.Context, userID, orgID uuid.UUID) (*domain.Membership, error)
}

func (m *orgRepoMock) Create(ctx context.Context, org *domain.Organization) (*domain.Organization, error) {
	return m.CreateFunc(ctx, org)
}

func (m *orgRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *orgRepoMock) SlugExists(ctx context.Context, slug string) (bool, error) {
	return m.SlugExistsFunc(ctx, slug)
}

func (m *orgRepoMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Organization, error) {
	return m.ListByUserFunc(ctx, userID)
}

func (m *orgRepoMock) CreateMembership(ctx context.Context, mem *domain.Membership) (*domain.Membership, error) {
	return m.CreateMembershipFunc(ctx, mem)
}

func (m *orgRepoMock) GetMembership(ctx context.Context, userID, orgID uuid.UUID) (*domain.Membership, error) {
	return m.GetMembershipFunc(ctx, userID, orgID)
}

// txManagerMock runs the callback directly without a transaction.
type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type inviteTokensMock struct {
	IssueInviteFunc    func(orgID uuid.UUID) (string, error)
	ValidateInviteFunc func(token string) (uuid.UUID, error)
}

func (m *inviteTokensMock) IssueInvite(orgID uuid.UUID) (string, error) {
	return m.IssueInviteFunc(orgID)
}

func (m *inviteTokensMock) ValidateInvite(token string) (uuid.UUID, error) {
	return m.ValidateInviteFunc(token)
}
