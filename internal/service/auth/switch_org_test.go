package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

func TestSwitchOrganization_Success(t *testing.T) {
	userID := uuid.New()
	orgID := uuid.New()

	users := &userRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: id, IsActive: true}, nil
		},
	}
	memberships := &membershipRepoMock{
		GetMembershipFunc: func(ctx context.Context, uID, oID uuid.UUID) (*domain.Membership, error) {
			assert.Equal(t, userID, uID)
			assert.Equal(t, orgID, oID)
			return &domain.Membership{UserID: uID, OrgID: oID, Role: domain.RoleAdmin}, nil
		},
	}
	tokens := &tokenManagerMock{
		IssueSessionFunc: func(uID uuid.UUID, oID *uuid.UUID, role string) (string, error) {
			require.NotNil(t, oID)
			assert.Equal(t, orgID, *oID)
			assert.Equal(t, "admin", role, "role claim comes from the live membership")
			return "org-scoped-token", nil
		},
	}

	svc := NewService(testLogger(), users, memberships, tokens, testAuthConfig())

	token, err := svc.SwitchOrganization(context.Background(), userID, orgID)
	require.NoError(t, err)
	assert.Equal(t, "org-scoped-token", token)
}

func TestSwitchOrganization_NotAMember(t *testing.T) {
	users := &userRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: id, IsActive: true}, nil
		},
	}
	memberships := &membershipRepoMock{
		GetMembershipFunc: func(ctx context.Context, userID, orgID uuid.UUID) (*domain.Membership, error) {
			return nil, domain.ErrNotFound
		},
	}
	tokens := &tokenManagerMock{}

	svc := NewService(testLogger(), users, memberships, tokens, testAuthConfig())

	_, err := svc.SwitchOrganization(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotAMember)
	assert.Zero(t, tokens.issueCalls)
}

func TestSwitchOrganization_InactiveUser(t *testing.T) {
	users := &userRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: id, IsActive: false}, nil
		},
	}

	svc := NewService(testLogger(), users, &membershipRepoMock{}, &tokenManagerMock{}, testAuthConfig())

	_, err := svc.SwitchOrganization(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
