package organization

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Acme Corp", "acme-corp"},
		{"  Acme   Corp  ", "acme-corp"},
		{"Acme, Corp!", "acme-corp"},
		{"ACME", "acme"},
		{"a--b", "a-b"},
		{"-leading and trailing-", "leading-and-trailing"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.name); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestCreate_Success(t *testing.T) {
	userID := uuid.New()

	var createdOrg *domain.Organization
	var createdMembership *domain.Membership
	orgs := &orgRepoMock{
		SlugExistsFunc: func(ctx context.Context, slug string) (bool, error) {
			return false, nil
		},
		CreateFunc: func(ctx context.Context, org *domain.Organization) (*domain.Organization, error) {
			createdOrg = org
			return org, nil
		},
		CreateMembershipFunc: func(ctx context.Context, m *domain.Membership) (*domain.Membership, error) {
			createdMembership = m
			return m, nil
		},
	}

	svc := NewService(testLogger(), orgs, &txManagerMock{}, &inviteTokensMock{})

	org, err := svc.Create(context.Background(), userID, CreateInput{Name: "Acme Corp"})
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", org.Name)
	assert.Equal(t, "acme-corp", org.Slug)
	require.NotNil(t, createdOrg)
	require.NotNil(t, createdMembership)
	assert.Equal(t, userID, createdMembership.UserID)
	assert.Equal(t, createdOrg.ID, createdMembership.OrgID)
	assert.Equal(t, domain.RoleOwner, createdMembership.Role, "creator becomes the owner")
}

func TestCreate_SlugCollision(t *testing.T) {
	taken := map[string]bool{"acme": true, "acme-1": true}
	orgs := &orgRepoMock{
		SlugExistsFunc: func(ctx context.Context, slug string) (bool, error) {
			return taken[slug], nil
		},
		CreateFunc: func(ctx context.Context, org *domain.Organization) (*domain.Organization, error) {
			return org, nil
		},
		CreateMembershipFunc: func(ctx context.Context, m *domain.Membership) (*domain.Membership, error) {
			return m, nil
		},
	}

	svc := NewService(testLogger(), orgs, &txManagerMock{}, &inviteTokensMock{})

	org, err := svc.Create(context.Background(), uuid.New(), CreateInput{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "acme-2", org.Slug)
}

func TestCreate_UnsluggableNameFallsBack(t *testing.T) {
	orgs := &orgRepoMock{
		SlugExistsFunc: func(ctx context.Context, slug string) (bool, error) {
			return false, nil
		},
		CreateFunc: func(ctx context.Context, org *domain.Organization) (*domain.Organization, error) {
			return org, nil
		},
		CreateMembershipFunc: func(ctx context.Context, m *domain.Membership) (*domain.Membership, error) {
			return m, nil
		},
	}

	svc := NewService(testLogger(), orgs, &txManagerMock{}, &inviteTokensMock{})

	org, err := svc.Create(context.Background(), uuid.New(), CreateInput{Name: "!!!"})
	require.NoError(t, err)
	assert.Equal(t, "org", org.Slug)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(testLogger(), &orgRepoMock{}, &txManagerMock{}, &inviteTokensMock{})

	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
