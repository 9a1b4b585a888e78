package organization

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

// Join redeems an invite token for the calling user. Joining is
// idempotent: if a membership already exists it is returned unchanged,
// new members always come in with the member role.
func (s *Service) Join(ctx context.Context, userID uuid.UUID, token string) (*domain.Membership, error) {
	orgID, err := s.invites.ValidateInvite(token)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.orgs.GetByID(ctx, orgID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("organization.Join get organization: %w", err)
	}

	existing, err := s.orgs.GetMembership(ctx, userID, orgID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("organization.Join get membership: %w", err)
	}

	membership, err := s.orgs.CreateMembership(ctx, &domain.Membership{
		ID:     uuid.New(),
		UserID: userID,
		OrgID:  orgID,
		Role:   domain.RoleMember,
	})
	if err != nil {
		// Lost a race with a concurrent join; the membership is there now.
		if errors.Is(err, domain.ErrAlreadyExists) {
			return s.orgs.GetMembership(ctx, userID, orgID)
		}
		return nil, fmt.Errorf("organization.Join create membership: %w", err)
	}

	s.log.InfoContext(ctx, "user joined organization",
		slog.String("user_id", userID.String()),
		slog.String("org_id", orgID.String()))

	return membership, nil
}
