package organization

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

// GenerateInvite issues a signed invite token for the organization. Any
// member may invite; the token carries only the organization ID and an
// expiry, so it can be redeemed by anyone who holds it until then.
func (s *Service) GenerateInvite(ctx context.Context, userID, orgID uuid.UUID) (string, error) {
	_, err := s.orgs.GetMembership(ctx, userID, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotAMember
		}
		return "", fmt.Errorf("organization.GenerateInvite get membership: %w", err)
	}

	token, err := s.invites.IssueInvite(orgID)
	if err != nil {
		return "", fmt.Errorf("organization.GenerateInvite issue token: %w", err)
	}

	s.log.InfoContext(ctx, "invite generated",
		slog.String("org_id", orgID.String()),
		slog.String("user_id", userID.String()))

	return token, nil
}
