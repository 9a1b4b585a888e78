package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

// SwitchOrganization re-issues the caller's session credential with the
// given organization as the active tenant. This is the only way to change
// the active organization.
//
// The prior credential is superseded but not revoked: both remain valid
// until their own expiry, since sessions are stateless. Authorization is
// still safe because every tenant-scoped request rechecks the live
// membership (see ResolveSession).
//
// Returns domain.ErrNotAMember if no membership exists, domain.ErrForbidden
// if the user account is inactive.
func (s *Service) SwitchOrganization(ctx context.Context, userID, orgID uuid.UUID) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("auth.SwitchOrganization get user: %w", err)
	}
	if !user.IsActive {
		return "", domain.ErrForbidden
	}

	membership, err := s.memberships.GetMembership(ctx, userID, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotAMember
		}
		return "", fmt.Errorf("auth.SwitchOrganization get membership: %w", err)
	}

	token, err := s.tokens.IssueSession(userID, &orgID, membership.Role.String())
	if err != nil {
		return "", fmt.Errorf("auth.SwitchOrganization issue session: %w", err)
	}

	s.log.InfoContext(ctx, "organization switched",
		slog.String("user_id", userID.String()),
		slog.String("org_id", orgID.String()))

	return token, nil
}
