package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/teamledger/teamledger-backend/internal/auth"
	"github.com/teamledger/teamledger-backend/internal/domain"
)

// ResolveSession turns a bearer session credential into a Principal.
//
// Validation is an explicit two-stage check. Stage one is stateless:
// signature and expiry, nothing else. Stage two consults persisted state:
// the user must still exist and be active, and — when the credential is
// org-scoped — a live membership for (user, org) must exist at request
// time. A credential alone is never sufficient once the membership is
// gone; this recheck is the one place statelessness is deliberately
// broken.
//
// The role and scopes on the returned principal come from the live
// membership, not from the token claim, so an out-of-band role change
// takes effect immediately.
func (s *Service) ResolveSession(ctx context.Context, token string) (*auth.Principal, error) {
	claims, err := s.tokens.ValidateSession(token)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth.ResolveSession get user: %w", err)
	}

	p := &auth.Principal{
		Kind:   auth.PrincipalSession,
		UserID: user.ID,
	}

	if claims.OrgID == nil {
		// User-only credential: may read own memberships, nothing more.
		return p, nil
	}

	if !user.IsActive {
		return nil, domain.ErrForbidden
	}

	membership, err := s.memberships.GetMembership(ctx, user.ID, *claims.OrgID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotAMember
		}
		return nil, fmt.Errorf("auth.ResolveSession get membership: %w", err)
	}

	p.OrgID = *claims.OrgID
	p.Role = membership.Role
	p.Scopes = auth.SessionScopes(membership.Role)

	return p, nil
}
