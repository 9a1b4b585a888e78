package apikey

import (
	"context"
	"fmt"
	"time"

	"github.com/teamledger/teamledger-backend/internal/auth"
	"github.com/teamledger/teamledger-backend/internal/domain"
)

// usageMetricAPICalls counts verified API key requests per organization.
const usageMetricAPICalls = "api_calls"

// Verify authenticates a presented API key secret and returns the key
// principal.
//
// Lookup goes through the public prefix, then the full secret is checked
// against each candidate's stored hash in constant time. Every failure
// mode — unknown prefix, hash mismatch, revoked, expired — collapses
// into the same domain.ErrInvalidKey so a probing caller learns nothing
// about which keys exist.
func (s *Service) Verify(ctx context.Context, secret string) (*auth.Principal, error) {
	if len(secret) < prefixLen {
		return nil, domain.ErrInvalidKey
	}

	candidates, err := s.keys.ListByPrefix(ctx, secret[:prefixLen])
	if err != nil {
		return nil, fmt.Errorf("apikey.Verify list by prefix: %w", err)
	}

	for i := range candidates {
		key := &candidates[i]
		if !auth.SecretEqual(secret, key.SecretHash) {
			continue
		}
		if !key.IsActive || key.IsExpired(time.Now()) {
			return nil, domain.ErrInvalidKey
		}

		s.usage.Record(ctx, key.OrgID, usageMetricAPICalls, 1)

		return &auth.Principal{
			Kind:   auth.PrincipalAPIKey,
			OrgID:  key.OrgID,
			Scopes: key.Scopes,
		}, nil
	}

	return nil, domain.ErrInvalidKey
}
