package apikey

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

// List returns the organization's keys, newest first, with secret hashes
// stripped. Hashes never leave the process.
func (s *Service) List(ctx context.Context, orgID uuid.UUID) ([]domain.APIKey, error) {
	keys, err := s.keys.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("apikey.List: %w", err)
	}

	for i := range keys {
		keys[i].SecretHash = ""
	}

	return keys, nil
}

// Revoke deactivates a key. One-way and idempotent: revoking an already
// revoked key succeeds without change.
func (s *Service) Revoke(ctx context.Context, orgID, keyID uuid.UUID) (*domain.APIKey, error) {
	key, err := s.keys.Revoke(ctx, keyID, orgID)
	if err != nil {
		return nil, fmt.Errorf("apikey.Revoke: %w", err)
	}
	key.SecretHash = ""

	s.log.InfoContext(ctx, "api key revoked",
		slog.String("key_id", keyID.String()),
		slog.String("org_id", orgID.String()))

	return key, nil
}
