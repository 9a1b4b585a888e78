package apikey

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/auth"
	"github.com/teamledger/teamledger-backend/internal/domain"
)

// prefixLen is how many leading characters of the secret become the
// public key prefix.
const prefixLen = 8

// CreateInput holds parameters for API key creation.
type CreateInput struct {
	Name      string
	Scopes    []string
	ExpiresAt *time.Time
}

// Validate validates the creation input.
func (i CreateInput) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return domain.NewValidationError("name", "required")
	}
	if len(i.Name) > 255 {
		return domain.NewValidationError("name", "too long")
	}
	return nil
}

// CreateResult carries the created key together with its plaintext
// secret. This is the only moment the secret exists outside the caller;
// it is never stored and never shown again.
type CreateResult struct {
	Key    *domain.APIKey
	Secret string
}

// Create mints a new API key for the organization. Requires an admin
// caller; the handler layer enforces that before calling in.
func (s *Service) Create(ctx context.Context, orgID uuid.UUID, input CreateInput) (*CreateResult, error) {
	input.Name = strings.TrimSpace(input.Name)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	scopes, err := domain.ParseScopes(input.Scopes)
	if err != nil {
		return nil, err
	}

	if input.ExpiresAt != nil && !input.ExpiresAt.After(time.Now()) {
		return nil, domain.NewValidationError("expires_at", "must be in the future")
	}

	secret, hash, err := auth.GenerateSecret()
	if err != nil {
		return nil, fmt.Errorf("apikey.Create generate secret: %w", err)
	}

	key, err := s.keys.Create(ctx, &domain.APIKey{
		ID:         uuid.New(),
		OrgID:      orgID,
		Name:       input.Name,
		SecretHash: hash,
		KeyPrefix:  secret[:prefixLen],
		Scopes:     scopes,
		IsActive:   true,
		ExpiresAt:  input.ExpiresAt,
	})
	if err != nil {
		return nil, fmt.Errorf("apikey.Create: %w", err)
	}

	s.log.InfoContext(ctx, "api key created",
		slog.String("key_id", key.ID.String()),
		slog.String("org_id", orgID.String()),
		slog.String("prefix", key.KeyPrefix))

	return &CreateResult{Key: key, Secret: secret}, nil
}
