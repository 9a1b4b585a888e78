package organization

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

// ListForUser returns every organization the user is a member of.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Organization, error) {
	orgs, err := s.orgs.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("organization.ListForUser: %w", err)
	}
	return orgs, nil
}

// Get returns a single organization by ID.
func (s *Service) Get(ctx context.Context, orgID uuid.UUID) (*domain.Organization, error) {
	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("organization.Get: %w", err)
	}
	return org, nil
}
