package project

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

// CreateInput holds parameters for project creation.
type CreateInput struct {
	Name        string
	Description string
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

// UpdateInput holds parameters for project update. Nil fields are left
// unchanged.
type UpdateInput struct {
	Name        *string
	Description *string
	Status      *domain.ProjectStatus
}

// Validate validates the update input.
func (i UpdateInput) Validate() error {
	if i.Name != nil {
		if strings.TrimSpace(*i.Name) == "" {
			return domain.NewValidationError("name", "required")
		}
		if len(*i.Name) > 255 {
			return domain.NewValidationError("name", "too long")
		}
	}
	if i.Status != nil && !i.Status.IsValid() {
		return domain.NewValidationError("status", "must be one of active, completed, archived")
	}
	return nil
}

// Create creates a project in the organization. New projects start
// active.
func (s *Service) Create(ctx context.Context, orgID uuid.UUID, input CreateInput) (*domain.Project, error) {
	input.Name = strings.TrimSpace(input.Name)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	p, err := s.projects.Create(ctx, &domain.Project{
		ID:          uuid.New(),
		OrgID:       orgID,
		Name:        input.Name,
		Description: input.Description,
		Status:      domain.ProjectStatusActive,
	})
	if err != nil {
		return nil, fmt.Errorf("project.Create: %w", err)
	}

	s.log.InfoContext(ctx, "project created",
		slog.String("project_id", p.ID.String()),
		slog.String("org_id", orgID.String()))

	return p, nil
}

// Get returns a project scoped to the organization.
func (s *Service) Get(ctx context.Context, orgID, projectID uuid.UUID) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, projectID, orgID)
	if err != nil {
		return nil, fmt.Errorf("project.Get: %w", err)
	}
	return p, nil
}

// List returns all projects in the organization, newest first.
func (s *Service) List(ctx context.Context, orgID uuid.UUID) ([]domain.Project, error) {
	projects, err := s.projects.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("project.List: %w", err)
	}
	return projects, nil
}

// Update modifies a project. Nil fields in the input are left unchanged.
func (s *Service) Update(ctx context.Context, orgID, projectID uuid.UUID, input UpdateInput) (*domain.Project, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	p, err := s.projects.Update(ctx, projectID, orgID, input.Name, input.Description, input.Status)
	if err != nil {
		return nil, fmt.Errorf("project.Update: %w", err)
	}

	return p, nil
}
