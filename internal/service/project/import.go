package project

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

// ImportNote is one note inside an import bundle.
type ImportNote struct {
	Title   string
	Content string
}

// ImportInput is a project bundle: the project plus its initial notes,
// created together.
type ImportInput struct {
	Name        string
	Description string
	Notes       []ImportNote
}

// Validate validates the import bundle.
func (i ImportInput) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return domain.NewValidationError("name", "required")
	}
	for idx, n := range i.Notes {
		if strings.TrimSpace(n.Title) == "" {
			return domain.NewValidationError(
				fmt.Sprintf("notes[%d].title", idx), "required")
		}
	}
	return nil
}

// Import creates a project together with its notes in one transaction.
// Either the whole bundle lands or none of it does. Author is nil for
// machine (API key) imports.
func (s *Service) Import(ctx context.Context, orgID uuid.UUID, author *uuid.UUID, input ImportInput) (*domain.Project, error) {
	input.Name = strings.TrimSpace(input.Name)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var created *domain.Project
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		p, err := s.projects.Create(ctx, &domain.Project{
			ID:          uuid.New(),
			OrgID:       orgID,
			Name:        input.Name,
			Description: input.Description,
			Status:      domain.ProjectStatusActive,
		})
		if err != nil {
			return fmt.Errorf("create project: %w", err)
		}

		for _, n := range input.Notes {
			_, err := s.notes.Create(ctx, &domain.Note{
				ID:        uuid.New(),
				ProjectID: p.ID,
				OrgID:     orgID,
				Title:     n.Title,
				Content:   n.Content,
				CreatedBy: author,
			})
			if err != nil {
				return fmt.Errorf("create note: %w", err)
			}
		}

		created = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("project.Import: %w", err)
	}

	s.log.InfoContext(ctx, "project imported",
		slog.String("project_id", created.ID.String()),
		slog.String("org_id", orgID.String()),
		slog.Int("notes", len(input.Notes)))

	return created, nil
}
