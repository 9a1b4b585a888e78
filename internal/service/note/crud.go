package note

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	postgresnote "github.com/teamledger/teamledger-backend/internal/adapter/postgres/note"
	"github.com/teamledger/teamledger-backend/internal/domain"
)

// usageMetricNotesCreated counts note creations per organization.
const usageMetricNotesCreated = "notes_created"

// CreateInput holds parameters for note creation.
type CreateInput struct {
	Title   string
	Content string
}

// Validate validates the creation input.
func (i CreateInput) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return domain.NewValidationError("title", "required")
	}
	if len(i.Title) > 500 {
		return domain.NewValidationError("title", "too long")
	}
	return nil
}

// UpdateInput holds parameters for a versioned note update. Nil
// Title/Content are left unchanged. ExpectedVersion nil skips conflict
// detection.
type UpdateInput struct {
	Title           *string
	Content         *string
	ExpectedVersion *int
}

// Validate validates the update input.
func (i UpdateInput) Validate() error {
	if i.Title == nil && i.Content == nil {
		return domain.NewValidationError("title", "nothing to update")
	}
	if i.Title != nil && strings.TrimSpace(*i.Title) == "" {
		return domain.NewValidationError("title", "required")
	}
	if i.ExpectedVersion != nil && *i.ExpectedVersion < 1 {
		return domain.NewValidationError("expected_version", "must be positive")
	}
	return nil
}

// Create creates a note at version 1 inside the project. Author is nil
// for machine (API key) creation.
func (s *Service) Create(ctx context.Context, orgID, projectID uuid.UUID, author *uuid.UUID, input CreateInput) (*domain.Note, error) {
	input.Title = strings.TrimSpace(input.Title)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	// The project must exist in this org; a bare FK error would not
	// distinguish a foreign project from a missing one.
	if _, err := s.projects.GetByID(ctx, projectID, orgID); err != nil {
		return nil, fmt.Errorf("note.Create get project: %w", err)
	}

	n, err := s.notes.Create(ctx, &domain.Note{
		ID:        uuid.New(),
		ProjectID: projectID,
		OrgID:     orgID,
		Title:     input.Title,
		Content:   input.Content,
		CreatedBy: author,
	})
	if err != nil {
		return nil, fmt.Errorf("note.Create: %w", err)
	}

	s.usage.Record(ctx, orgID, usageMetricNotesCreated, 1)

	s.log.InfoContext(ctx, "note created",
		slog.String("note_id", n.ID.String()),
		slog.String("project_id", projectID.String()))

	return n, nil
}

// Get returns a note scoped to its project and organization.
func (s *Service) Get(ctx context.Context, orgID, projectID, noteID uuid.UUID) (*domain.Note, error) {
	n, err := s.notes.GetByID(ctx, noteID, projectID, orgID)
	if err != nil {
		return nil, fmt.Errorf("note.Get: %w", err)
	}
	return n, nil
}

// List returns all notes in a project, newest first.
func (s *Service) List(ctx context.Context, orgID, projectID uuid.UUID) ([]domain.Note, error) {
	notes, err := s.notes.ListByProject(ctx, projectID, orgID)
	if err != nil {
		return nil, fmt.Errorf("note.List: %w", err)
	}
	return notes, nil
}

// Update applies a versioned mutation. Editor is nil for machine (API
// key) edits. A stale ExpectedVersion returns domain.ErrConflict; the
// note is untouched and the caller is expected to re-read and retry.
func (s *Service) Update(ctx context.Context, orgID, projectID, noteID uuid.UUID, editor *uuid.UUID, input UpdateInput) (*domain.Note, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Scope through the project path before mutating by (id, org) alone.
	if _, err := s.notes.GetByID(ctx, noteID, projectID, orgID); err != nil {
		return nil, fmt.Errorf("note.Update get note: %w", err)
	}

	n, err := s.notes.UpdateVersioned(ctx, noteID, orgID, postgresnote.UpdateParams{
		Title:           input.Title,
		Content:         input.Content,
		EditedBy:        editor,
		ExpectedVersion: input.ExpectedVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("note.Update: %w", err)
	}

	return n, nil
}

// Delete removes a note.
func (s *Service) Delete(ctx context.Context, orgID, projectID, noteID uuid.UUID) error {
	if err := s.notes.Delete(ctx, noteID, projectID, orgID); err != nil {
		return fmt.Errorf("note.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "note deleted",
		slog.String("note_id", noteID.String()))

	return nil
}
