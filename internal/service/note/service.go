// Package note implements versioned note editing and the share link
// lifecycle.
package note

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	postgresnote "github.com/teamledger/teamledger-backend/internal/adapter/postgres/note"
	"github.com/teamledger/teamledger-backend/internal/domain"
)

// noteRepo defines the note repository interface needed by the service.
type noteRepo interface {
	Create(ctx context.Context, n *domain.Note) (*domain.Note, error)
	GetByID(ctx context.Context, id, projectID, orgID uuid.UUID) (*domain.Note, error)
	ListByProject(ctx context.Context, projectID, orgID uuid.UUID) ([]domain.Note, error)
	UpdateVersioned(ctx context.Context, id, orgID uuid.UUID, p postgresnote.UpdateParams) (*domain.Note, error)
	SetShareToken(ctx context.Context, id, projectID, orgID uuid.UUID, token string, level domain.AccessLevel) (*domain.Note, error)
	ClearShareToken(ctx context.Context, id, projectID, orgID uuid.UUID) error
	GetByShareToken(ctx context.Context, token string) (*domain.Note, error)
	UpdateContentByShareToken(ctx context.Context, token, content string, expectedVersion *int) (*domain.Note, error)
	Delete(ctx context.Context, id, projectID, orgID uuid.UUID) error
}

// projectRepo defines the project repository interface needed to scope
// notes to a live project.
type projectRepo interface {
	GetByID(ctx context.Context, id, orgID uuid.UUID) (*domain.Project, error)
}

// usageRecorder defines the usage metric interface needed by the service.
type usageRecorder interface {
	Record(ctx context.Context, orgID uuid.UUID, metric string, delta int64)
}

// Service implements note operations.
type Service struct {
	log      *slog.Logger
	notes    noteRepo
	projects projectRepo
	usage    usageRecorder
}

// NewService creates a new note service instance.
func NewService(logger *slog.Logger, notes noteRepo, projects projectRepo, usage usageRecorder) *Service {
	return &Service{
		log:      logger.With("service", "note"),
		notes:    notes,
		projects: projects,
		usage:    usage,
	}
}
