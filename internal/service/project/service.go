// Package project implements project CRUD and bundle import inside an
// organization.
package project

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

// projectRepo defines the project repository interface needed by the
// service.
type projectRepo interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	GetByID(ctx context.Context, id, orgID uuid.UUID) (*domain.Project, error)
	ListByOrg(ctx context.Context, orgID uuid.UUID) ([]domain.Project, error)
	Update(ctx context.Context, id, orgID uuid.UUID, name, description *string, status *domain.ProjectStatus) (*domain.Project, error)
}

// noteRepo defines the note repository interface needed for bundle
// import.
type noteRepo interface {
	Create(ctx context.Context, n *domain.Note) (*domain.Note, error)
}

// txManager defines the transaction manager interface needed by the
// service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements project operations.
type Service struct {
	log      *slog.Logger
	projects projectRepo
	notes    noteRepo
	tx       txManager
}

// NewService creates a new project service instance.
func NewService(logger *slog.Logger, projects projectRepo, notes noteRepo, tx txManager) *Service {
	return &Service{
		log:      logger.With("service", "project"),
		projects: projects,
		notes:    notes,
		tx:       tx,
	}
}
