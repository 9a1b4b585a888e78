package project

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type projectRepoMock struct {
	CreateFunc    func(ctx context.Context, p *domain.Project) (*domain.Project, error)
	GetByIDFunc   func(ctx context.Context, id, orgID uuid.UUID) (*domain.Project, error)
	ListByOrgFunc func(ctx context.Context, orgID uuid.UUID) ([]domain.Project, error)
	UpdateFunc    func(ctx context.Context, id, orgID uuid.UUID, name, description *string, status *domain.ProjectStatus) (*domain.Project, error)
}

func (m *projectRepoMock) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	return m.CreateFunc(ctx, p)
}

func (m *projectRepoMock) GetByID(ctx context.Context, id, orgID uuid.UUID) (*domain.Project, error) {
	return m.GetByIDFunc(ctx, id, orgID)
}

func (m *projectRepoMock) ListByOrg(ctx context.Context, orgID uuid.UUID) ([]domain.Project, error) {
	return m.ListByOrgFunc(ctx, orgID)
}

func (m *projectRepoMock) Update(ctx context.Context, id, orgID uuid.UUID, name, description *string, status *domain.ProjectStatus) (*domain.Project, error) {
	return m.UpdateFunc(ctx, id, orgID, name, description, status)
}

type noteRepoMock struct {
	CreateFunc func(ctx context.Context, n *domain.Note) (*domain.Note, error)
}

func (m *noteRepoMock) Create(ctx context.Context, n *domain.Note) (*domain.Note, error) {
	return m.CreateFunc(ctx, n)
}

// txManagerMock runs the callback inline and records whether it came
// back with an error, which is what triggers a rollback in the real
// manager.
type txManagerMock struct {
	calls      int
	rolledBack bool
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if err := fn(ctx); err != nil {
		m.rolledBack = true
		return err
	}
	return nil
}
