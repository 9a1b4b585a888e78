package note

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	postgresnote "github.com/teamledger/teamledger-backend/internal/adapter/postgres/note"
	"github.com/teamledger/teamledger-backend/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type noteRepoMock struct {
	CreateFunc                    func(ctx context.Context, n *domain.Note) (*domain.Note, error)
	GetByIDFunc                   func(ctx context.Context, id, projectID, orgID uuid.UUID) (*domain.Note, error)
	ListByProjectFunc             func(ctx context.Context, projectID, orgID uuid.UUID) ([]domain.Note, error)
	UpdateVersionedFunc           func(ctx context.Context, id, orgID uuid.UUID, p postgresnote.UpdateParams) (*domain.Note, error)
	SetShareTokenFunc             func(ctx context.Context, id, projectID, orgID uuid.UUID, token string, level domain.AccessLevel) (*domain.Note, error)
	ClearShareTokenFunc           func(ctx context.Context, id, projectID, orgID uuid.UUID) error
	GetByShareTokenFunc           func(ctx context.Context, token string) (*domain.Note, error)
	UpdateContentByShareTokenFunc func(ctx context.Context, token, content string, expectedVersion *int) (*domain.Note, error)
	DeleteFunc                    func(ctx context.Context, id, projectID, orgID uuid.UUID) error
}

func (m *noteRepoMock) Create(ctx context.Context, n *domain.Note) (*domain.Note, error) {
	return m.CreateFunc(ctx, n)
}

func (m *noteRepoMock) GetByID(ctx context.Context, id, projectID, orgID uuid.UUID) (*domain.Note, error) {
	return m.GetByIDFunc(ctx, id, projectID, orgID)
}

func (m *noteRepoMock) ListByProject(ctx context.Context, projectID, orgID uuid.UUID) ([]domain.Note, error) {
	return m.ListByProjectFunc(ctx, projectID, orgID)
}

func (m *noteRepoMock) UpdateVersioned(ctx context.Context, id, orgID uuid.UUID, p postgresnote.UpdateParams) (*domain.Note, error) {
	return m.UpdateVersionedFunc(ctx, id, orgID, p)
}

func (m *noteRepoMock) SetShareToken(ctx context.Context, id, projectID, orgID uuid.UUID, token string, level domain.AccessLevel) (*domain.Note, error) {
	return m.SetShareTokenFunc(ctx, id, projectID, orgID, token, level)
}

func (m *noteRepoMock) ClearShareToken(ctx context.Context, id, projectID, orgID uuid.UUID) error {
	return m.ClearShareTokenFunc(ctx, id, projectID, orgID)
}

func (m *noteRepoMock) GetByShareToken(ctx context.Context, token string) (*domain.Note, error) {
	return m.GetByShareTokenFunc(ctx, token)
}

func (m *noteRepoMock) UpdateContentByShareToken(ctx context.Context, token, content string, expectedVersion *int) (*domain.Note, error) {
	return m.UpdateContentByShareTokenFunc(ctx, token, content, expectedVersion)
}

func (m *noteRepoMock) Delete(ctx context.Context, id, projectID, orgID uuid.UUID) error {
	return m.DeleteFunc(ctx, id, projectID, orgID)
}

type projectRepoMock struct {
	GetByIDFunc func(ctx context.Context, id, orgID uuid.UUID) (*domain.Project, error)
}

func (m *projectRepoMock) GetByID(ctx context.Context, id, orgID uuid.UUID) (*domain.Project, error) {
	return m.GetByIDFunc(ctx, id, orgID)
}

type usageRecorderMock struct {
	records []string
}

func (m *usageRecorderMock) Record(ctx context.Context, orgID uuid.UUID, metric string, delta int64) {
	m.records = append(m.records, metric)
}
