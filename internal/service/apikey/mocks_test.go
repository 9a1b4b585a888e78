package apikey

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

type keyRepoMock struct {
	CreateFunc       func(ctx context.Context, k *domain.APIKey) (*domain.APIKey, error)
	GetByIDFunc      func(ctx context.Context, id, orgID uuid.UUID) (*domain.APIKey, error)
	ListByOrgFunc    func(ctx context.Context, orgID uuid.UUID) ([]domain.APIKey, error)
	ListByPrefixFunc func(ctx context.Context, prefix string) ([]domain.APIKey, error)
	RevokeFunc       func(ctx context.Context, id, orgID uuid.UUID) (*domain.APIKey, error)
}

func (m *keyRepoMock) Create(ctx context.Context, k *domain.APIKey) (*domain.APIKey, error) {
	return m.CreateFunc(ctx, k)
}

func (m *keyRepoMock) GetByID(ctx context.Context, id, orgID uuid.UUID) (*domain.APIKey, error) {
	return m.GetByIDFunc(ctx, id, orgID)
}

func (m *keyRepoMock) ListByOrg(ctx context.Context, orgID uuid.UUID) ([]domain.APIKey, error) {
	return m.ListByOrgFunc(ctx, orgID)
}

func (m *keyRepoMock) ListByPrefix(ctx context.Context, prefix string) ([]domain.APIKey, error) {
	return m.ListByPrefixFunc(ctx, prefix)
}

func (m *keyRepoMock) Revoke(ctx context.Context, id, orgID uuid.UUID) (*domain.APIKey, error) {
	return m.RevokeFunc(ctx, id, orgID)
}

type usageRecorderMock struct {
	records []usageRecord
}

type usageRecord struct {
	orgID  uuid.UUID
	metric string
	delta  int64
}

func (m *usageRecorderMock) Record(ctx context.Context, orgID uuid.UUID, metric string, delta int64) {
	m.records = append(m.records, usageRecord{orgID: orgID, metric: metric, delta: delta})
}
