package job

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type jobRepoMock struct {
	mu sync.Mutex

	CreateFunc         func(ctx context.Context, j *domain.Job) (*domain.Job, error)
	GetByIDFunc        func(ctx context.Context, id, orgID uuid.UUID) (*domain.Job, error)
	GetFunc            func(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	ClaimFunc          func(ctx context.Context, id uuid.UUID) (bool, error)
	CompleteFunc       func(ctx context.Context, id uuid.UUID, resultPath string) error
	FailFunc           func(ctx context.Context, id uuid.UUID, reason string) error
	ListPendingIDsFunc func(ctx context.Context, limit int) ([]uuid.UUID, error)

	completed []string
	failed    []string
}

func (m *jobRepoMock) Create(ctx context.Context, j *domain.Job) (*domain.Job, error) {
	return m.CreateFunc(ctx, j)
}

func (m *jobRepoMock) GetByID(ctx context.Context, id, orgID uuid.UUID) (*domain.Job, error) {
	return m.GetByIDFunc(ctx, id, orgID)
}

func (m *jobRepoMock) Get(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	return m.GetFunc(ctx, id)
}

func (m *jobRepoMock) Claim(ctx context.Context, id uuid.UUID) (bool, error) {
	return m.ClaimFunc(ctx, id)
}

func (m *jobRepoMock) Complete(ctx context.Context, id uuid.UUID, resultPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, id, resultPath)
	}
	m.completed = append(m.completed, resultPath)
	return nil
}

func (m *jobRepoMock) Fail(ctx context.Context, id uuid.UUID, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailFunc != nil {
		return m.FailFunc(ctx, id, reason)
	}
	m.failed = append(m.failed, reason)
	return nil
}

func (m *jobRepoMock) ListPendingIDs(ctx context.Context, limit int) ([]uuid.UUID, error) {
	if m.ListPendingIDsFunc != nil {
		return m.ListPendingIDsFunc(ctx, limit)
	}
	return nil, nil
}

func (m *jobRepoMock) completedPaths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.completed...)
}

func (m *jobRepoMock) failureReasons() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.failed...)
}

type enqueuerMock struct {
	full bool
	ids  []uuid.UUID
}

func (m *enqueuerMock) Enqueue(id uuid.UUID) bool {
	if m.full {
		return false
	}
	m.ids = append(m.ids, id)
	return true
}

// executorFunc adapts a function to the Executor interface.
type executorFunc func(ctx context.Context, j *domain.Job) (string, error)

func (f executorFunc) Execute(ctx context.Context, j *domain.Job) (string, error) {
	return f(ctx, j)
}
