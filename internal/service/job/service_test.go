package job

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

func TestSubmit_Success(t *testing.T) {
	orgID := uuid.New()

	jobs := &jobRepoMock{
		CreateFunc: func(ctx context.Context, j *domain.Job) (*domain.Job, error) {
			j.Status = domain.JobStatusPending
			return j, nil
		},
	}
	queue := &enqueuerMock{}

	svc := NewService(testLogger(), jobs, queue)

	j, err := svc.Submit(context.Background(), orgID, domain.JobTypeExport)
	require.NoError(t, err)

	assert.Equal(t, domain.JobStatusPending, j.Status)
	assert.Equal(t, orgID, j.OrgID)
	require.Len(t, queue.ids, 1)
	assert.Equal(t, j.ID, queue.ids[0])
}

func TestSubmit_QueueFullStillSucceeds(t *testing.T) {
	jobs := &jobRepoMock{
		CreateFunc: func(ctx context.Context, j *domain.Job) (*domain.Job, error) {
			j.Status = domain.JobStatusPending
			return j, nil
		},
	}

	svc := NewService(testLogger(), jobs, &enqueuerMock{full: true})

	// The pending row is durable; a full queue only delays execution.
	j, err := svc.Submit(context.Background(), uuid.New(), domain.JobTypeExport)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusPending, j.Status)
}

func TestSubmit_UnknownType(t *testing.T) {
	svc := NewService(testLogger(), &jobRepoMock{}, &enqueuerMock{})

	_, err := svc.Submit(context.Background(), uuid.New(), domain.JobType("teleport"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGet_ScopedToOrg(t *testing.T) {
	orgID := uuid.New()
	jobID := uuid.New()

	jobs := &jobRepoMock{
		GetByIDFunc: func(ctx context.Context, id, oID uuid.UUID) (*domain.Job, error) {
			assert.Equal(t, jobID, id)
			assert.Equal(t, orgID, oID)
			return &domain.Job{ID: id, OrgID: oID, Status: domain.JobStatusProcessing}, nil
		},
	}

	svc := NewService(testLogger(), jobs, &enqueuerMock{})

	j, err := svc.Get(context.Background(), orgID, jobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusProcessing, j.Status)
}

func TestGet_ForeignOrg(t *testing.T) {
	jobs := &jobRepoMock{
		GetByIDFunc: func(ctx context.Context, id, orgID uuid.UUID) (*domain.Job, error) {
			return nil, domain.ErrNotFound
		},
	}

	svc := NewService(testLogger(), jobs, &enqueuerMock{})

	_, err := svc.Get(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
