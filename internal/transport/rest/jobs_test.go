package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

type jobServiceMock struct {
	SubmitFunc func(ctx context.Context, orgID uuid.UUID, jobType domain.JobType) (*domain.Job, error)
	GetFunc    func(ctx context.Context, orgID, jobID uuid.UUID) (*domain.Job, error)
}

func (m *jobServiceMock) Submit(ctx context.Context, orgID uuid.UUID, jobType domain.JobType) (*domain.Job, error) {
	return m.SubmitFunc(ctx, orgID, jobType)
}

func (m *jobServiceMock) Get(ctx context.Context, orgID, jobID uuid.UUID) (*domain.Job, error) {
	return m.GetFunc(ctx, orgID, jobID)
}

func TestJobHandler_SubmitExport(t *testing.T) {
	orgID := uuid.New()

	svc := &jobServiceMock{
		SubmitFunc: func(ctx context.Context, oID uuid.UUID, jobType domain.JobType) (*domain.Job, error) {
			assert.Equal(t, orgID, oID)
			assert.Equal(t, domain.JobTypeExport, jobType)
			return &domain.Job{ID: uuid.New(), OrgID: oID, Type: jobType, Status: domain.JobStatusPending}, nil
		},
	}
	h := NewJobHandler(svc, testLogger())

	req := sessionRequest(http.MethodPost, "/api/v1/exports", "", memberPrincipal(orgID))
	rec := httptest.NewRecorder()

	h.SubmitExport(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)
}

func TestJobHandler_Get_Completed(t *testing.T) {
	orgID := uuid.New()
	jobID := uuid.New()
	path := "/exports/" + jobID.String() + ".json"

	svc := &jobServiceMock{
		GetFunc: func(ctx context.Context, oID, jID uuid.UUID) (*domain.Job, error) {
			return &domain.Job{
				ID:         jID,
				OrgID:      oID,
				Type:       domain.JobTypeExport,
				Status:     domain.JobStatusCompleted,
				ResultPath: &path,
			}, nil
		},
	}
	h := NewJobHandler(svc, testLogger())

	req := sessionRequest(http.MethodGet, "/api/v1/jobs/"+jobID.String(), "", memberPrincipal(orgID))
	req.SetPathValue("jobID", jobID.String())
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"completed"`)
	assert.Contains(t, rec.Body.String(), path)
}

func TestJobHandler_Get_ForeignOrg(t *testing.T) {
	svc := &jobServiceMock{
		GetFunc: func(ctx context.Context, orgID, jobID uuid.UUID) (*domain.Job, error) {
			return nil, domain.ErrNotFound
		},
	}
	h := NewJobHandler(svc, testLogger())

	jobID := uuid.New()
	req := sessionRequest(http.MethodGet, "/api/v1/jobs/"+jobID.String(), "", memberPrincipal(uuid.New()))
	req.SetPathValue("jobID", jobID.String())
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
