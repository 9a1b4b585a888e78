// Package job implements asynchronous job submission, polling and
// execution.
//
// A job is submitted as a pending row, then handed to the in-process
// runner through a bounded channel. If the channel is full the job stays
// pending and the runner's periodic sweep picks it up later; submission
// never blocks on the queue.
package job

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

// jobRepo defines the job repository interface needed by the service.
type jobRepo interface {
	Create(ctx context.Context, j *domain.Job) (*domain.Job, error)
	GetByID(ctx context.Context, id, orgID uuid.UUID) (*domain.Job, error)
	Claim(ctx context.Context, id uuid.UUID) (bool, error)
	Complete(ctx context.Context, id uuid.UUID, resultPath string) error
	Fail(ctx context.Context, id uuid.UUID, reason string) error
	ListPendingIDs(ctx context.Context, limit int) ([]uuid.UUID, error)
}

// enqueuer hands freshly created jobs to the runner. Enqueue is
// non-blocking; a false return means the queue is full and the sweep
// will get it.
type enqueuer interface {
	Enqueue(id uuid.UUID) bool
}

// Service implements job submission and polling.
type Service struct {
	log   *slog.Logger
	jobs  jobRepo
	queue enqueuer
}

// NewService creates a new job service instance.
func NewService(logger *slog.Logger, jobs jobRepo, queue enqueuer) *Service {
	return &Service{
		log:   logger.With("service", "job"),
		jobs:  jobs,
		queue: queue,
	}
}

// Submit creates a job in status pending and offers it to the runner.
// The returned job is what a poll would see immediately afterwards.
func (s *Service) Submit(ctx context.Context, orgID uuid.UUID, jobType domain.JobType) (*domain.Job, error) {
	if !jobType.IsValid() {
		return nil, domain.NewValidationError("type", "unknown job type")
	}

	j, err := s.jobs.Create(ctx, &domain.Job{
		ID:    uuid.New(),
		OrgID: orgID,
		Type:  jobType,
	})
	if err != nil {
		return nil, fmt.Errorf("job.Submit: %w", err)
	}

	if !s.queue.Enqueue(j.ID) {
		s.log.WarnContext(ctx, "job queue full, left for sweep",
			slog.String("job_id", j.ID.String()))
	}

	s.log.InfoContext(ctx, "job submitted",
		slog.String("job_id", j.ID.String()),
		slog.String("org_id", orgID.String()),
		slog.String("type", jobType.String()))

	return j, nil
}

// Get returns the current state of a job. Polling is a pure read and
// never advances the state machine.
func (s *Service) Get(ctx context.Context, orgID, jobID uuid.UUID) (*domain.Job, error) {
	j, err := s.jobs.GetByID(ctx, jobID, orgID)
	if err != nil {
		return nil, fmt.Errorf("job.Get: %w", err)
	}
	return j, nil
}
