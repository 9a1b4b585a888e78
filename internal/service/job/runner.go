package job

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

// runnerRepo is the repository surface the runner drives the state
// machine through.
type runnerRepo interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	Claim(ctx context.Context, id uuid.UUID) (bool, error)
	Complete(ctx context.Context, id uuid.UUID, resultPath string) error
	Fail(ctx context.Context, id uuid.UUID, reason string) error
	ListPendingIDs(ctx context.Context, limit int) ([]uuid.UUID, error)
}

// Executor performs the actual work of one job type and returns the
// path of the produced artifact.
type Executor interface {
	Execute(ctx context.Context, j *domain.Job) (resultPath string, err error)
}

// RunnerConfig tunes the in-process runner.
type RunnerConfig struct {
	Workers       int
	QueueSize     int
	SweepInterval time.Duration
}

// Runner executes jobs on a fixed worker pool fed by a bounded channel.
//
// The channel is an optimization, not the source of truth: the database
// row is. A periodic sweep re-reads pending rows and re-offers them, so
// jobs survive a full queue or a process restart. Claim is the
// serialization point; a job offered twice is still executed once.
type Runner struct {
	log       *slog.Logger
	jobs      runnerRepo
	executors map[domain.JobType]Executor
	cfg       RunnerConfig

	queue chan uuid.UUID
	stop  chan struct{}
	wg    sync.WaitGroup
}

// NewRunner creates a runner. Executors maps each job type to its
// implementation; a claimed job of an unmapped type fails immediately.
func NewRunner(logger *slog.Logger, jobs runnerRepo, executors map[domain.JobType]Executor, cfg RunnerConfig) *Runner {
	return &Runner{
		log:       logger.With("service", "job_runner"),
		jobs:      jobs,
		executors: executors,
		cfg:       cfg,
		queue:     make(chan uuid.UUID, cfg.QueueSize),
		stop:      make(chan struct{}),
	}
}

// Enqueue offers a job to the worker pool without blocking. Returns
// false when the queue is full; the sweep will pick the job up instead.
func (r *Runner) Enqueue(id uuid.UUID) bool {
	select {
	case r.queue <- id:
		return true
	default:
		return false
	}
}

// Start launches the workers and the pending sweep.
func (r *Runner) Start(ctx context.Context) {
	for i := 0; i < r.cfg.Workers; i++ {
		r.wg.Add(1)
		go r.worker(ctx)
	}

	r.wg.Add(1)
	go r.sweep(ctx)

	r.log.InfoContext(ctx, "job runner started",
		slog.Int("workers", r.cfg.Workers),
		slog.Int("queue_size", r.cfg.QueueSize))
}

// Stop shuts the runner down and waits for in-flight jobs to finish.
func (r *Runner) Stop() {
	close(r.stop)
	r.wg.Wait()
}

func (r *Runner) worker(ctx context.Context) {
	defer r.wg.Done()

	for {
		select {
		case <-r.stop:
			return
		case id := <-r.queue:
			r.run(ctx, id)
		}
	}
}

func (r *Runner) sweep(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			ids, err := r.jobs.ListPendingIDs(ctx, r.cfg.QueueSize)
			if err != nil {
				r.log.ErrorContext(ctx, "pending sweep failed",
					slog.String("error", err.Error()))
				continue
			}
			for _, id := range ids {
				if !r.Enqueue(id) {
					break
				}
			}
		}
	}
}

// run claims and executes one job. Every terminal write goes through the
// repository's guarded transitions, so a lost race at any point is
// harmless.
func (r *Runner) run(ctx context.Context, id uuid.UUID) {
	claimed, err := r.jobs.Claim(ctx, id)
	if err != nil {
		r.log.ErrorContext(ctx, "job claim failed",
			slog.String("job_id", id.String()),
			slog.String("error", err.Error()))
		return
	}
	if !claimed {
		// Another worker got there first, or the job is already done.
		return
	}

	j, err := r.jobs.Get(ctx, id)
	if err != nil {
		r.fail(ctx, id, fmt.Sprintf("load job: %v", err))
		return
	}

	exec, ok := r.executors[j.Type]
	if !ok {
		r.fail(ctx, id, fmt.Sprintf("no executor for job type %q", j.Type))
		return
	}

	r.log.InfoContext(ctx, "job started",
		slog.String("job_id", id.String()),
		slog.String("type", j.Type.String()))

	resultPath, err := exec.Execute(ctx, j)
	if err != nil {
		r.fail(ctx, id, err.Error())
		return
	}

	if err := r.jobs.Complete(ctx, id, resultPath); err != nil {
		r.log.ErrorContext(ctx, "job complete write failed",
			slog.String("job_id", id.String()),
			slog.String("error", err.Error()))
		return
	}

	r.log.InfoContext(ctx, "job completed",
		slog.String("job_id", id.String()),
		slog.String("result_path", resultPath))
}

func (r *Runner) fail(ctx context.Context, id uuid.UUID, reason string) {
	if err := r.jobs.Fail(ctx, id, reason); err != nil {
		r.log.ErrorContext(ctx, "job fail write failed",
			slog.String("job_id", id.String()),
			slog.String("error", err.Error()))
		return
	}

	r.log.WarnContext(ctx, "job failed",
		slog.String("job_id", id.String()),
		slog.String("reason", reason))
}
