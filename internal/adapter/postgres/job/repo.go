// Package job implements the Job repository using PostgreSQL.
//
// Status transitions are enforced inside the UPDATE statements themselves
// (WHERE status = <predecessor>), so a job can never move backwards and a
// terminal row can never be modified, no matter how many runners race.
package job

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/teamledger/teamledger-backend/internal/adapter/postgres"
	"github.com/teamledger/teamledger-backend/internal/domain"
)

const table = "jobs"

var columns = []string{
	"id", "org_id", "type", "status", "result_path", "failure_reason",
	"created_at", "started_at", "completed_at",
}

// Repo provides job persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new job repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new job in status pending.
func (r *Repo) Create(ctx context.Context, j *domain.Job) (*domain.Job, error) {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "org_id", "type", "status", "created_at").
		Values(j.ID, j.OrgID, j.Type, domain.JobStatusPending, time.Now()).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "job")
	}

	return r.scanOne(ctx, sql, args)
}

// GetByID returns a job scoped to the organization. Pure read, no side
// effects; this is the polling endpoint's query.
func (r *Repo) GetByID(ctx context.Context, id, orgID uuid.UUID) (*domain.Job, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id, "org_id": orgID}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "job")
	}

	return r.scanOne(ctx, sql, args)
}

// Get returns a job by primary key without tenant scoping. Runner-side
// only; request handlers go through GetByID.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "job")
	}

	return r.scanOne(ctx, sql, args)
}

// Claim transitions a job from pending to processing. Returns false if the
// job was already claimed (or is in any other non-pending state), which
// makes claiming safe under concurrent workers.
func (r *Repo) Claim(ctx context.Context, id uuid.UUID) (bool, error) {
	sql, args, err := postgres.Builder().
		Update(table).
		Set("status", domain.JobStatusProcessing).
		Set("started_at", time.Now()).
		Where(squirrel.Eq{"id": id, "status": domain.JobStatusPending}).
		ToSql()
	if err != nil {
		return false, postgres.MapError(err, "job")
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return false, postgres.MapError(err, "job")
	}

	return tag.RowsAffected() == 1, nil
}

// Complete transitions a processing job to completed and records the
// result path. A job in any other state is left untouched.
func (r *Repo) Complete(ctx context.Context, id uuid.UUID, resultPath string) error {
	return r.finish(ctx, id, squirrel.Eq{
		"status":       domain.JobStatusCompleted,
		"result_path":  resultPath,
		"completed_at": time.Now(),
	})
}

// Fail transitions a processing job to failed and records the diagnostic
// reason. Failed jobs are never retried in place.
func (r *Repo) Fail(ctx context.Context, id uuid.UUID, reason string) error {
	return r.finish(ctx, id, squirrel.Eq{
		"status":         domain.JobStatusFailed,
		"failure_reason": reason,
		"completed_at":   time.Now(),
	})
}

// ListPendingIDs returns the oldest pending job IDs, up to limit. Used by
// the runner's sweep to pick up jobs that missed the in-process queue.
func (r *Repo) ListPendingIDs(ctx context.Context, limit int) ([]uuid.UUID, error) {
	sql, args, err := postgres.Builder().
		Select("id").
		From(table).
		Where(squirrel.Eq{"status": domain.JobStatusPending}).
		OrderBy("created_at ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "job")
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "job")
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, postgres.MapError(err, "job")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "job")
	}

	return ids, nil
}

func (r *Repo) finish(ctx context.Context, id uuid.UUID, set squirrel.Eq) error {
	update := postgres.Builder().
		Update(table).
		Where(squirrel.Eq{"id": id, "status": domain.JobStatusProcessing})
	for col, val := range set {
		update = update.Set(col, val)
	}

	sql, args, err := update.ToSql()
	if err != nil {
		return postgres.MapError(err, "job")
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "job")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *Repo) scanOne(ctx context.Context, sql string, args []any) (*domain.Job, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var j domain.Job
	err := q.QueryRow(ctx, sql, args...).Scan(
		&j.ID, &j.OrgID, &j.Type, &j.Status, &j.ResultPath, &j.FailureReason,
		&j.CreatedAt, &j.StartedAt, &j.CompletedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "job")
	}

	return &j, nil
}
