// Package usage implements the per-organization usage counter repository
// using PostgreSQL.
package usage

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/teamledger/teamledger-backend/internal/adapter/postgres"
	"github.com/teamledger/teamledger-backend/internal/domain"
)

const table = "usage_records"

// Repo provides usage counter persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new usage repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Increment adds amount to the (org, metric) counter, creating it at the
// given amount if absent. The upsert makes the increment atomic under
// concurrent callers.
func (r *Repo) Increment(ctx context.Context, orgID uuid.UUID, metric string, amount int64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, `
		INSERT INTO usage_records (id, org_id, metric, value, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (org_id, metric)
		DO UPDATE SET value = usage_records.value + EXCLUDED.value, updated_at = now()`,
		uuid.New(), orgID, metric, amount,
	)
	if err != nil {
		return postgres.MapError(err, "usage_record")
	}

	return nil
}

// ListByOrg returns all counters of the organization, alphabetically by
// metric name.
func (r *Repo) ListByOrg(ctx context.Context, orgID uuid.UUID) ([]domain.UsageRecord, error) {
	sql, args, err := postgres.Builder().
		Select("id", "org_id", "metric", "value", "updated_at").
		From(table).
		Where(squirrel.Eq{"org_id": orgID}).
		OrderBy("metric ASC").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "usage_record")
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "usage_record")
	}
	defer rows.Close()

	var records []domain.UsageRecord
	for rows.Next() {
		var u domain.UsageRecord
		if err := rows.Scan(&u.ID, &u.OrgID, &u.Metric, &u.Value, &u.UpdatedAt); err != nil {
			return nil, postgres.MapError(err, "usage_record")
		}
		records = append(records, u)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "usage_record")
	}

	return records, nil
}
