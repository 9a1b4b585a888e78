// Package project implements the Project repository using PostgreSQL.
package project

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

const table = "projects"

var columns = []string{"id", "org_id", "name", "description", "status", "created_at", "updated_at"}

// Repo provides project persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new project repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new project.
func (r *Repo) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	now := time.Now()

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(p.ID, p.OrgID, p.Name, p.Description, p.Status, now, now).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "project")
	}

	return r.scanOne(ctx, sql, args)
}

// GetByID returns a project by primary key, scoped to the organization.
func (r *Repo) GetByID(ctx context.Context, id, orgID uuid.UUID) (*domain.Project, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id, "org_id": orgID}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "project")
	}

	return r.scanOne(ctx, sql, args)
}

// ListByOrg returns all projects in the organization, newest first.
func (r *Repo) ListByOrg(ctx context.Context, orgID uuid.UUID) ([]domain.Project, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"org_id": orgID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "project")
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "project")
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.OrgID, &p.Name, &p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, postgres.MapError(err, "project")
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "project")
	}

	return projects, nil
}

// Update modifies name, description and status. Nil fields are left
// unchanged. OrgID is immutable and used only for scoping.
func (r *Repo) Update(ctx context.Context, id, orgID uuid.UUID, name, description *string, status *domain.ProjectStatus) (*domain.Project, error) {
	update := postgres.Builder().
		Update(table).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id, "org_id": orgID})

	if name != nil {
		update = update.Set("name", *name)
	}
	if description != nil {
		update = update.Set("description", *description)
	}
	if status != nil {
		update = update.Set("status", *status)
	}

	sql, args, err := update.
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "project")
	}

	return r.scanOne(ctx, sql, args)
}

func (r *Repo) scanOne(ctx context.Context, sql string, args []any) (*domain.Project, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var p domain.Project
	err := q.QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.OrgID, &p.Name, &p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "project")
	}

	return &p, nil
}
