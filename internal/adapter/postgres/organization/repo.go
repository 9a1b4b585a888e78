// Package organization implements the Organization and Membership
// repositories using PostgreSQL.
package organization

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

const (
	orgTable        = "organizations"
	membershipTable = "memberships"
)

var (
	orgColumns        = []string{"id", "name", "slug", "created_at", "updated_at"}
	membershipColumns = []string{"id", "user_id", "org_id", "role", "created_at"}
)

// Repo provides organization and membership persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new organization repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new organization. The slug must already be derived and
// unique; a duplicate slug returns domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, org *domain.Organization) (*domain.Organization, error) {
	now := time.Now()

	sql, args, err := postgres.Builder().
		Insert(orgTable).
		Columns(orgColumns...).
		Values(org.ID, org.Name, org.Slug, now, now).
		Suffix("RETURNING " + strings.Join(orgColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "organization")
	}

	return r.scanOrg(ctx, sql, args)
}

// GetByID returns an organization by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	sql, args, err := postgres.Builder().
		Select(orgColumns...).
		From(orgTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "organization")
	}

	return r.scanOrg(ctx, sql, args)
}

// SlugExists reports whether an organization with the given slug exists.
func (r *Repo) SlugExists(ctx context.Context, slug string) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	err := q.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM organizations WHERE slug = $1)", slug,
	).Scan(&exists)
	if err != nil {
		return false, postgres.MapError(err, "organization")
	}

	return exists, nil
}

// ListByUser returns all organizations the user is a member of, ordered
// by creation time.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Organization, error) {
	sql, args, err := postgres.Builder().
		Select("o.id", "o.name", "o.slug", "o.created_at", "o.updated_at").
		From(orgTable + " o").
		Join(membershipTable + " m ON m.org_id = o.id").
		Where(squirrel.Eq{"m.user_id": userID}).
		OrderBy("o.created_at ASC").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "organization")
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "organization")
	}
	defer rows.Close()

	var orgs []domain.Organization
	for rows.Next() {
		var o domain.Organization
		if err := rows.Scan(&o.ID, &o.Name, &o.Slug, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, postgres.MapError(err, "organization")
		}
		orgs = append(orgs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "organization")
	}

	return orgs, nil
}

// CreateMembership inserts a membership. A duplicate (user, org) pair
// returns domain.ErrAlreadyExists.
func (r *Repo) CreateMembership(ctx context.Context, m *domain.Membership) (*domain.Membership, error) {
	sql, args, err := postgres.Builder().
		Insert(membershipTable).
		Columns(membershipColumns...).
		Values(m.ID, m.UserID, m.OrgID, m.Role, time.Now()).
		Suffix("RETURNING " + strings.Join(membershipColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "membership")
	}

	return r.scanMembership(ctx, sql, args)
}

// GetMembership returns the membership for (userID, orgID), or
// domain.ErrNotFound if the user is not a member.
func (r *Repo) GetMembership(ctx context.Context, userID, orgID uuid.UUID) (*domain.Membership, error) {
	sql, args, err := postgres.Builder().
		Select(membershipColumns...).
		From(membershipTable).
		Where(squirrel.Eq{"user_id": userID, "org_id": orgID}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "membership")
	}

	return r.scanMembership(ctx, sql, args)
}

func (r *Repo) scanOrg(ctx context.Context, sql string, args []any) (*domain.Organization, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var o domain.Organization
	err := q.QueryRow(ctx, sql, args...).Scan(&o.ID, &o.Name, &o.Slug, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "organization")
	}

	return &o, nil
}

func (r *Repo) scanMembership(ctx context.Context, sql string, args []any) (*domain.Membership, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var m domain.Membership
	err := q.QueryRow(ctx, sql, args...).Scan(&m.ID, &m.UserID, &m.OrgID, &m.Role, &m.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "membership")
	}

	return &m, nil
}
