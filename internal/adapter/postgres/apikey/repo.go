// Package apikey implements the APIKey repository using PostgreSQL.
package apikey

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

const table = "api_keys"

var columns = []string{
	"id", "org_id", "name", "secret_hash", "key_prefix", "scopes",
	"is_active", "created_at", "expires_at",
}

// Repo provides API key persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new API key repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new API key record. Only the hash of the secret is
// stored; the plaintext never reaches this layer.
func (r *Repo) Create(ctx context.Context, k *domain.APIKey) (*domain.APIKey, error) {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(k.ID, k.OrgID, k.Name, k.SecretHash, k.KeyPrefix, k.Scopes.Slice(),
			k.IsActive, time.Now(), k.ExpiresAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "api_key")
	}

	return r.scanOne(ctx, sql, args)
}

// GetByID returns an API key scoped to the organization.
func (r *Repo) GetByID(ctx context.Context, id, orgID uuid.UUID) (*domain.APIKey, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id, "org_id": orgID}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "api_key")
	}

	return r.scanOne(ctx, sql, args)
}

// ListByOrg returns all keys of the organization, newest first.
// Secret hashes are included; the service layer strips them before they
// leave the process.
func (r *Repo) ListByOrg(ctx context.Context, orgID uuid.UUID) ([]domain.APIKey, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"org_id": orgID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "api_key")
	}

	return r.scanMany(ctx, sql, args)
}

// ListByPrefix returns all active keys whose public prefix matches.
// The prefix only disambiguates; the caller still verifies the full hash.
func (r *Repo) ListByPrefix(ctx context.Context, prefix string) ([]domain.APIKey, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"key_prefix": prefix, "is_active": true}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "api_key")
	}

	return r.scanMany(ctx, sql, args)
}

// Revoke sets is_active = false. The transition is one-way: there is no
// way to re-activate a key. Idempotent — revoking a revoked key succeeds.
// Returns domain.ErrNotFound if the key does not exist in the org.
func (r *Repo) Revoke(ctx context.Context, id, orgID uuid.UUID) (*domain.APIKey, error) {
	sql, args, err := postgres.Builder().
		Update(table).
		Set("is_active", false).
		Where(squirrel.Eq{"id": id, "org_id": orgID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "api_key")
	}

	return r.scanOne(ctx, sql, args)
}

func (r *Repo) scanOne(ctx context.Context, sql string, args []any) (*domain.APIKey, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	k, err := scanKey(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "api_key")
	}

	return k, nil
}

func (r *Repo) scanMany(ctx context.Context, sql string, args []any) ([]domain.APIKey, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "api_key")
	}
	defer rows.Close()

	var keys []domain.APIKey
	for rows.Next() {
		k, err := scanKey(rows)
		if err != nil {
			return nil, postgres.MapError(err, "api_key")
		}
		keys = append(keys, *k)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "api_key")
	}

	return keys, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanKey(row rowScanner) (*domain.APIKey, error) {
	var (
		k      domain.APIKey
		scopes []string
	)
	err := row.Scan(
		&k.ID, &k.OrgID, &k.Name, &k.SecretHash, &k.KeyPrefix, &scopes,
		&k.IsActive, &k.CreatedAt, &k.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}

	parsed, err := domain.ParseScopes(scopes)
	if err != nil {
		return nil, err
	}
	k.Scopes = parsed

	return &k, nil
}
