// Package note implements the Note repository using PostgreSQL.
//
// Note mutation is the one hot path that must be serialized per note: every
// update goes through a single compare-and-swap UPDATE so that concurrent
// writers can never both observe the same version and both succeed.
package note

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/teamledger/teamledger-backend/internal/adapter/postgres"
	"github.com/teamledger/teamledger-backend/internal/domain"
)

const table = "notes"

var columns = []string{
	"id", "project_id", "org_id", "title", "content", "version",
	"created_by", "last_edited_by", "share_token", "share_access_level",
	"created_at", "updated_at",
}

// Repo provides note persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new note repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// UpdateParams describes a versioned note mutation. Nil Title/Content are
// left unchanged. EditedBy nil records an anonymous share-token edit.
// ExpectedVersion nil skips conflict detection but the write still
// advances the version by exactly 1 atomically.
type UpdateParams struct {
	Title           *string
	Content         *string
	EditedBy        *uuid.UUID
	ExpectedVersion *int
}

// Create inserts a new note at version 1.
func (r *Repo) Create(ctx context.Context, n *domain.Note) (*domain.Note, error) {
	now := time.Now()

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "project_id", "org_id", "title", "content", "version",
			"created_by", "last_edited_by", "share_access_level", "created_at", "updated_at").
		Values(n.ID, n.ProjectID, n.OrgID, n.Title, n.Content, 1,
			n.CreatedBy, n.CreatedBy, domain.AccessLevelView, now, now).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "note")
	}

	return r.scanOne(ctx, sql, args)
}

// GetByID returns a note scoped to its project and organization.
func (r *Repo) GetByID(ctx context.Context, id, projectID, orgID uuid.UUID) (*domain.Note, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id, "project_id": projectID, "org_id": orgID}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "note")
	}

	return r.scanOne(ctx, sql, args)
}

// ListByProject returns all notes in a project, newest first.
func (r *Repo) ListByProject(ctx context.Context, projectID, orgID uuid.UUID) ([]domain.Note, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"project_id": projectID, "org_id": orgID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "note")
	}

	return r.scanMany(ctx, sql, args)
}

// UpdateVersioned applies a mutation with optimistic concurrency.
//
// The read-modify-increment-write happens in one UPDATE: version advances
// by exactly 1 on success. With ExpectedVersion set, a stale version
// returns domain.ErrConflict and leaves the note untouched; without it,
// concurrent writers are serialized by the row lock and each still
// advances the version by exactly 1.
func (r *Repo) UpdateVersioned(ctx context.Context, id, orgID uuid.UUID, p UpdateParams) (*domain.Note, error) {
	update := postgres.Builder().
		Update(table).
		Set("version", squirrel.Expr("version + 1")).
		Set("last_edited_by", p.EditedBy).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id, "org_id": orgID})

	if p.Title != nil {
		update = update.Set("title", *p.Title)
	}
	if p.Content != nil {
		update = update.Set("content", *p.Content)
	}
	if p.ExpectedVersion != nil {
		update = update.Where(squirrel.Eq{"version": *p.ExpectedVersion})
	}

	sql, args, err := update.
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "note")
	}

	n, err := r.scanOne(ctx, sql, args)
	if err == nil {
		return n, nil
	}
	if !errors.Is(err, domain.ErrNotFound) || p.ExpectedVersion == nil {
		return nil, err
	}

	// No row matched: either the note is gone or the version was stale.
	q := postgres.QuerierFromCtx(ctx, r.pool)
	var current int
	scanErr := q.QueryRow(ctx,
		"SELECT version FROM notes WHERE id = $1 AND org_id = $2", id, orgID,
	).Scan(&current)
	if scanErr != nil {
		if errors.Is(scanErr, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, postgres.MapError(scanErr, "note")
	}

	return nil, domain.ErrConflict
}

// SetShareToken installs a new share token, atomically superseding any
// prior one: the old token value stops matching the instant this UPDATE
// commits, so there are never two live tokens for one note.
func (r *Repo) SetShareToken(ctx context.Context, id, projectID, orgID uuid.UUID, token string, level domain.AccessLevel) (*domain.Note, error) {
	sql, args, err := postgres.Builder().
		Update(table).
		Set("share_token", token).
		Set("share_access_level", level).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id, "project_id": projectID, "org_id": orgID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "note")
	}

	return r.scanOne(ctx, sql, args)
}

// ClearShareToken revokes the live share token, if any. Idempotent:
// revoking an unshared note succeeds. Returns domain.ErrNotFound only if
// the note itself does not exist.
func (r *Repo) ClearShareToken(ctx context.Context, id, projectID, orgID uuid.UUID) error {
	sql, args, err := postgres.Builder().
		Update(table).
		Set("share_token", nil).
		Set("share_access_level", domain.AccessLevelView).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id, "project_id": projectID, "org_id": orgID}).
		ToSql()
	if err != nil {
		return postgres.MapError(err, "note")
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "note")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// GetByShareToken returns the note a live share token points at.
// Returns domain.ErrNotFound for unknown, revoked or superseded tokens.
func (r *Repo) GetByShareToken(ctx context.Context, token string) (*domain.Note, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"share_token": token}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "note")
	}

	return r.scanOne(ctx, sql, args)
}

// UpdateContentByShareToken applies an anonymous content edit through a
// live edit-level share token. Matching on the token value inside the
// UPDATE makes the edit atomic with respect to concurrent revocation or
// rotation: an edit can never land through a token that has already been
// superseded.
func (r *Repo) UpdateContentByShareToken(ctx context.Context, token, content string, expectedVersion *int) (*domain.Note, error) {
	update := postgres.Builder().
		Update(table).
		Set("content", content).
		Set("version", squirrel.Expr("version + 1")).
		Set("last_edited_by", nil).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{
			"share_token":        token,
			"share_access_level": domain.AccessLevelEdit,
		})

	if expectedVersion != nil {
		update = update.Where(squirrel.Eq{"version": *expectedVersion})
	}

	sql, args, err := update.
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "note")
	}

	n, err := r.scanOne(ctx, sql, args)
	if err == nil {
		return n, nil
	}
	if !errors.Is(err, domain.ErrNotFound) || expectedVersion == nil {
		return nil, err
	}

	// Distinguish stale version from missing/revoked token.
	q := postgres.QuerierFromCtx(ctx, r.pool)
	var current int
	scanErr := q.QueryRow(ctx,
		"SELECT version FROM notes WHERE share_token = $1 AND share_access_level = $2",
		token, domain.AccessLevelEdit,
	).Scan(&current)
	if scanErr != nil {
		if errors.Is(scanErr, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, postgres.MapError(scanErr, "note")
	}

	return nil, domain.ErrConflict
}

// Delete removes a note.
func (r *Repo) Delete(ctx context.Context, id, projectID, orgID uuid.UUID) error {
	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id, "project_id": projectID, "org_id": orgID}).
		ToSql()
	if err != nil {
		return postgres.MapError(err, "note")
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "note")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *Repo) scanOne(ctx context.Context, sql string, args []any) (*domain.Note, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var n domain.Note
	err := q.QueryRow(ctx, sql, args...).Scan(
		&n.ID, &n.ProjectID, &n.OrgID, &n.Title, &n.Content, &n.Version,
		&n.CreatedBy, &n.LastEditedBy, &n.ShareToken, &n.ShareAccessLevel,
		&n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "note")
	}

	return &n, nil
}

func (r *Repo) scanMany(ctx context.Context, sql string, args []any) ([]domain.Note, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "note")
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(
			&n.ID, &n.ProjectID, &n.OrgID, &n.Title, &n.Content, &n.Version,
			&n.CreatedBy, &n.LastEditedBy, &n.ShareToken, &n.ShareAccessLevel,
			&n.CreatedAt, &n.UpdatedAt,
		); err != nil {
			return nil, postgres.MapError(err, "note")
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "note")
	}

	return notes, nil
}
