package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates an active user with a placeholder password hash.
// Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + suffix + "@example.com",
		FullName:     "Test User " + suffix,
		PasswordHash: "$2a$10$seedseedseedseedseedseedseedseedseedseedseedseedseed",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, full_name, password_hash, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Email, user.FullName, user.PasswordHash, user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedOrg creates an organization and a membership for the given user.
// Returns the filled domain.Organization.
func SeedOrg(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, role domain.Role) domain.Organization {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	org := domain.Organization{
		ID:        uuid.New(),
		Name:      "Test Org " + suffix,
		Slug:      "test-org-" + suffix,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO organizations (id, name, slug, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		org.ID, org.Name, org.Slug, org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedOrg insert organization: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO memberships (id, user_id, org_id, role, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), userID, org.ID, role.String(), now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedOrg insert membership: %v", err)
	}

	return org
}

// SeedProject creates an active project in the organization.
func SeedProject(t *testing.T, pool *pgxpool.Pool, orgID uuid.UUID) domain.Project {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	project := domain.Project{
		ID:        uuid.New(),
		OrgID:     orgID,
		Name:      "Test Project " + suffix,
		Status:    domain.ProjectStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO projects (id, org_id, name, description, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		project.ID, project.OrgID, project.Name, project.Description, project.Status.String(),
		project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProject insert project: %v", err)
	}

	return project
}

// SeedNote creates a note at version 1 in the project, authored by the
// given user (nil for machine-created).
func SeedNote(t *testing.T, pool *pgxpool.Pool, orgID, projectID uuid.UUID, author *uuid.UUID) domain.Note {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	note := domain.Note{
		ID:               uuid.New(),
		ProjectID:        projectID,
		OrgID:            orgID,
		Title:            "Test Note " + suffix,
		Content:          "content " + suffix,
		Version:          1,
		CreatedBy:        author,
		LastEditedBy:     author,
		ShareAccessLevel: domain.AccessLevelView,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO notes (id, project_id, org_id, title, content, version, created_by, last_edited_by, share_access_level, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		note.ID, note.ProjectID, note.OrgID, note.Title, note.Content, note.Version,
		note.CreatedBy, note.LastEditedBy, note.ShareAccessLevel.String(), note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedNote insert note: %v", err)
	}

	return note
}
