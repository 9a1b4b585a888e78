package job_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teamledger/teamledger-backend/internal/adapter/postgres/job"
	"github.com/teamledger/teamledger-backend/internal/adapter/postgres/testhelper"
	"github.com/teamledger/teamledger-backend/internal/domain"
)

func newRepo(t *testing.T) (*job.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return job.New(pool), pool
}

func seedOrg(t *testing.T, pool *pgxpool.Pool) domain.Organization {
	t.Helper()
	user := testhelper.SeedUser(t, pool)
	return testhelper.SeedOrg(t, pool, user.ID, domain.RoleOwner)
}

func createJob(t *testing.T, repo *job.Repo, orgID uuid.UUID) *domain.Job {
	t.Helper()
	j, err := repo.Create(context.Background(), &domain.Job{
		ID:    uuid.New(),
		OrgID: orgID,
		Type:  domain.JobTypeExport,
	})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	return j
}

func TestRepo_Create_StartsPending(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	org := seedOrg(t, pool)

	j := createJob(t, repo, org.ID)

	if j.Status != domain.JobStatusPending {
		t.Errorf("Status = %s, want pending", j.Status)
	}
	if j.StartedAt != nil || j.CompletedAt != nil {
		t.Error("a fresh job must not carry start or completion timestamps")
	}
}

func TestRepo_Claim_ExactlyOnce(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	org := seedOrg(t, pool)
	j := createJob(t, repo, org.ID)

	claimed, err := repo.Claim(ctx, j.ID)
	if err != nil {
		t.Fatalf("Claim: unexpected error: %v", err)
	}
	if !claimed {
		t.Fatal("first Claim must win")
	}

	// A second worker racing for the same job loses silently.
	claimed, err = repo.Claim(ctx, j.ID)
	if err != nil {
		t.Fatalf("Claim(again): unexpected error: %v", err)
	}
	if claimed {
		t.Error("second Claim must lose")
	}

	got, err := repo.Get(ctx, j.ID)
	if err != nil {
		t.Fatalf("Get: unexpected error: %v", err)
	}
	if got.Status != domain.JobStatusProcessing {
		t.Errorf("Status = %s, want processing", got.Status)
	}
	if got.StartedAt == nil {
		t.Error("Claim must stamp started_at")
	}
}

func TestRepo_Complete_RequiresProcessing(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	org := seedOrg(t, pool)
	j := createJob(t, repo, org.ID)

	// Completing a job that was never claimed is refused.
	err := repo.Complete(ctx, j.ID, "/exports/nope.json")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for pending job, got %v", err)
	}

	if _, err := repo.Claim(ctx, j.ID); err != nil {
		t.Fatalf("Claim: unexpected error: %v", err)
	}
	path := "/exports/" + j.ID.String() + ".json"
	if err := repo.Complete(ctx, j.ID, path); err != nil {
		t.Fatalf("Complete: unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, j.ID, org.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.Status != domain.JobStatusCompleted {
		t.Errorf("Status = %s, want completed", got.Status)
	}
	if got.ResultPath == nil || *got.ResultPath != path {
		t.Errorf("ResultPath = %v, want %q", got.ResultPath, path)
	}
	if got.CompletedAt == nil {
		t.Error("Complete must stamp completed_at")
	}

	// Terminal rows stay terminal.
	if err := repo.Fail(ctx, j.ID, "too late"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound failing a completed job, got %v", err)
	}
}

func TestRepo_Fail_RecordsReason(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	org := seedOrg(t, pool)
	j := createJob(t, repo, org.ID)

	if _, err := repo.Claim(ctx, j.ID); err != nil {
		t.Fatalf("Claim: unexpected error: %v", err)
	}
	if err := repo.Fail(ctx, j.ID, "disk full"); err != nil {
		t.Fatalf("Fail: unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, j.ID, org.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.Status != domain.JobStatusFailed {
		t.Errorf("Status = %s, want failed", got.Status)
	}
	if got.FailureReason == nil || *got.FailureReason != "disk full" {
		t.Errorf("FailureReason = %v, want %q", got.FailureReason, "disk full")
	}
}

func TestRepo_GetByID_IsTenantScoped(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	org := seedOrg(t, pool)
	otherOrg := seedOrg(t, pool)
	j := createJob(t, repo, org.ID)

	if _, err := repo.GetByID(ctx, j.ID, otherOrg.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound through foreign org, got %v", err)
	}
}

func TestRepo_ListPendingIDs(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	org := seedOrg(t, pool)

	pending := createJob(t, repo, org.ID)
	claimed := createJob(t, repo, org.ID)
	if _, err := repo.Claim(ctx, claimed.ID); err != nil {
		t.Fatalf("Claim: unexpected error: %v", err)
	}

	// Other parallel tests share the database, so assert membership
	// rather than exact contents.
	ids, err := repo.ListPendingIDs(ctx, 1000)
	if err != nil {
		t.Fatalf("ListPendingIDs: unexpected error: %v", err)
	}

	found := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		found[id] = true
	}
	if !found[pending.ID] {
		t.Error("pending job missing from sweep")
	}
	if found[claimed.ID] {
		t.Error("processing job must not appear in sweep")
	}
}
