package job

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

type exportProjectsMock struct {
	ListByOrgFunc func(ctx context.Context, orgID uuid.UUID) ([]domain.Project, error)
}

func (m *exportProjectsMock) ListByOrg(ctx context.Context, orgID uuid.UUID) ([]domain.Project, error) {
	return m.ListByOrgFunc(ctx, orgID)
}

type exportNotesMock struct {
	ListByProjectFunc func(ctx context.Context, projectID, orgID uuid.UUID) ([]domain.Note, error)
}

func (m *exportNotesMock) ListByProject(ctx context.Context, projectID, orgID uuid.UUID) ([]domain.Note, error) {
	return m.ListByProjectFunc(ctx, projectID, orgID)
}

func TestExportExecutor_Execute(t *testing.T) {
	orgID := uuid.New()
	projectID := uuid.New()
	token := "live-share-token"

	projects := &exportProjectsMock{
		ListByOrgFunc: func(ctx context.Context, oID uuid.UUID) ([]domain.Project, error) {
			assert.Equal(t, orgID, oID)
			return []domain.Project{{
				ID:          projectID,
				OrgID:       orgID,
				Name:        "Roadmap",
				Description: "Q3 planning",
				Status:      domain.ProjectStatusActive,
			}}, nil
		},
	}
	notes := &exportNotesMock{
		ListByProjectFunc: func(ctx context.Context, pID, oID uuid.UUID) ([]domain.Note, error) {
			assert.Equal(t, projectID, pID)
			return []domain.Note{{
				ID:               uuid.New(),
				ProjectID:        pID,
				OrgID:            oID,
				Title:            "Milestones",
				Content:          "ship by october",
				Version:          3,
				ShareToken:       &token,
				ShareAccessLevel: domain.AccessLevelEdit,
			}}, nil
		},
	}

	dir := t.TempDir()
	exec := NewExportExecutor(projects, notes, dir)

	j := &domain.Job{ID: uuid.New(), OrgID: orgID, Type: domain.JobTypeExport}
	path, err := exec.Execute(context.Background(), j)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, j.ID.String()+".json"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		OrganizationID uuid.UUID `json:"organization_id"`
		Projects       []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
			Notes  []struct {
				Title   string `json:"title"`
				Content string `json:"content"`
				Version int    `json:"version"`
			} `json:"notes"`
		} `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, orgID, doc.OrganizationID)
	require.Len(t, doc.Projects, 1)
	assert.Equal(t, "Roadmap", doc.Projects[0].Name)
	assert.Equal(t, "active", doc.Projects[0].Status)
	require.Len(t, doc.Projects[0].Notes, 1)
	assert.Equal(t, "Milestones", doc.Projects[0].Notes[0].Title)
	assert.Equal(t, 3, doc.Projects[0].Notes[0].Version)

	// Share tokens are live credentials and must never land in an export.
	assert.False(t, strings.Contains(string(raw), token))
}

func TestExportExecutor_EmptyOrganization(t *testing.T) {
	projects := &exportProjectsMock{
		ListByOrgFunc: func(ctx context.Context, orgID uuid.UUID) ([]domain.Project, error) {
			return nil, nil
		},
	}
	notes := &exportNotesMock{}

	dir := t.TempDir()
	exec := NewExportExecutor(projects, notes, dir)

	path, err := exec.Execute(context.Background(), &domain.Job{ID: uuid.New(), OrgID: uuid.New()})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Projects []json.RawMessage `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.NotNil(t, doc.Projects, "projects is an empty array, not null")
	assert.Empty(t, doc.Projects)
}
