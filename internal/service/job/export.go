package job

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

// exportProjects lists the organization's projects for export.
type exportProjects interface {
	ListByOrg(ctx context.Context, orgID uuid.UUID) ([]domain.Project, error)
}

// exportNotes lists a project's notes for export.
type exportNotes interface {
	ListByProject(ctx context.Context, projectID, orgID uuid.UUID) ([]domain.Note, error)
}

// ExportExecutor produces a full JSON export of an organization's
// projects and notes. Share tokens are deliberately absent from the
// output: an export must not leak live credentials.
type ExportExecutor struct {
	projects exportProjects
	notes    exportNotes
	dir      string
}

// NewExportExecutor creates an export executor writing into dir.
func NewExportExecutor(projects exportProjects, notes exportNotes, dir string) *ExportExecutor {
	return &ExportExecutor{projects: projects, notes: notes, dir: dir}
}

type exportDoc struct {
	OrganizationID uuid.UUID       `json:"organization_id"`
	GeneratedAt    time.Time       `json:"generated_at"`
	Projects       []exportProject `json:"projects"`
}

type exportProject struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	Notes       []exportNote `json:"notes"`
}

type exportNote struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Version int       `json:"version"`
}

// Execute gathers the organization's projects with their notes and
// writes one JSON document named after the job ID.
func (e *ExportExecutor) Execute(ctx context.Context, j *domain.Job) (string, error) {
	projects, err := e.projects.ListByOrg(ctx, j.OrgID)
	if err != nil {
		return "", fmt.Errorf("list projects: %w", err)
	}

	doc := exportDoc{
		OrganizationID: j.OrgID,
		GeneratedAt:    time.Now().UTC(),
		Projects:       make([]exportProject, 0, len(projects)),
	}

	for _, p := range projects {
		notes, err := e.notes.ListByProject(ctx, p.ID, j.OrgID)
		if err != nil {
			return "", fmt.Errorf("list notes of project %s: %w", p.ID, err)
		}

		ep := exportProject{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Status:      p.Status.String(),
			Notes:       make([]exportNote, 0, len(notes)),
		}
		for _, n := range notes {
			ep.Notes = append(ep.Notes, exportNote{
				ID:      n.ID,
				Title:   n.Title,
				Content: n.Content,
				Version: n.Version,
			})
		}
		doc.Projects = append(doc.Projects, ep)
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create exports dir: %w", err)
	}

	path := filepath.Join(e.dir, j.ID.String()+".json")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}

	return path, nil
}
