package rest

import "net/http"

// Handlers aggregates every REST handler the router mounts.
type Handlers struct {
	Auth          *AuthHandler
	Organizations *OrganizationHandler
	APIKeys       *APIKeyHandler
	Projects      *ProjectHandler
	Notes         *NoteHandler
	Shared        *SharedHandler
	Jobs          *JobHandler
	Usage         *UsageHandler
	Health        *HealthHandler
}

// NewRouter mounts all REST routes on a ServeMux. Authentication runs in
// middleware before the mux; the handlers enforce authorization.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/v1/auth/login", h.Auth.Login)

	mux.HandleFunc("POST /api/v1/organizations", h.Organizations.Create)
	mux.HandleFunc("GET /api/v1/organizations", h.Organizations.List)
	mux.HandleFunc("POST /api/v1/organizations/join", h.Organizations.Join)
	mux.HandleFunc("POST /api/v1/organizations/{orgID}/switch", h.Organizations.Switch)
	mux.HandleFunc("POST /api/v1/organizations/{orgID}/invite", h.Organizations.Invite)

	mux.HandleFunc("POST /api/v1/api-keys", h.APIKeys.Create)
	mux.HandleFunc("GET /api/v1/api-keys", h.APIKeys.List)
	mux.HandleFunc("DELETE /api/v1/api-keys/{keyID}", h.APIKeys.Revoke)

	mux.HandleFunc("POST /api/v1/projects", h.Projects.Create)
	mux.HandleFunc("GET /api/v1/projects", h.Projects.List)
	mux.HandleFunc("POST /api/v1/projects/import", h.Projects.Import)
	mux.HandleFunc("GET /api/v1/projects/{projectID}", h.Projects.Get)
	mux.HandleFunc("PATCH /api/v1/projects/{projectID}", h.Projects.Update)

	mux.HandleFunc("POST /api/v1/projects/{projectID}/notes", h.Notes.Create)
	mux.HandleFunc("GET /api/v1/projects/{projectID}/notes", h.Notes.List)
	mux.HandleFunc("GET /api/v1/projects/{projectID}/notes/{noteID}", h.Notes.Get)
	mux.HandleFunc("PUT /api/v1/projects/{projectID}/notes/{noteID}", h.Notes.Update)
	mux.HandleFunc("DELETE /api/v1/projects/{projectID}/notes/{noteID}", h.Notes.Delete)
	mux.HandleFunc("POST /api/v1/projects/{projectID}/notes/{noteID}/share", h.Notes.Share)
	mux.HandleFunc("DELETE /api/v1/projects/{projectID}/notes/{noteID}/share", h.Notes.Unshare)

	mux.HandleFunc("GET /api/v1/shared/{token}", h.Shared.Get)
	mux.HandleFunc("PUT /api/v1/shared/{token}", h.Shared.Update)

	mux.HandleFunc("POST /api/v1/exports", h.Jobs.SubmitExport)
	mux.HandleFunc("GET /api/v1/jobs/{jobID}", h.Jobs.Get)

	mux.HandleFunc("GET /api/v1/usage", h.Usage.List)

	mux.HandleFunc("GET /healthz", h.Health.Live)
	mux.HandleFunc("GET /readyz", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	return mux
}
