package rest

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/auth"
	"github.com/teamledger/teamledger-backend/internal/domain"
	"github.com/teamledger/teamledger-backend/pkg/ctxutil"
)

// sessionPrincipal requires an interactive session (user-only or
// org-scoped). API keys and share tokens do not pass.
func sessionPrincipal(w http.ResponseWriter, r *http.Request) (*auth.Principal, bool) {
	p, ok := ctxutil.PrincipalFromCtx(r.Context())
	if !ok || p.Kind != auth.PrincipalSession {
		writeError(w, http.StatusUnauthorized, "unauthorized", "session required")
		return nil, false
	}
	return p, true
}

// orgPrincipal requires an org-bound principal (org-scoped session or
// API key) covering the required scope.
func orgPrincipal(w http.ResponseWriter, r *http.Request, required domain.Scope) (*auth.Principal, bool) {
	p, ok := ctxutil.PrincipalFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return nil, false
	}
	if !p.HasOrg() {
		writeError(w, http.StatusForbidden, "no_organization", "switch to an organization first")
		return nil, false
	}
	if !p.Allows(required) {
		writeError(w, http.StatusForbidden, "insufficient_scope", "insufficient scope")
		return nil, false
	}
	return p, true
}

// authorID returns the acting user for attribution, or nil for machine
// principals.
func authorID(p *auth.Principal) *uuid.UUID {
	if p.UserID == uuid.Nil {
		return nil
	}
	id := p.UserID
	return &id
}

// pathUUID parses a UUID path segment. Writes a 400 on failure.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
