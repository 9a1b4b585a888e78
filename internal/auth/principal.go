package auth

import (
	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

// PrincipalKind identifies which validator produced a principal.
type PrincipalKind string

const (
	PrincipalSession PrincipalKind = "session" // bearer session credential
	PrincipalAPIKey  PrincipalKind = "api_key" // X-API-Key header
	PrincipalShare   PrincipalKind = "share"   // share token in URL path
)

// Principal is the resolved identity of a request after authentication.
//
// A session principal carries a user ID, an organization (once switched)
// and the implied scopes for its role. An API key principal carries an
// organization and the key's scope set but no user. A share principal
// carries only the note it grants access to and an access level.
type Principal struct {
	Kind   PrincipalKind
	UserID uuid.UUID // zero for api_key and share principals
	OrgID  uuid.UUID // zero for user-only sessions and share principals
	Role   domain.Role
	Scopes domain.Scope

	// Share-token fields, set only for Kind == PrincipalShare.
	NoteID      uuid.UUID
	AccessLevel domain.AccessLevel
}

// SharePrincipal builds the principal a live share token resolves to.
// It names one note and an access level, nothing more.
func SharePrincipal(noteID uuid.UUID, level domain.AccessLevel) *Principal {
	return &Principal{Kind: PrincipalShare, NoteID: noteID, AccessLevel: level}
}

// HasOrg reports whether the principal is bound to an organization.
func (p *Principal) HasOrg() bool { return p.OrgID != uuid.Nil }

// CanEditShared reports whether the principal may write through a share
// link. Only an edit-level share principal qualifies; members and keys
// edit through the project routes instead.
func (p *Principal) CanEditShared() bool {
	return p.Kind == PrincipalShare && p.AccessLevel == domain.AccessLevelEdit
}

// Allows reports whether the principal's scopes cover the required
// minimum scope. Share principals carry no scopes and always fail.
func (p *Principal) Allows(required domain.Scope) bool {
	return p.Scopes.Allows(required)
}

// SessionScopes maps an organization role to the scopes an interactive
// session implies: members read and write, owners and admins additionally
// manage keys and the organization itself.
func SessionScopes(role domain.Role) domain.Scope {
	if role.CanAdmin() {
		return domain.ScopeAdmin
	}
	return domain.ScopeWrite
}
