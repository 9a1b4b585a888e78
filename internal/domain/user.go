package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated application user.
// PasswordHash is a bcrypt hash and never leaves the service layer.
type User struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role is a user's role within one organization.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// CanAdmin reports whether the role grants organization management rights.
func (r Role) CanAdmin() bool {
	return r == RoleOwner || r == RoleAdmin
}

// Membership links a user to an organization with a role.
// The "active" organization is never stored here; it lives only inside
// the session credential.
type Membership struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	OrgID     uuid.UUID
	Role      Role
	CreatedAt time.Time
}
