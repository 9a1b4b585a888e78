package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccessLevel is the capability granted by a share token.
type AccessLevel string

const (
	AccessLevelView AccessLevel = "view"
	AccessLevelEdit AccessLevel = "edit"
)

func (l AccessLevel) String() string { return string(l) }

func (l AccessLevel) IsValid() bool {
	return l == AccessLevelView || l == AccessLevelEdit
}

// Note is a versioned document inside a project.
//
// Version increments by exactly 1 on every accepted mutation. ProjectID and
// OrgID are immutable after creation.
//
// A note owns at most one live share token, modeled as a single optional
// slot (ShareToken + ShareAccessLevel). Rotating the token replaces the
// slot value in one atomic write, so the old token value stops resolving
// the instant the new one exists.
type Note struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	OrgID     uuid.UUID
	Title   string
	Content string
	Version int

	// CreatedBy is nil when the note was created through an API key;
	// machine credentials carry no user identity.
	CreatedBy *uuid.UUID

	// LastEditedBy is nil when the last edit came in anonymously through
	// an edit-level share token or an API key.
	LastEditedBy *uuid.UUID

	ShareToken       *string
	ShareAccessLevel AccessLevel

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsShared reports whether the note currently has a live share token.
func (n *Note) IsShared() bool { return n.ShareToken != nil }
