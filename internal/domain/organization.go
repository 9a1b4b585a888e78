package domain

import (
	"time"

	"github.com/google/uuid"
)

// Organization is the tenant boundary. Every project, note, API key and
// job belongs to exactly one organization.
type Organization struct {
	ID        uuid.UUID
	Name      string
	Slug      string // unique, derived from Name, immutable after creation
	CreatedAt time.Time
	UpdatedAt time.Time
}
