package domain

import (
	"time"

	"github.com/google/uuid"
)

// UsageRecord is a monotonic per-organization counter for one metric
// (e.g. "notes_created", "api_calls").
type UsageRecord struct {
	ID        uuid.UUID
	OrgID     uuid.UUID
	Metric    string
	Value     int64
	UpdatedAt time.Time
}
