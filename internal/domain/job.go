package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobType identifies the kind of asynchronous work a job performs.
type JobType string

const (
	JobTypeExport JobType = "export"
)

func (t JobType) String() string { return string(t) }

func (t JobType) IsValid() bool { return t == JobTypeExport }

// JobStatus is the state of an asynchronous job. Transitions are monotonic:
// pending -> processing -> {completed, failed}. Terminal states are immutable.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

func (s JobStatus) String() string { return string(s) }

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending, JobStatusProcessing, JobStatusCompleted, JobStatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether the status permits no further transitions.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// CanTransitionTo reports whether moving from s to next is a legal
// forward transition.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	switch s {
	case JobStatusPending:
		return next == JobStatusProcessing
	case JobStatusProcessing:
		return next == JobStatusCompleted || next == JobStatusFailed
	}
	return false
}

// Job is an immutable record of one asynchronous attempt. A failed job is
// never retried in place; retry means submitting a new job.
type Job struct {
	ID            uuid.UUID
	OrgID         uuid.UUID
	Type          JobType
	Status        JobStatus
	ResultPath    *string // set only when Status is completed
	FailureReason *string // set only when Status is failed
	CreatedAt     time.Time
	StartedAt     *time.Time
	CompletedAt   *time.Time
}
