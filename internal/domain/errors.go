package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("version conflict")

	// ErrInvalidCredentials covers both unknown email and wrong password;
	// callers must not be able to distinguish the two.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotAMember is returned when a user has no membership in the
	// organization they are acting on.
	ErrNotAMember = errors.New("not a member of organization")

	// ErrInvalidKey covers unknown, revoked and expired API keys alike.
	ErrInvalidKey = errors.New("invalid api key")

	// ErrInvalidShareToken covers unknown, revoked and superseded share
	// tokens alike.
	ErrInvalidShareToken = errors.New("invalid or revoked share token")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// FieldMap returns the field errors as a field -> message map.
func (e *ValidationError) FieldMap() map[string]string {
	m := make(map[string]string, len(e.Errors))
	for _, fe := range e.Errors {
		m[fe.Field] = fe.Message
	}
	return m
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}
