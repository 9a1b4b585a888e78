package note

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/auth"
	"github.com/teamledger/teamledger-backend/internal/domain"
)

// ShareResult carries the note together with the newly minted share
// token. The token is the credential; it is also stored, because the
// lookup key IS the secret here and rotation must invalidate it in the
// same write that installs a successor.
type ShareResult struct {
	Note  *domain.Note
	Token string
}

// GenerateShareLink mints a share token for the note at the given access
// level. Always rotates: calling on an already shared note replaces the
// live token, and the previous one stops resolving the instant the new
// one exists. There is never more than one live token per note.
func (s *Service) GenerateShareLink(ctx context.Context, orgID, projectID, noteID uuid.UUID, level domain.AccessLevel) (*ShareResult, error) {
	if !level.IsValid() {
		return nil, domain.NewValidationError("access_level", "must be view or edit")
	}

	token, _, err := auth.GenerateSecret()
	if err != nil {
		return nil, fmt.Errorf("note.GenerateShareLink generate token: %w", err)
	}

	n, err := s.notes.SetShareToken(ctx, noteID, projectID, orgID, token, level)
	if err != nil {
		return nil, fmt.Errorf("note.GenerateShareLink: %w", err)
	}

	s.log.InfoContext(ctx, "share link generated",
		slog.String("note_id", noteID.String()),
		slog.String("access_level", level.String()))

	return &ShareResult{Note: n, Token: token}, nil
}

// RevokeShareLink removes the live share token, if any. Idempotent:
// revoking an unshared note succeeds.
func (s *Service) RevokeShareLink(ctx context.Context, orgID, projectID, noteID uuid.UUID) error {
	if err := s.notes.ClearShareToken(ctx, noteID, projectID, orgID); err != nil {
		return fmt.Errorf("note.RevokeShareLink: %w", err)
	}

	s.log.InfoContext(ctx, "share link revoked",
		slog.String("note_id", noteID.String()))

	return nil
}

// GetShared resolves a share token to its note. Unknown, revoked and
// superseded tokens all come back as domain.ErrInvalidShareToken; a
// caller probing tokens cannot tell which.
func (s *Service) GetShared(ctx context.Context, token string) (*domain.Note, error) {
	n, err := s.notes.GetByShareToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidShareToken
		}
		return nil, fmt.Errorf("note.GetShared: %w", err)
	}
	return n, nil
}

// UpdateShared applies an anonymous content edit through an edit-level
// share token. Title is not editable through a share link. The edit
// records no author: last_edited_by becomes NULL.
//
// An edit-level token that has been revoked or rotated mid-flight fails
// with domain.ErrInvalidShareToken; a view-level token is rejected the
// same way as a token pointing at nothing, after an explicit check so
// the caller gets domain.ErrForbidden instead.
func (s *Service) UpdateShared(ctx context.Context, token, content string, expectedVersion *int) (*domain.Note, error) {
	if expectedVersion != nil && *expectedVersion < 1 {
		return nil, domain.NewValidationError("expected_version", "must be positive")
	}

	current, err := s.notes.GetByShareToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidShareToken
		}
		return nil, fmt.Errorf("note.UpdateShared resolve token: %w", err)
	}
	p := auth.SharePrincipal(current.ID, current.ShareAccessLevel)
	if !p.CanEditShared() {
		return nil, domain.ErrForbidden
	}

	n, err := s.notes.UpdateContentByShareToken(ctx, token, content, expectedVersion)
	if err != nil {
		// The token stopped matching between the read and the write.
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidShareToken
		}
		return nil, fmt.Errorf("note.UpdateShared: %w", err)
	}

	return n, nil
}
