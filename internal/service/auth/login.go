package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

// dummyHash is compared against when the email is unknown, so that the
// failure path costs the same as a real password check. Hash of an
// unusable sentinel value, never a valid password.
var dummyHash = []byte("$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW")

// Login authenticates a user with email + password and issues a session
// credential scoped to the user only (no organization).
//
// Failure is a single domain.ErrInvalidCredentials regardless of whether
// the email is unknown or the password is wrong, to prevent account
// enumeration.
func (s *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Burn a comparison so unknown emails are not faster to probe.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(input.Password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth.Login get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	// User-only credential: authorizes reading own memberships, nothing
	// tenant-scoped until an organization switch.
	token, err := s.tokens.IssueSession(user.ID, nil, "")
	if err != nil {
		return nil, fmt.Errorf("auth.Login issue session: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID.String()))

	return &LoginResult{AccessToken: token, User: user}, nil
}
