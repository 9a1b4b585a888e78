package auth

import "github.com/teamledger/teamledger-backend/internal/domain"

// LoginResult is returned by Login.
type LoginResult struct {
	AccessToken string // user-only session credential, no organization yet
	User        *domain.User
}
