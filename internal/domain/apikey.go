package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Scope is a bitmask of API key capabilities. Higher scopes imply lower
// ones: write implies read, admin implies write.
type Scope uint8

const (
	ScopeRead  Scope = 1 << iota // GET-equivalent operations
	scopeWrite                   // mutation
	scopeAdmin                   // key and organization management

	ScopeWrite = scopeWrite | ScopeRead
	ScopeAdmin = scopeAdmin | ScopeWrite
)

// Allows reports whether the scope set covers the required minimum scope.
func (s Scope) Allows(required Scope) bool {
	return s&required == required
}

// Slice expands the bitmask into the canonical string form stored in the
// database and returned over the wire.
func (s Scope) Slice() []string {
	var out []string
	if s.Allows(ScopeRead) {
		out = append(out, "read")
	}
	if s.Allows(ScopeWrite) {
		out = append(out, "write")
	}
	if s.Allows(ScopeAdmin) {
		out = append(out, "admin")
	}
	return out
}

func (s Scope) String() string { return strings.Join(s.Slice(), ",") }

// ParseScopes converts the stored string form back into a bitmask.
// Unknown scope names are rejected.
func ParseScopes(names []string) (Scope, error) {
	var s Scope
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "read":
			s |= ScopeRead
		case "write":
			s |= ScopeWrite
		case "admin":
			s |= ScopeAdmin
		case "":
		default:
			return 0, NewValidationError("scopes", "unknown scope "+name)
		}
	}
	if s == 0 {
		return 0, NewValidationError("scopes", "at least one scope is required")
	}
	return s, nil
}

// APIKey is a long-lived machine credential bound to one organization.
//
// SecretHash is the SHA-256 of the full secret; the plaintext is shown to
// the caller exactly once at creation and is not recoverable afterwards.
// KeyPrefix is the public, non-secret head of the secret used for display
// and lookup disambiguation. Revocation is one-way: IsActive never goes
// back to true.
type APIKey struct {
	ID         uuid.UUID
	OrgID      uuid.UUID
	Name       string
	SecretHash string
	KeyPrefix  string
	Scopes     Scope
	IsActive   bool
	CreatedAt  time.Time
	ExpiresAt  *time.Time
}

// IsExpired reports whether the key is past its expiry relative to now.
// Keys without an expiry never expire.
func (k *APIKey) IsExpired(now time.Time) bool {
	return k.ExpiresAt != nil && k.ExpiresAt.Before(now)
}
