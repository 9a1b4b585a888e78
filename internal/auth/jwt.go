package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenManager issues and validates the signed, time-bounded credentials
// used by the system: session credentials (user-only or org-scoped) and
// organization invite tokens. All tokens are HS256 JWTs; validity is
// determined entirely by signature and expiry, never by a server-side
// lookup.
type TokenManager struct {
	secret     []byte
	issuer     string
	sessionTTL time.Duration
	inviteTTL  time.Duration
}

// NewTokenManager creates a token manager.
// secret must be at least 32 characters for HS256 security.
func NewTokenManager(secret, issuer string, sessionTTL, inviteTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		issuer:     issuer,
		sessionTTL: sessionTTL,
		inviteTTL:  inviteTTL,
	}
}

// SessionClaims is the decoded content of a session credential.
// OrgID is nil for a user-only credential issued at login; it is populated
// by an organization switch, which re-issues the credential.
type SessionClaims struct {
	UserID    uuid.UUID
	OrgID     *uuid.UUID
	Role      string
	ExpiresAt time.Time
}

// sessionClaims extends standard JWT claims with tenancy context.
type sessionClaims struct {
	jwt.RegisteredClaims
	OrgID string `json:"org_id,omitempty"`
	Role  string `json:"role,omitempty"`
}

// IssueSession creates a signed session credential. orgID may be nil for a
// credential scoped to the user only.
func (m *TokenManager) IssueSession(userID uuid.UUID, orgID *uuid.UUID, role string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: role,
	}
	if orgID != nil {
		claims.OrgID = orgID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return signed, nil
}

// ValidateSession parses and validates a session credential. This is only
// the stateless half of session validation: callers that act on an
// organization must additionally recheck a live membership.
func (m *TokenManager) ValidateSession(tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, m.keyFunc)
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if claims.Issuer != m.issuer {
		return nil, fmt.Errorf("invalid issuer %q", claims.Issuer)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid subject UUID: %w", err)
	}

	out := &SessionClaims{
		UserID: userID,
		Role:   claims.Role,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.OrgID != "" {
		orgID, err := uuid.Parse(claims.OrgID)
		if err != nil {
			return nil, fmt.Errorf("invalid org_id claim: %w", err)
		}
		out.OrgID = &orgID
	}

	return out, nil
}

// inviteClaims carries the organization an invite token admits to.
type inviteClaims struct {
	jwt.RegisteredClaims
	OrgID string `json:"org_id"`
}

// IssueInvite creates a signed, expiring invite token for an organization.
func (m *TokenManager) IssueInvite(orgID uuid.UUID) (string, error) {
	now := time.Now()
	claims := inviteClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{"invite"},
			ExpiresAt: jwt.NewNumericDate(now.Add(m.inviteTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		OrgID: orgID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign invite token: %w", err)
	}

	return signed, nil
}

// ValidateInvite parses an invite token and returns the organization it
// admits to.
func (m *TokenManager) ValidateInvite(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &inviteClaims{}, m.keyFunc,
		jwt.WithAudience("invite"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse invite token: %w", err)
	}

	claims, ok := token.Claims.(*inviteClaims)
	if !ok || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid token claims")
	}

	if claims.Issuer != m.issuer {
		return uuid.Nil, fmt.Errorf("invalid issuer %q", claims.Issuer)
	}

	orgID, err := uuid.Parse(claims.OrgID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid org_id claim: %w", err)
	}

	return orgID, nil
}

func (m *TokenManager) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return m.secret, nil
}
