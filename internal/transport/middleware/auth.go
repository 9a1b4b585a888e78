package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/teamledger/teamledger-backend/internal/auth"
	"github.com/teamledger/teamledger-backend/internal/domain"
	"github.com/teamledger/teamledger-backend/pkg/ctxutil"
)

// sessionResolver validates a bearer session credential.
type sessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*auth.Principal, error)
}

// keyVerifier validates a presented API key secret.
type keyVerifier interface {
	Verify(ctx context.Context, secret string) (*auth.Principal, error)
}

// Auth returns middleware that authenticates requests via Authorization
// Bearer (session) or X-API-Key (machine key) and stores the resulting
// principal in the context.
//
// A request with no credential passes through anonymously; route-level
// guards decide whether that is acceptable. A request that presents a
// credential which fails to validate is rejected here with 401.
func Auth(sessions sessionResolver, keys keyVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				p   *auth.Principal
				err error
			)

			switch {
			case extractBearerToken(r) != "":
				p, err = sessions.ResolveSession(r.Context(), extractBearerToken(r))
			case r.Header.Get("X-API-Key") != "":
				p, err = keys.Verify(r.Context(), r.Header.Get("X-API-Key"))
			default:
				next.ServeHTTP(w, r) // Anonymous
				return
			}

			if err != nil {
				code, message := "invalid_credentials", "invalid credentials"
				if errors.Is(err, domain.ErrInvalidKey) {
					code, message = "invalid_api_key", "invalid api key"
				}
				writeError(w, http.StatusUnauthorized, code, message)
				return
			}

			ctx := ctxutil.WithPrincipal(r.Context(), p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
