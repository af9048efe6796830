// AngelaMos | 2026
// opstoken.go

package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/yembez/quittancesimple/internal/core"
)

// RequireOpsToken guards operational endpoints with a static bearer token.
// End-user authentication lives in the identity provider, so this service
// has no user sessions of its own to authorize against.
func RequireOpsToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				core.NotFound(w, "resource")
				return
			}

			presented := extractBearer(r)
			if presented == "" {
				core.Unauthorized(w, "missing ops token")
				return
			}

			if subtle.ConstantTimeCompare(
				[]byte(presented),
				[]byte(token),
			) != 1 {
				core.Forbidden(w, "invalid ops token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func extractBearer(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
