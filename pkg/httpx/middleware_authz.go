package httpx

import (
	"net/http"
	"strings"
)

// RequireRole the caller must hold one of the provided roles. Must run after
// AuthnMiddleware so the verified claims are present in context.
func RequireRole(allowed ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromCtx(r.Context())
			if !ok {
				// Authn never ran or was bypassed, treat as unauthenticated.
				writeBearerError(w, "missing access token")
				return
			}

			if !claims.HasRole(allowed...) {
				writeRoleError(w, allowed...)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RFC 6750-style error response for a role the caller does not hold.
func writeRoleError(w http.ResponseWriter, allowed ...string) {
	w.Header().
		Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+strings.Join(allowed, " ")+`"`)
	WriteError(w, http.StatusForbidden, "forbidden", "caller role not permitted")
}
