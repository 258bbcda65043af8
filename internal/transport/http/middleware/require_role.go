package middleware

import (
	"net/http"

	"peopledesk/internal/transport/http/api"
)

// RequireRole gates a route on an authenticated principal carrying one of the
// allowed roles. A request with a token that failed to parse gets invalid_token
// rather than unauthenticated so clients can tell expiry from absence.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipal(r.Context())
			if !ok {
				if TokenFromRequest(r) != "" {
					api.Fail(w, http.StatusUnauthorized, "invalid_token", "invalid or expired token", GetRequestID(r.Context()))
					return
				}
				api.Fail(w, http.StatusUnauthorized, "unauthenticated", "authentication required", GetRequestID(r.Context()))
				return
			}

			for _, role := range roles {
				if principal.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			api.Fail(w, http.StatusForbidden, "forbidden", "insufficient role", GetRequestID(r.Context()))
		})
	}
}
