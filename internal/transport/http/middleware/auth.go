package middleware

import (
	"context"
	"net/http"
	"strings"

	"peopledesk/internal/domain/auth"
)

type ctxKey string

const ctxKeyPrincipal ctxKey = "principal"

// Principal is the authenticated caller decoded from the token.
type Principal struct {
	Role   string
	Email  string
	UserID string
}

// Auth decodes the token cookie (or a bearer header) into the request context.
// It never blocks the request itself: the role middleware and the handlers
// decide whether authentication is required.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := TokenFromRequest(r)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, raw)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyPrincipal, Principal{
				Role:   claims.Role,
				Email:  claims.Email,
				UserID: claims.UserID,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenFromRequest prefers the token cookie and falls back to a bearer header.
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(auth.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

func GetPrincipal(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(ctxKeyPrincipal).(Principal)
	return principal, ok
}
