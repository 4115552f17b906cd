package auth

import (
	"context"
	"net/http"
	"strings"

	"dizzie/internal/api"
)

type contextKey struct{}

// tokenCookie is the cookie fallback used by the web front end.
const tokenCookie = "token"

// Require gates a handler on a minimum role. A missing token is a 400,
// a token failing verification a 401, an insufficient role a 403. On
// success the decoded claims are attached to the request context.
func (m *Manager) Require(min Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			api.Simple(w, r, http.StatusBadRequest, "Missing Token")
			return
		}

		claims, err := m.Verify(token)
		if err != nil {
			api.Simple(w, r, http.StatusUnauthorized, "Invalid Token")
			return
		}

		if !claims.Role.AtLeast(min) {
			api.Simple(w, r, http.StatusForbidden, "Invalid Permissions")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// WithClaims stores verified claims on a context.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, contextKey{}, claims)
}

// ClaimsFrom returns the claims attached by Require, or nil.
func ClaimsFrom(ctx context.Context) *Claims {
	claims, _ := ctx.Value(contextKey{}).(*Claims)
	return claims
}

func extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return strings.TrimSpace(header)
	}

	if cookie, err := r.Cookie(tokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return ""
}
