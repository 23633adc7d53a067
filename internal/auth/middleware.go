package auth

import (
	"context"
	"net/http"
	"strings"
)

// authUserKey is a context key for the authenticated user.
type authUserKey struct{}

// UserFromContext returns the authenticated user from the request context.
// Returns nil if the request is not authenticated.
func UserFromContext(ctx context.Context) *Claims {
	if c, ok := ctx.Value(authUserKey{}).(*Claims); ok {
		return c
	}
	return nil
}

// ContextWithUser attaches claims to ctx.
func ContextWithUser(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, authUserKey{}, c)
}

// Public endpoints the storefront calls without a token, keyed by method and path.
var publicRoutes = map[string]bool{
	"POST /api/v1/auth/login":        true,
	"GET /api/v1/settings":           true,
	"GET /api/v1/settings/theme.css": true,
	"POST /api/v1/payment/webhook":   true,
	"GET /api/v1/preview/templates":  true,
	"GET /api/v1/studio/presets":     true,
}

// Public path prefixes. The payment simulator runs inside customer checkout.
var publicPrefixes = []string{
	"/api/v1/payment/simulator",
}

// IsPublic reports whether a request can skip bearer authentication.
func IsPublic(method, path string) bool {
	if publicRoutes[method+" "+path] {
		return true
	}
	for _, p := range publicPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// isPreviewSocket matches studio preview websocket paths, which carry
// their token in the query string.
func isPreviewSocket(path string) bool {
	return strings.HasPrefix(path, "/api/v1/studio/sessions/") && strings.HasSuffix(path, "/preview")
}

// AuthMiddleware validates JWT access tokens on API routes.
// Public paths and non-API paths (healthz, readyz, metrics) are skipped.
func AuthMiddleware(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, "/api/") || IsPublic(r.Method, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			var tokenString string
			if isPreviewSocket(r.URL.Path) {
				// Browser WebSocket API cannot set headers.
				tokenString = r.URL.Query().Get("token")
			} else if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				tokenString = strings.TrimPrefix(h, "Bearer ")
			}
			if tokenString == "" {
				writeAuthError(w, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}

			claims, err := tokens.ValidateAccessToken(tokenString)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "invalid or expired access token")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), claims)))
		})
	}
}
