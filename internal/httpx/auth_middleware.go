package httpx

import (
	"net/http"
	"strings"

	"catalogservice/internal/auth"
)

// AuthMiddleware verifies the bearer token, if any, and enforces the route
// policy. A token that fails verification counts as absent claims, so public
// routes stay reachable and protected routes answer 401 rather than 403.
// Verified claims are stored on the request context for auditing.
func AuthMiddleware(secret string, policy *auth.Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var claims *auth.Claims
			if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
				token := strings.TrimPrefix(authHeader, "Bearer ")
				if parsed, err := auth.VerifyToken(secret, token); err == nil {
					claims = parsed
				}
			}

			switch policy.Decide(r.Method, r.URL.Path, claims) {
			case auth.Unauthenticated:
				JSONError(w, http.StatusUnauthorized, "unauthorized", "Authentication required", nil)
				return
			case auth.Forbidden:
				JSONError(w, http.StatusForbidden, "forbidden", "Missing required authority", nil)
				return
			}

			if claims != nil {
				r = r.WithContext(ContextWithClaims(r.Context(), claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}
