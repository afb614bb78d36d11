package httpx

import (
	"context"
	"net/http"

	"catalogservice/internal/auth"
)

type contextKey string

const (
	claimsKey    contextKey = "claims"
	requestIDKey contextKey = "requestID"
)

// ClaimsFrom retrieves the verified token claims from the request context, or
// nil for anonymous requests.
func ClaimsFrom(r *http.Request) *auth.Claims {
	if v, ok := r.Context().Value(claimsKey).(*auth.Claims); ok {
		return v
	}
	return nil
}

// PrincipalFrom retrieves the authenticated subject from the request context.
// Empty for anonymous requests.
func PrincipalFrom(r *http.Request) string {
	if claims := ClaimsFrom(r); claims != nil {
		return claims.Sub
	}
	return ""
}

// ContextWithClaims returns a new context carrying the verified claims.
func ContextWithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// RequestIDFrom retrieves the request ID from the request context.
func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithRequestID returns a new context carrying the request ID.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}
