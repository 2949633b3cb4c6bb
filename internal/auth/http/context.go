// Package http provides the session middlewares, login handlers and rate limiting for
// the administrator and compliance user surfaces.
package http

import (
	"context"

	authDomain "github.com/allisson/whistleblower/internal/auth/domain"
)

// principalKey is a context key type for storing the authenticated compliance user.
type principalKey struct{}

// WithPrincipal stores an authenticated compliance user in the context.
func WithPrincipal(ctx context.Context, principal *authDomain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipal retrieves the authenticated compliance user from the context.
// Returns (nil, false) when ComplianceSessionMiddleware did not run.
func GetPrincipal(ctx context.Context) (*authDomain.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(*authDomain.Principal)
	return principal, ok && principal != nil
}
