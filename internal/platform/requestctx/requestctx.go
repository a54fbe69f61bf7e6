// Package requestctx carries the authenticated identity through a request.
package requestctx

import "context"

// identityContextKey is the context key for the authenticated identity.
type identityContextKey struct{}

// Identity is the resolved caller of an authenticated request.
//
// Token is the exact bearer token the client presented, kept so logout can
// revoke that token and no other.
type Identity struct {
	UserID string
	Token  string
}

// WithIdentity stores the authenticated identity in context.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, identityContextKey{}, identity)
}

// IdentityFromContext returns the authenticated identity stored in context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	identity, ok := ctx.Value(identityContextKey{}).(Identity)
	return identity, ok && identity.UserID != ""
}
