package auth

import (
	"context"

	"github.com/edutrack/apiserver/types"
)

// Identity is the authenticated caller as decoded from a verified token.
// It is an immutable value attached to the request context by the auth
// middleware; nothing downstream mutates it.
type Identity struct {
	UserID int
	Role   types.Role
	Email  string
}

type contextKey string

const identityContextKey contextKey = "identity"

// WithIdentity returns a context carrying the identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// IdentityFromContext extracts the identity attached by the auth middleware.
// The second return is false when no middleware ran, which on a protected
// route is a wiring bug rather than a client error.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(Identity)
	return id, ok
}
