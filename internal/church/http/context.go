package http

import (
	"context"

	"github.com/newcreaturechurch/church-api/internal/church/domain"
)

type contextKey struct{ name string }

var identityKey = &contextKey{"identity"}

// withIdentity attaches the authenticated identity to the request context.
// Identity flows as an explicit context value; handlers never see a shared
// mutable request object.
func withIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the authenticated identity, if the gate admitted one.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey).(domain.Identity)
	return id, ok
}
