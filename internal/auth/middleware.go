package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

type identityKey struct{}

// Middleware enforces bearer-token auth on operations that declare a
// security requirement. Public operations (empty Security) pass through.
func (i *Issuer) Middleware(api huma.API) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if len(ctx.Operation().Security) == 0 {
			next(ctx)
			return
		}

		header := ctx.Header("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "missing bearer token")
			return
		}

		identity, err := i.ParseAccess(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "invalid token")
			return
		}

		next(huma.WithValue(ctx, identityKey{}, identity))
	}
}

// InjectIdentity returns a middleware that sets a fixed identity on every
// request. Used by handler tests in place of Middleware.
func InjectIdentity(identity Identity) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		next(huma.WithValue(ctx, identityKey{}, identity))
	}
}

// WithIdentity returns a context carrying the given identity. Used by tests.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the authenticated identity set by Middleware.
func IdentityFromContext(ctx context.Context) (Identity, error) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	if !ok {
		return Identity{}, ErrNoIdentity
	}
	return identity, nil
}
