// Package actorctx carries the authenticated caller on a context.Context so
// code below the HTTP layer can see who is acting.
package actorctx

import "context"

type ctxKey struct{}

type Identity struct {
	UserID string
	Email  string
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	v, ok := ctx.Value(ctxKey{}).(Identity)

	return v, ok && v.UserID != ""
}
