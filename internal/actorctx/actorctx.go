// Package actorctx carries the actor performing the current unit of
// work through a context.Context. Each inbound request derives its own
// context, so the slot is isolated between concurrently handled
// operations and released automatically when the request ends.
package actorctx

import (
	"context"

	"resource-hub-backend/internal/model"
)

type ctxKey struct{}

// With returns a copy of ctx carrying actor as the current actor.
func With(ctx context.Context, actor *model.Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, actor)
}

// Current returns the actor attached to ctx, if any. Stores consult it
// to stamp provenance columns; mutations performed without a current
// actor leave those columns untouched.
func Current(ctx context.Context) (*model.Actor, bool) {
	actor, ok := ctx.Value(ctxKey{}).(*model.Actor)
	if !ok || actor == nil {
		return nil, false
	}
	return actor, true
}
