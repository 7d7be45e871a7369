package service

import (
	"context"

	"github.com/spec-kit/complaint-desk/internal/events"
)

type actorKey struct{}

// WithActor attaches the acting user to ctx so published events carry it.
func WithActor(ctx context.Context, actor events.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the acting user, or the zero Actor for system work.
func ActorFromContext(ctx context.Context) events.Actor {
	actor, _ := ctx.Value(actorKey{}).(events.Actor)
	return actor
}
