// Package actorcontext carries the authenticated actor through request
// contexts. Every core operation receives its actor explicitly; there is
// no process-wide current user.
package actorcontext

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Role is the authenticated actor's role.
type Role string

const (
	RoleManager  Role = "manager"
	RoleChief    Role = "chief"
	RoleSupplier Role = "supplier"
)

// Actor identifies the authenticated caller of an operation.
// SupplierID is zero unless Role is RoleSupplier.
type Actor struct {
	UserID     snowflake.ID
	Role       Role
	SupplierID snowflake.ID
}

// IsSupplier reports whether the actor acts on behalf of a supplier.
func (a Actor) IsSupplier() bool {
	return a.Role == RoleSupplier && a.SupplierID != 0
}

// IsBuyer reports whether the actor is an internal buyer.
func (a Actor) IsBuyer() bool {
	return a.Role == RoleManager || a.Role == RoleChief
}

type actorContextKey struct{}

// WithActor stores the actor in the context.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext returns the actor from context, if set.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	if ctx == nil {
		return Actor{}, false
	}
	actor, ok := ctx.Value(actorContextKey{}).(Actor)
	if !ok || actor.UserID == 0 {
		return Actor{}, false
	}
	return actor, true
}
