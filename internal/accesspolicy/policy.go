// Package accesspolicy holds the role and ownership checks shared by the
// product catalog and the order workflow. Every predicate is a pure
// function over the actor and the entity's ownership fields.
package accesspolicy

import (
	"github.com/bwmarrin/snowflake"
	"github.com/replenix/replenix/internal/actorcontext"
)

// OrderAction names a workflow transition an actor may attempt.
type OrderAction string

const (
	ActionApprove          OrderAction = "approve"
	ActionRejectByChief    OrderAction = "reject_by_chief"
	ActionConfirm          OrderAction = "confirm"
	ActionRejectBySupplier OrderAction = "reject_by_supplier"
)

// CanMutateProduct reports whether the actor may update or delete a
// product owned by ownerSupplierID.
func CanMutateProduct(actor actorcontext.Actor, ownerSupplierID snowflake.ID) bool {
	return actor.IsSupplier() && actor.SupplierID == ownerSupplierID
}

// CanCreateProduct reports whether the actor may create products at all.
func CanCreateProduct(actor actorcontext.Actor) bool {
	return actor.IsSupplier()
}

// CanCreateOrder reports whether the actor may place purchase orders.
func CanCreateOrder(actor actorcontext.Actor) bool {
	return actor.IsBuyer()
}

// CanTransitionOrder reports whether the actor may attempt the given
// transition on an order owned by orderSupplierID. State preconditions
// are the workflow's concern; this checks role and ownership only.
func CanTransitionOrder(actor actorcontext.Actor, action OrderAction, orderSupplierID snowflake.ID) bool {
	switch action {
	case ActionApprove, ActionRejectByChief:
		return actor.Role == actorcontext.RoleChief
	case ActionConfirm, ActionRejectBySupplier:
		return actor.IsSupplier() && actor.SupplierID == orderSupplierID
	default:
		return false
	}
}

// CanViewAllOrders reports whether the actor sees every order or only
// those addressed to their own supplier.
func CanViewAllOrders(actor actorcontext.Actor) bool {
	return actor.IsBuyer()
}
