package accesspolicy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/replenix/replenix/internal/actorcontext"
)

var (
	chief    = actorcontext.Actor{UserID: 1, Role: actorcontext.RoleChief}
	manager  = actorcontext.Actor{UserID: 2, Role: actorcontext.RoleManager}
	supplier = actorcontext.Actor{UserID: 3, Role: actorcontext.RoleSupplier, SupplierID: 30}
	other    = actorcontext.Actor{UserID: 4, Role: actorcontext.RoleSupplier, SupplierID: 40}
)

func TestCanMutateProduct(t *testing.T) {
	assert.True(t, CanMutateProduct(supplier, 30))
	assert.False(t, CanMutateProduct(other, 30))
	assert.False(t, CanMutateProduct(chief, 30))
	assert.False(t, CanMutateProduct(manager, 30))
}

func TestCanCreateOrder(t *testing.T) {
	assert.True(t, CanCreateOrder(chief))
	assert.True(t, CanCreateOrder(manager))
	assert.False(t, CanCreateOrder(supplier))
}

func TestCanTransitionOrder(t *testing.T) {
	// chief decisions are role-gated only
	assert.True(t, CanTransitionOrder(chief, ActionApprove, 30))
	assert.True(t, CanTransitionOrder(chief, ActionRejectByChief, 30))
	assert.False(t, CanTransitionOrder(manager, ActionApprove, 30))
	assert.False(t, CanTransitionOrder(supplier, ActionApprove, 30))

	// supplier decisions need matching ownership
	assert.True(t, CanTransitionOrder(supplier, ActionConfirm, 30))
	assert.True(t, CanTransitionOrder(supplier, ActionRejectBySupplier, 30))
	assert.False(t, CanTransitionOrder(other, ActionConfirm, 30))
	assert.False(t, CanTransitionOrder(chief, ActionConfirm, 30))
}

func TestCanViewAllOrders(t *testing.T) {
	assert.True(t, CanViewAllOrders(chief))
	assert.True(t, CanViewAllOrders(manager))
	assert.False(t, CanViewAllOrders(supplier))
}
