// Package domain contains the purchase-order workflow types and state
// machine.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/replenix/replenix/internal/accesspolicy"
)

// Status is an order's position in the approval workflow. The string
// values are part of the API contract.
type Status string

const (
	StatusPendingChiefApproval    Status = "pending_chief_approval"
	StatusRejectedByChief         Status = "rejected_by_chief"
	StatusPendingSupplierApproval Status = "pending_supplier_approval"
	StatusConfirmedBySupplier     Status = "confirmed_by_supplier"
	StatusRejectedBySupplier      Status = "rejected_by_supplier"
)

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	switch s {
	case StatusRejectedByChief, StatusConfirmedBySupplier, StatusRejectedBySupplier:
		return true
	default:
		return false
	}
}

// transitions maps each action to its required source state and target.
var transitions = map[accesspolicy.OrderAction]struct {
	From Status
	To   Status
}{
	accesspolicy.ActionApprove:          {From: StatusPendingChiefApproval, To: StatusPendingSupplierApproval},
	accesspolicy.ActionRejectByChief:    {From: StatusPendingChiefApproval, To: StatusRejectedByChief},
	accesspolicy.ActionConfirm:          {From: StatusPendingSupplierApproval, To: StatusConfirmedBySupplier},
	accesspolicy.ActionRejectBySupplier: {From: StatusPendingSupplierApproval, To: StatusRejectedBySupplier},
}

// TransitionFor returns the source and target states for an action.
func TransitionFor(action accesspolicy.OrderAction) (from, to Status, ok bool) {
	t, ok := transitions[action]
	if !ok {
		return "", "", false
	}
	return t.From, t.To, true
}

// OpenStatuses lists the non-terminal states. Orders in these states
// block deletion of the product they reference.
func OpenStatuses() []Status {
	return []Status{StatusPendingChiefApproval, StatusPendingSupplierApproval}
}

// Order is a purchase order. Product and supplier identity are copied
// at creation: later catalog edits or deletions must not retroactively
// change historical orders.
type Order struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	ProductID    snowflake.ID `gorm:"column:product_id;not null;index"`
	ProductName  string       `gorm:"column:product_name;type:text;not null"`
	SupplierID   snowflake.ID `gorm:"column:supplier_id;not null;index"`
	SupplierName string       `gorm:"column:supplier_name;type:text;not null"`
	Quantity     int64        `gorm:"not null"`
	Status       Status       `gorm:"type:text;not null"`
	CreatedByID  snowflake.ID `gorm:"column:created_by_id;not null"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Order) TableName() string { return "orders" }
