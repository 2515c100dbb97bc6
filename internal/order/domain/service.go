package domain

import (
	"context"
	"errors"
	"time"

	"github.com/replenix/replenix/internal/actorcontext"
)

type Service interface {
	Create(ctx context.Context, actor actorcontext.Actor, req CreateRequest) (*Response, error)
	// List returns all orders for buyers and only the supplier's own
	// orders for supplier actors, newest first.
	List(ctx context.Context, actor actorcontext.Actor) ([]Response, error)
	// ListPendingForSupplier returns the supplier's confirmation inbox.
	ListPendingForSupplier(ctx context.Context, actor actorcontext.Actor) ([]Response, error)

	Approve(ctx context.Context, actor actorcontext.Actor, id string) (*Response, error)
	RejectByChief(ctx context.Context, actor actorcontext.Actor, id string) (*Response, error)
	Confirm(ctx context.Context, actor actorcontext.Actor, id string) (*Response, error)
	RejectBySupplier(ctx context.Context, actor actorcontext.Actor, id string) (*Response, error)
}

type CreateRequest struct {
	ProductID string
	Quantity  int64
}

// Response is the order record shape the UI depends on. Field names are
// part of the contract.
type Response struct {
	ID           string    `json:"_id"`
	ProductID    string    `json:"productId"`
	ProductName  string    `json:"productName"`
	Quantity     int64     `json:"quantity"`
	SupplierID   string    `json:"supplierId"`
	SupplierName string    `json:"supplierName"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

var (
	ErrInvalidQuantity        = errors.New("invalid_order_quantity")
	ErrInvalidID              = errors.New("invalid_order_id")
	ErrNotFound               = errors.New("order_not_found")
	ErrForbidden              = errors.New("order_forbidden")
	ErrInvalidTransition      = errors.New("invalid_transition")
	ErrProductNotFound        = errors.New("order_product_not_found")
	ErrProductWithoutSupplier = errors.New("order_product_without_supplier")
)

// ToResponse converts a record to its API shape.
func ToResponse(o *Order) Response {
	return Response{
		ID:           o.ID.String(),
		ProductID:    o.ProductID.String(),
		ProductName:  o.ProductName,
		Quantity:     o.Quantity,
		SupplierID:   o.SupplierID.String(),
		SupplierName: o.SupplierName,
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
	}
}
