package domain

import (
	"context"
	"errors"
	"time"

	"github.com/replenix/replenix/internal/actorcontext"
	"github.com/replenix/replenix/internal/replenishment"
)

type Service interface {
	Create(ctx context.Context, actor actorcontext.Actor, req CreateRequest) (*Response, error)
	Update(ctx context.Context, actor actorcontext.Actor, id string, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, actor actorcontext.Actor, id string) error
	List(ctx context.Context, actor actorcontext.Actor) ([]Response, error)
	ListBySupplier(ctx context.Context, actor actorcontext.Actor) ([]Response, error)
	Get(ctx context.Context, actor actorcontext.Actor, id string) (*Response, error)
}

type CreateRequest struct {
	Name         string
	Quantity     *int64
	LeadTime     *int
	ServiceLevel *float64
	SalesHistory []int64
}

type UpdateRequest struct {
	Name         *string
	Quantity     *int64
	LeadTime     *int
	ServiceLevel *float64
	SalesHistory *[]int64
}

// Response is the product record shape the UI depends on. Field names
// are part of the contract.
type Response struct {
	ID                  string               `json:"_id"`
	Name                string               `json:"name"`
	Quantity            int64                `json:"quantity"`
	LeadTime            int                  `json:"lead_time"`
	ServiceLevel        float64              `json:"service_level"`
	SalesHistory        []int64              `json:"sales_history"`
	AvgDailyDemand      float64              `json:"avg_daily_demand"`
	DemandStdDev        float64              `json:"demand_std_dev"`
	SafetyStock         int64                `json:"safety_stock"`
	ReorderPoint        int64                `json:"reorder_point"`
	Status              replenishment.Status `json:"status"`
	RecommendedQuantity int64                `json:"recommended_quantity"`
	SupplierID          string               `json:"supplierId"`
	SupplierName        string               `json:"supplierName"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

var (
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidQuantity     = errors.New("invalid_quantity")
	ErrInvalidLeadTime     = errors.New("invalid_lead_time")
	ErrInvalidSalesHistory = errors.New("invalid_sales_history")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("product_not_found")
	ErrForbidden           = errors.New("product_forbidden")
	ErrOpenOrders          = errors.New("product_has_open_orders")
)
