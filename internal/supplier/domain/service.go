package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	List(ctx context.Context) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
}

type Response struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	ContactInfo string    `json:"contactInfo"`
	CreatedAt   time.Time `json:"createdAt"`
}

var (
	ErrNotFound  = errors.New("supplier_not_found")
	ErrInvalidID = errors.New("invalid_supplier_id")
)

// ToResponse converts a record to its API shape.
func ToResponse(s *Supplier) Response {
	return Response{
		ID:          s.ID.String(),
		Name:        s.Name,
		ContactInfo: s.ContactInfo,
		CreatedAt:   s.CreatedAt,
	}
}
