package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, order *Order) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Order, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Order, error)
	FindBySupplierID(ctx context.Context, db *gorm.DB, supplierID snowflake.ID, statuses []Status) ([]Order, error)
	// UpdateStatus applies a compare-and-swap on (id, from). It reports
	// whether the row changed; a false result means another caller won
	// the transition or the order was never in the expected state.
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, from, to Status, updatedAt time.Time) (bool, error)
	CountOpenByProductID(ctx context.Context, db *gorm.DB, productID snowflake.ID) (int64, error)
}
