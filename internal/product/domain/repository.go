package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Product, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Product, error)
	FindBySupplierID(ctx context.Context, db *gorm.DB, supplierID snowflake.ID) ([]Product, error)
	Update(ctx context.Context, db *gorm.DB, product *Product) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}

// OpenOrderChecker reports how many non-terminal orders reference a
// product. Implemented by the order workflow's repository; the catalog
// refuses to delete products that open orders still point at.
type OpenOrderChecker interface {
	CountOpenByProductID(ctx context.Context, db *gorm.DB, productID snowflake.ID) (int64, error)
}
