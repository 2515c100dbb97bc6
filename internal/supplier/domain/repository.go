package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, supplier *Supplier) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Supplier, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*Supplier, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Supplier, error)
}
