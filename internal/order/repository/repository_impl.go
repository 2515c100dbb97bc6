package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/replenix/replenix/internal/order/domain"
	productdomain "github.com/replenix/replenix/internal/product/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

// ProvideOpenOrderChecker exposes the repository to the product catalog
// so deletion can be blocked while open orders reference a product.
func ProvideOpenOrderChecker(r domain.Repository) productdomain.OpenOrderChecker {
	return r
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Create(order).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Order, error) {
	var o domain.Order
	err := db.WithContext(ctx).Where("id = ?", id).Take(&o).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Order, error) {
	var items []domain.Order
	if err := db.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindBySupplierID(ctx context.Context, db *gorm.DB, supplierID snowflake.ID, statuses []domain.Status) ([]domain.Order, error) {
	q := db.WithContext(ctx).Where("supplier_id = ?", supplierID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}

	var items []domain.Order
	if err := q.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateStatus is a conditional update keyed on the expected source
// state. Concurrent callers race on the same row; exactly one sees
// RowsAffected == 1 and the rest observe a no-op.
func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, from, to domain.Status, updatedAt time.Time) (bool, error) {
	res := db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":     to,
			"updated_at": updatedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repo) CountOpenByProductID(ctx context.Context, db *gorm.DB, productID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("product_id = ? AND status IN ?", productID, domain.OpenStatuses()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
