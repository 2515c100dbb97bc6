// Package domain contains core types for the product catalog.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Product is a stocked item owned by a supplier. The demand statistics
// and reorder signal are cached columns, recomputed on every mutation of
// quantity, lead time, sales history, or service level, so readers never
// observe stale derived values.
type Product struct {
	ID             snowflake.ID               `gorm:"primaryKey"`
	SupplierID     snowflake.ID               `gorm:"column:supplier_id;not null;index"`
	Name           string                     `gorm:"type:text;not null"`
	Quantity       int64                      `gorm:"not null"`
	LeadTime       int                        `gorm:"column:lead_time;not null"`
	ServiceLevel   float64                    `gorm:"column:service_level;not null"`
	SalesHistory   datatypes.JSONSlice[int64] `gorm:"column:sales_history;type:jsonb"`
	AvgDailyDemand float64                    `gorm:"column:avg_daily_demand;not null"`
	DemandStdDev   float64                    `gorm:"column:demand_std_dev;not null"`
	SafetyStock    int64                      `gorm:"column:safety_stock;not null"`
	ReorderPoint   int64                      `gorm:"column:reorder_point;not null"`
	CreatedAt      time.Time                  `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time                  `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Product) TableName() string { return "products" }
