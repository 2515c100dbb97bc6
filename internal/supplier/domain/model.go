// Package domain contains core types for the supplier directory.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Supplier is an external vendor account. Company identity is immutable
// after registration; there is no update operation.
type Supplier struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	UserID      snowflake.ID `gorm:"column:user_id;not null;uniqueIndex"`
	Name        string       `gorm:"type:text;not null"`
	ContactInfo string       `gorm:"column:contact_info;type:text;not null"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Supplier) TableName() string { return "suppliers" }
