package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, user *User) error
	FindByUsername(ctx context.Context, db *gorm.DB, username string) (*User, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*User, error)
	// CountInternal counts manager and chief accounts; the first internal
	// registration becomes the chief.
	CountInternal(ctx context.Context, db *gorm.DB) (int64, error)
}

type SessionRepository interface {
	Create(ctx context.Context, db *gorm.DB, session *Session) error
	FindByTokenHash(ctx context.Context, db *gorm.DB, tokenHash string) (*Session, error)
	UpdateLastSeen(ctx context.Context, db *gorm.DB, sessionID snowflake.ID, lastSeen time.Time) error
	Revoke(ctx context.Context, db *gorm.DB, sessionID snowflake.ID, revokedAt time.Time) error
}
