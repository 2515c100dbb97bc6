// Package seed bootstraps the first chief account so a fresh install
// has someone who can approve orders.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/replenix/replenix/internal/actorcontext"
	authdomain "github.com/replenix/replenix/internal/auth/domain"
	"github.com/replenix/replenix/internal/auth/password"
	"gorm.io/gorm"
)

// EnsureBootstrapChief creates the configured chief account when no
// internal user exists yet. It is a no-op when credentials are not
// configured or any internal account is already present.
func EnsureBootstrapChief(db *gorm.DB, username, plainPassword string) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if username == "" || plainPassword == "" {
		return nil
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var internal int64
		err := tx.Model(&authdomain.User{}).
			Where("role IN ?", []actorcontext.Role{actorcontext.RoleManager, actorcontext.RoleChief}).
			Count(&internal).Error
		if err != nil {
			return err
		}
		if internal > 0 {
			return nil
		}

		hashed, err := password.Hash(plainPassword)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		return tx.Create(&authdomain.User{
			ID:           node.Generate(),
			Username:     username,
			PasswordHash: hashed,
			Role:         actorcontext.RoleChief,
			CreatedAt:    now,
			UpdatedAt:    now,
		}).Error
	})
}
