package migration

import (
	authdomain "github.com/replenix/replenix/internal/auth/domain"
	"github.com/replenix/replenix/internal/config"
	orderdomain "github.com/replenix/replenix/internal/order/domain"
	productdomain "github.com/replenix/replenix/internal/product/domain"
	"github.com/replenix/replenix/internal/seed"
	supplierdomain "github.com/replenix/replenix/internal/supplier/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite and mysql installs fall back to the model schema
			if err := conn.AutoMigrate(
				&authdomain.User{},
				&authdomain.Session{},
				&supplierdomain.Supplier{},
				&productdomain.Product{},
				&orderdomain.Order{},
			); err != nil {
				return err
			}
		}

		return seed.EnsureBootstrapChief(conn, cfg.BootstrapChiefUsername, cfg.BootstrapChiefPassword)
	}),
)
