package migration

import (
	"github.com/smallbiznis/tipfolio/internal/config"
	subscriptiondomain "github.com/smallbiznis/tipfolio/internal/subscription/domain"
	tipdomain "github.com/smallbiznis/tipfolio/internal/tip/domain"
	userdomain "github.com/smallbiznis/tipfolio/internal/user/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType != "postgres" {
			// Versioned migrations are written for postgres; other drivers
			// (sqlite for local runs) get the schema from the models.
			return conn.AutoMigrate(
				&userdomain.User{},
				&tipdomain.TipRecord{},
				&subscriptiondomain.WebhookEvent{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
