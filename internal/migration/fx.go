package migration

import (
	"github.com/linguasign/certiq/internal/audit/domain"
	"github.com/linguasign/certiq/internal/config"
	holidaydomain "github.com/linguasign/certiq/internal/holiday/domain"
	quotedomain "github.com/linguasign/certiq/internal/quote/domain"
	settingsdomain "github.com/linguasign/certiq/internal/settings/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType != "postgres" {
			// Local sqlite and mysql setups have no versioned migration
			// path; let gorm create the schema directly.
			return conn.AutoMigrate(
				&quotedomain.Quote{},
				&quotedomain.LineItem{},
				&quotedomain.QuoteResults{},
				&holidaydomain.Holiday{},
				&settingsdomain.Setting{},
				&domain.ActivityLog{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
