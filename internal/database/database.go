package database

import (
	"fmt"
	"time"

	"github.com/yukikurage/resource-management-api/internal/config"
	"github.com/yukikurage/resource-management-api/internal/logger"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Dialector returns the GORM dialector for a SQL driver name.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	case config.DriverMySQL:
		return mysql.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnsupportedDriver, driver)
	}
}

// Open opens a GORM connection with the settings every store relies on:
// unique violations are translated to gorm.ErrDuplicatedKey and references
// stay soft, so no foreign keys are created.
func Open(dialector gorm.Dialector, log *zap.Logger, cfg *config.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	}
	if log != nil {
		level, threshold := "info", time.Duration(0)
		if cfg != nil {
			level, threshold = cfg.LogLevel, cfg.DBSlowThreshold
		}
		gormConfig.Logger = logger.NewGormLogger(log, logger.GormLevel(level), threshold)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Connect opens the SQL database selected by the configuration.
func Connect(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, err
	}

	db, err := Open(dialector, log, cfg)
	if err != nil {
		return nil, err
	}

	log.Info("Database connection established", zap.String("driver", cfg.DBDriver))
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
