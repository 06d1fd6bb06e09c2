package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/billbuddy-api/internal/config"
	"github.com/sangkips/billbuddy-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured store. sqlite is the default local store;
// postgres is used when DB_DRIVER=postgres.
func Open(cfg *config.DatabaseConfig, log *logrus.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLogLevel(log.GetLevel()),
			IgnoreRecordNotFoundError: true,
		}),
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DSN(),
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		})
	case "sqlite", "":
		dialector = sqlite.Open(sqliteDSN(cfg.DSN()))
	default:
		return nil, fmt.Errorf("unknown database driver %q (use sqlite or postgres)", cfg.Driver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.Driver == "postgres" {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	} else {
		// single local writer
		sqlDB.SetMaxOpenConns(1)
	}

	log.WithField("driver", dialector.Name()).Info("Connected to database")
	return db, nil
}

// OpenSQLite opens a sqlite store at dsn, e.g. "file:test?mode=memory&cache=shared".
func OpenSQLite(dsn string, log *logrus.Logger) (*gorm.DB, error) {
	return Open(&config.DatabaseConfig{Driver: "sqlite", Path: dsn}, log)
}

func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "mode=memory") || strings.Contains(dsn, "_journal_mode") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_journal_mode=WAL&_busy_timeout=5000"
}

func gormLogLevel(level logrus.Level) logger.LogLevel {
	switch {
	case level >= logrus.DebugLevel:
		return logger.Info
	case level >= logrus.WarnLevel:
		return logger.Warn
	default:
		return logger.Error
	}
}

// AutoMigrate creates every table that does not exist yet. Safe on every start.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		// Catalog
		&entity.DiningTable{},
		&entity.Item{},

		// Billing
		&entity.Order{},
		&entity.OrderItem{},
		&entity.Bill{},
		&entity.Due{},

		// System
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// DefaultTables and DefaultItems seed an empty catalog.
var (
	DefaultTables = []entity.DiningTable{
		{ID: "T1", Name: "T1", Status: "empty"},
		{ID: "T2", Name: "T2", Status: "empty"},
		{ID: "T3", Name: "T3", Status: "empty"},
	}
	DefaultItems = []entity.Item{
		{ID: "chapati", Name: "Chapati", Price: decimal.NewFromInt(15)},
		{ID: "dal", Name: "Dal", Price: decimal.NewFromInt(60)},
		{ID: "paneer", Name: "Paneer", Price: decimal.NewFromInt(180)},
	}
)

// SeedCatalog inserts the default tables and items when the catalog is empty.
func SeedCatalog(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tables int64
		if err := tx.Model(&entity.DiningTable{}).Count(&tables).Error; err != nil {
			return err
		}
		if tables == 0 {
			seed := append([]entity.DiningTable(nil), DefaultTables...)
			if err := tx.Create(&seed).Error; err != nil {
				return fmt.Errorf("seed tables: %w", err)
			}
		}

		var items int64
		if err := tx.Model(&entity.Item{}).Count(&items).Error; err != nil {
			return err
		}
		if items == 0 {
			seed := append([]entity.Item(nil), DefaultItems...)
			if err := tx.Create(&seed).Error; err != nil {
				return fmt.Errorf("seed items: %w", err)
			}
		}
		return nil
	})
}
