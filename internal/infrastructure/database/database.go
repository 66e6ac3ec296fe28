package database

import (
	"fmt"
	"log"

	"github.com/quickbill/billing-api/internal/config"
	"github.com/quickbill/billing-api/internal/domain/entity"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens the database selected by the configured driver. SQLite keeps
// everything in a single local file; Postgres targets a remote server.
func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DSN(),
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		})
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.Driver == "sqlite" {
		// SQLite serializes writers; a single connection avoids lock errors
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	}

	log.Printf("Successfully connected to %s database", cfg.Driver)
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.Account{},
		&entity.Profile{},
		&entity.Product{},
		&entity.Customer{},
		&entity.Invoice{},
		&entity.InvoiceItem{},
		&entity.IdempotencyKey{},
		&entity.PasswordResetToken{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}
