package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"resource-hub-backend/config"
	"resource-hub-backend/internal/model"
)

// Init initializes the database connection and runs migrations.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	log.Println("Running database migrations...")
	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database initialization complete.")
	return db, nil
}

// Migrate creates the schema and the constraint indexes the stores rely
// on. It is shared with the test suites, which run it against in-memory
// SQLite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Actor{},
		&model.Environment{},
		&model.Equipment{},
		&model.TransferRecord{},
		&model.EnvironmentRequest{},
		&model.PushSubscription{},
	); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}

	// Expression indexes AutoMigrate cannot express. Uniqueness is
	// case-insensitive and spans inactive rows: a soft-deleted name
	// still blocks re-creation under the same name.
	ddls := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_environments_name_ci ON environments (LOWER(name))`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_equipments_serial_ci ON equipments (LOWER(serial_number))`,
	}
	for _, ddl := range ddls {
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("index DDL failed: %w", err)
		}
	}
	return nil
}
