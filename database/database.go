package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"crimewatch/config"
)

// Connect opens the database connection for the configured driver and
// returns the handle. Callers own the handle and pass it to every
// component that needs storage; there is no package-level instance.
func Connect(cfg config.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
		)

		log.Printf("Connecting to PostgreSQL at host=%s port=%s db=%s...",
			cfg.DBHost, cfg.DBPort, cfg.DBName)

		db, err := gorm.Open(postgres.Open(dsn), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("postgres connection failed: %w", err)
		}
		return db, nil

	case "sqlite", "sqlite3":
		dbDir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dbDir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("creating sqlite directory: %w", err)
		}

		db, err := gorm.Open(sqlite.Open(cfg.DBPath), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection failed: %w", err)
		}

		log.Printf("SQLite database opened at %s", cfg.DBPath)
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported DB driver: %s", cfg.DBDriver)
	}
}

// Close closes the underlying connection of a gorm handle.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
