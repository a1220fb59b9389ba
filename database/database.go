package database

import (
	"fmt"

	"agency-site/config"
	"agency-site/internal/logging"

	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	db, err := Open(config.DB_DRIVER, config.DB_URL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Migration error")
	}

	DB = db
	log.Info().Str("driver", config.DB_DRIVER).Msg("Connected and migrated successfully")
}

// Open connects with the named driver. "sqlite" is meant for local
// development and tests; production runs on "postgres".
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres", "postgresql", "":
		dialector = postgres.Open(dsn)
	case "sqlite", "sqlite3":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logging.GormLogger()})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if db.Dialector.Name() == "sqlite" {
		// One connection: an in-memory database exists per connection, and
		// SQLite ignores FOREIGN KEY clauses unless enabled on it.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
		}
	}
	return db, nil
}

// Migrate applies every pending migration in order.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, Migrations())
	return m.Migrate()
}
