// Package db opens the SQL connection backing the key-value store and keeps its schema current.
package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/diewo77/glasspro/internal/config"
	"github.com/diewo77/glasspro/internal/store"
	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	connectAttempts = 10
	connectBackoff  = 2 * time.Second
)

// MigrationsSource is where golang-migrate looks for SQL files.
var MigrationsSource = "file://migrations"

// ConnectAndMigrate opens the configured SQL database and makes sure the
// kv_entries table exists. Only sqlite and postgres drivers are accepted.
func ConnectAndMigrate(cfg config.StoreConfig, log logrus.FieldLogger) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var dialector gorm.Dialector
	var dsn string
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
		log.WithField("path", cfg.SQLitePath).Info("opening sqlite store")
	case "postgres":
		dsn = NormalizeDSN(cfg.DatabaseDSN)
		if dsn == "" {
			return nil, errors.New("DATABASE_DSN is empty")
		}
		dialector = postgres.Open(dsn)
		log.WithField("dsn", MaskDSN(dsn)).Info("opening postgres store")
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", cfg.Driver)
	}

	var db *gorm.DB
	var err error
	for i := 0; i < connectAttempts; i++ {
		db, err = gorm.Open(dialector, gcfg)
		if err == nil {
			break
		}
		log.WithError(err).WithField("attempt", i+1).Warn("retrying DB connection")
		time.Sleep(connectBackoff)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	if cfg.Driver == "postgres" && cfg.Migrations {
		if err := runSQLMigrations(ToURLDSN(dsn)); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else if err := Migrate(db); err != nil {
		return nil, err
	}

	if !db.Migrator().HasTable(&store.Entry{}) {
		return nil, errors.New("missing table after migration: kv_entries")
	}
	return db, nil
}

// Migrate creates or updates the kv_entries table with gorm's AutoMigrate.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&store.Entry{}); err != nil {
		return fmt.Errorf("automigrate kv_entries: %w", err)
	}
	return nil
}

// runSQLMigrations executes migrations in ./migrations using golang-migrate file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New(MigrationsSource, dsn)
	if err != nil {
		return err
	}
	defer m.Close()
	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
