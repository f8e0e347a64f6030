package gormviews

import (
	"fmt"

	"github.com/genericviews/gin-generic-views/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open dials the database described by settings and returns a gorm handle
// for the model views to share. SQLite with an empty DSN opens an in-memory
// database, which the view test helpers rely on.
func Open(settings config.DatabaseSettings) (*gorm.DB, error) {
	switch settings.Type {
	case config.SqliteDbType:
		dsn := settings.DSN
		if dsn == "" {
			dsn = ":memory:"
		}
		db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return db, nil
	case config.PostgresDbType:
		return openPostgres(settings)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", settings.Type)
	}
}

// openPostgres connects to the server behind settings.DSN. When DBName is
// set the database is created first if needed, then the connection is
// re-established against it.
func openPostgres(settings config.DatabaseSettings) (*gorm.DB, error) {
	dsn := settings.DSN
	if settings.DBName != "" {
		if err := ensureDatabase(settings.DSN, settings.DBName); err != nil {
			return nil, err
		}
		dsn = fmt.Sprintf("%s dbname=%s", settings.DSN, settings.DBName)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres database: %w", err)
	}
	return db, nil
}

// ensureDatabase creates dbName through the admin connection adminDSN. The
// CREATE DATABASE error is ignored so an existing database passes through.
func ensureDatabase(adminDSN, dbName string) error {
	admin, err := gorm.Open(postgres.Open(adminDSN), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to postgres server: %w", err)
	}
	defer func() { _ = Close(admin) }()

	_ = admin.Exec(fmt.Sprintf("CREATE DATABASE %s", dbName)).Error
	return nil
}

// Close releases the underlying sql.DB of a gorm handle.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying connection: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// DropDatabase removes a postgres database, used by integration test
// teardown.
func DropDatabase(adminDSN, dbName string) error {
	admin, err := gorm.Open(postgres.Open(adminDSN), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to postgres server: %w", err)
	}
	defer func() { _ = Close(admin) }()

	if err := admin.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS %s", dbName)).Error; err != nil {
		return fmt.Errorf("failed to drop database %s: %w", dbName, err)
	}
	return nil
}
