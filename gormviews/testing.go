//go:build integration
// +build integration

package gormviews

import (
	"strings"
	"testing"

	"github.com/genericviews/gin-generic-views/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SetupTestDB initializes a test database with automatic cleanup and
// migrates the given models.
func SetupTestDB(t *testing.T, dbType string, models ...interface{}) *gorm.DB {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}
		cleanupFunc = func() {
			// SQLite in-memory cleanup is automatic
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type:   config.PostgresDbType,
			DSN:    "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			DBName: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := Open(settings)
	require.NoError(t, err, "Failed to create database connection")

	err = db.AutoMigrate(models...)
	require.NoError(t, err, "Failed to migrate test models")

	t.Cleanup(func() {
		if err := Close(db); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
		cleanupFunc()
	})

	return db
}
