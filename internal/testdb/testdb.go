package testdb

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/phrazzld/generic-crud/internal/config"
	"github.com/phrazzld/generic-crud/internal/platform/gormstore"
	"github.com/phrazzld/generic-crud/internal/platform/postgres"
	"github.com/phrazzld/generic-crud/internal/redact"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Environment variables naming the test databases.
const (
	EnvPostgresURL = "CRUD_TEST_DATABASE_URL"
	EnvMySQLURL    = "CRUD_TEST_MYSQL_URL"
)

const setupTimeout = 30 * time.Second

// IsCI reports whether the tests run under a CI system.
func IsCI() bool {
	for _, name := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI"} {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// urlOrSkip returns the URL in env, skipping the test when it is unset.
func urlOrSkip(t *testing.T, env string) string {
	t.Helper()
	url := os.Getenv(env)
	if url == "" {
		if IsCI() {
			t.Logf("%s is not set; database tests are skipped in CI", env)
		}
		t.Skipf("%s not set", env)
	}
	t.Logf("using test database %s", redact.String(url))
	return url
}

func testConfig(driver, url string) config.DatabaseConfig {
	return config.DatabaseConfig{
		Driver:          driver,
		URL:             url,
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
	}
}

// Postgres opens the database in CRUD_TEST_DATABASE_URL and applies the
// migrations.
func Postgres(t *testing.T) *sql.DB {
	t.Helper()
	url := urlOrSkip(t, EnvPostgresURL)

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	db, err := postgres.Open(ctx, testConfig("postgres", url), nil)
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, postgres.Migrate(ctx, db, "up", nil), "failed to migrate test database")

	t.Cleanup(func() {
		_, err := db.Exec("TRUNCATE items, categories RESTART IDENTITY CASCADE")
		if err != nil {
			t.Logf("Warning: failed to truncate tables: %v", err)
		}
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close database connection: %v", err)
		}
	})
	return db
}

// MySQL opens the database in CRUD_TEST_MYSQL_URL and creates the schema.
func MySQL(t *testing.T) *gorm.DB {
	t.Helper()
	url := urlOrSkip(t, EnvMySQLURL)

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	db, err := gormstore.Open(ctx, testConfig("mysql", url), nil)
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, gormstore.Migrate(ctx, db), "failed to migrate test database")

	t.Cleanup(func() {
		// Children first so the foreign key never blocks.
		for _, table := range []string{"items", "categories"} {
			if err := db.Exec("DELETE FROM " + table).Error; err != nil {
				t.Logf("Warning: failed to empty %s: %v", table, err)
			}
		}
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
