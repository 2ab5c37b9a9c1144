// Package testutil provides shared test helpers.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/localized-blog-backend/database"
	"github.com/rpupo63/localized-blog-backend/locale"
	"github.com/rpupo63/localized-blog-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MemoryDSN returns a DSN for a fresh, private in-memory SQLite database.
func MemoryDSN() string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
}

// TestDB opens a migrated in-memory database that is closed when the test ends.
func TestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return TestDBWithOptions(t, database.Options{Type: database.TypeSQLite, DSN: MemoryDSN()})
}

// TestDBWithOptions opens and migrates the database described by opts.
func TestDBWithOptions(t *testing.T, opts database.Options) *gorm.DB {
	t.Helper()

	opts.LogLevel = logger.Silent
	db, err := database.Open(opts)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("getting sql.DB: %v", err)
	}
	// one connection keeps the in-memory database alive and serializes writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

// Locales returns a resolver defaulting to "en" that also supports "ro".
func Locales(t *testing.T) *locale.Resolver {
	t.Helper()
	resolver, err := locale.NewResolver("en", []string{"ro"})
	if err != nil {
		t.Fatalf("building locale resolver: %v", err)
	}
	return resolver
}

// Ago returns a UTC timestamp d before now, truncated to what every store keeps.
func Ago(d time.Duration) *time.Time {
	at := time.Now().UTC().Add(-d).Truncate(time.Microsecond)
	return &at
}
