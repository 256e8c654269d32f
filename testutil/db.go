package testutil

import (
	"fmt"
	"testing"

	"github.com/anjiri1684/alx_travel/database"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated, role-seeded in-memory SQLite database private to
// the calling test. A single connection keeps SQLite's shared cache from
// reporting table locks when background workers touch the same tables.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("test database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	if err := database.SeedRoles(db); err != nil {
		t.Fatalf("seed roles: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
