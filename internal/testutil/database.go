// Package testutil provides test helpers for setting up in-memory databases,
// creating fixtures, and making assertions.
package testutil

import (
	"testing"

	"paisa/internal/ledger"
	"paisa/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// coreModels is the list of GORM models backing the core database.
var coreModels = []interface{}{
	&models.User{},
	&models.Session{},
	&models.BotLink{},
	&models.AuditLog{},
}

// SetupTestDB creates an in-memory SQLite database with all core models migrated.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(coreModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}

// SetupTestStore creates a ledger store rooted in a per-test temp directory.
// The store is closed automatically when the test finishes.
func SetupTestStore(t *testing.T) *ledger.Store {
	t.Helper()

	store, err := ledger.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create test ledger store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close test ledger store: %v", err)
		}
	})
	return store
}
