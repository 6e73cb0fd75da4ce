// Package ledger implements the per-user record store. Each user owns one
// SQLite container file holding their expenses, debts, savings, and budgets,
// plus a metadata row carrying the schema version. Every write commits
// synchronously; there is no write-behind.
package ledger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	apperrors "paisa/internal/errors"
	"paisa/internal/models"
)

// ledgerModels is migrated into every container on open.
var ledgerModels = []interface{}{
	&models.Expense{},
	&models.Debt{},
	&models.Saving{},
	&models.Budget{},
	&models.LedgerMeta{},
}

// Store manages the ledger containers under a single data directory.
// Handles are cached per username; the per-username mutex is the only
// write coordination in the system.
type Store struct {
	dir string

	mu      sync.Mutex
	ledgers map[string]*Ledger
}

// NewStore creates a store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir, ledgers: make(map[string]*Ledger)}, nil
}

// Path returns the container file path for a username.
func (s *Store) Path(username string) string {
	return filepath.Join(s.dir, username+".ledger.db")
}

// Exists reports whether a container file exists for the username.
func (s *Store) Exists(username string) bool {
	_, err := os.Stat(s.Path(username))
	return err == nil
}

// Open returns the ledger for a username, creating the container on first
// use. The returned ledger is shared between callers and safe for
// concurrent use.
func (s *Store) Open(username string) (*Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.ledgers[username]; ok {
		return l, nil
	}

	db, err := gorm.Open(sqlite.Open(s.Path(username)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageIO, err)
	}

	if err := db.AutoMigrate(ledgerModels...); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageIO, err)
	}

	if err := checkSchema(db, username); err != nil {
		return nil, err
	}

	l := &Ledger{username: username, db: db}
	s.ledgers[username] = l
	return l, nil
}

// Close closes every cached container handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for username, l := range s.ledgers {
		sqlDB, err := l.db.DB()
		if err == nil {
			err = sqlDB.Close()
		}
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing ledger for %s: %w", username, err)
		}
		delete(s.ledgers, username)
	}
	return firstErr
}

// checkSchema pins the container to the current schema version. A container
// written by a newer build is refused rather than silently misread.
func checkSchema(db *gorm.DB, username string) error {
	var meta models.LedgerMeta
	err := db.First(&meta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		meta = models.LedgerMeta{
			Username:      username,
			SchemaVersion: models.LedgerSchemaVersion,
		}
		if err := db.Create(&meta).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorageIO, err)
		}
		return nil
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorageIO, err)
	}

	if meta.SchemaVersion > models.LedgerSchemaVersion {
		return apperrors.Wrap(apperrors.ErrStorageIO,
			fmt.Errorf("ledger for %s has schema version %d, this build supports up to %d",
				username, meta.SchemaVersion, models.LedgerSchemaVersion))
	}
	return nil
}
