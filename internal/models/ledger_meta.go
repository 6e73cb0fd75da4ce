package models

import "time"

// LedgerSchemaVersion is the current on-disk schema of a ledger container.
// Bump it when the ledger tables change shape.
const LedgerSchemaVersion = 1

// LedgerMeta is the single metadata row in each ledger container. It pins the
// schema version so a container written by a newer build is refused instead of
// silently misread.
type LedgerMeta struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	Username      string    `gorm:"not null" json:"username"`
	SchemaVersion int       `gorm:"not null" json:"schema_version"`
	CreatedAt     time.Time `json:"created_at"`
}
