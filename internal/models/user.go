package models

import "time"

// User represents a registered user in the core database.
// The username is the immutable key that also names the user's ledger file.
type User struct {
	Base
	Username            string     `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email               string     `gorm:"size:255" json:"email"`
	Password            string     `gorm:"not null" json:"-"`
	IsActive            bool       `gorm:"default:true" json:"is_active"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time `json:"-"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`
}
