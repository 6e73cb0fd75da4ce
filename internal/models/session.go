package models

import "time"

// Session is a login session backing a refresh token. The token itself is
// never stored, only its SHA-256 digest. A session ends when it expires,
// goes idle past the configured timeout, or is revoked by logout.
type Session struct {
	Base
	UserID     string     `gorm:"type:uuid;index;not null" json:"user_id"`
	TokenHash  string     `gorm:"size:64;index" json:"-"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expires_at"`
	LastUsedAt time.Time  `gorm:"not null" json:"last_used_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
