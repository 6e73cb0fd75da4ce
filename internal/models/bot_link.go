package models

import "time"

// BotLink represents a link between an external chat account and a Paisa user.
// Linking is a two-step flow: the user generates a short-lived code in the web
// app, then sends it to the bot, which claims it with the chat ID.
type BotLink struct {
	Base
	UserID            string     `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	ChatID            int64      `gorm:"index;not null" json:"chat_id"`
	ChatUsername      string     `json:"chat_username,omitempty"`
	LinkCode          string     `gorm:"size:6" json:"-"`
	LinkCodeExpiresAt *time.Time `json:"-"`
	IsActive          bool       `gorm:"default:true" json:"is_active"`
	LastMessageAt     *time.Time `json:"last_message_at,omitempty"`
	MessageCount      int64      `gorm:"default:0" json:"message_count"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
