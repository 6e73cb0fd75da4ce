package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Saving is money put aside, optionally toward a named goal.
type Saving struct {
	Base
	Date        time.Time       `gorm:"not null" json:"date"`
	Type        string          `gorm:"not null" json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Goal        string          `json:"goal,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}
