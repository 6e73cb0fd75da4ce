package models

import "github.com/shopspring/decimal"

// Budget is a monthly spending cap for one category in a user's ledger.
// Month is formatted as "2006-01".
type Budget struct {
	Base
	Month    string          `gorm:"size:7;not null;uniqueIndex:idx_budget_month_category" json:"month"`
	Category string          `gorm:"not null;uniqueIndex:idx_budget_month_category" json:"category"`
	Amount   decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
}
