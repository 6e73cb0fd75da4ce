package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtDirection tells whether the user owes the money or is owed it.
type DebtDirection string

const (
	DebtDirectionIOwe     DebtDirection = "i_owe"
	DebtDirectionOwedToMe DebtDirection = "owed_to_me"
)

// DebtStatus is the repayment state of a debt.
type DebtStatus string

const (
	DebtStatusPending DebtStatus = "pending"
	DebtStatusPartial DebtStatus = "partial"
	DebtStatusPaid    DebtStatus = "paid"
)

// Debt is a borrowed or lent amount in a user's ledger.
type Debt struct {
	Base
	Date         time.Time       `gorm:"not null" json:"date"`
	Counterparty string          `gorm:"not null" json:"counterparty"`
	Direction    DebtDirection   `gorm:"not null" json:"direction"`
	Amount       decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Status       DebtStatus      `gorm:"not null;default:'pending'" json:"status"`
	DueDate      *time.Time      `json:"due_date,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}
