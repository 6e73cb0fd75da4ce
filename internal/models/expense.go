package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how an expense was paid.
type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodUPI        PaymentMethod = "upi"
	PaymentMethodNetBanking PaymentMethod = "net_banking"
	PaymentMethodWallet     PaymentMethod = "wallet"
	PaymentMethodOther      PaymentMethod = "other"
)

// ExpenseCategories is the fixed set of spending categories.
var ExpenseCategories = []string{
	"Food & Dining", "Transportation", "Shopping", "Entertainment",
	"Bills & Utilities", "Healthcare", "Education", "Travel",
	"Groceries", "Rent/EMI", "Investment", "Other",
}

// IsExpenseCategory reports whether name is one of the fixed categories.
func IsExpenseCategory(name string) bool {
	for _, c := range ExpenseCategories {
		if c == name {
			return true
		}
	}
	return false
}

// Expense is a single spending record in a user's ledger.
type Expense struct {
	Base
	Date          time.Time       `gorm:"not null" json:"date"`
	Category      string          `gorm:"not null" json:"category"`
	Description   string          `gorm:"not null" json:"description"`
	Amount        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	PaymentMethod PaymentMethod   `gorm:"not null" json:"payment_method"`
	Notes         string          `json:"notes,omitempty"`
}
