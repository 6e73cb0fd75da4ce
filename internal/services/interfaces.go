package services

import (
	"time"

	"github.com/shopspring/decimal"

	"paisa/internal/ledger"
	"paisa/internal/models"
	"paisa/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Register(username, email, password string) (*models.User, error)
	AttemptLogin(username, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
}

// SessionServicer defines the contract for the login session store.
type SessionServicer interface {
	Create(userID string) (*models.Session, error)
	StoreTokenHash(sessionID, tokenHash string) error
	ValidateAndTouch(sessionID, tokenHash string) (*models.Session, error)
	Revoke(sessionID string) error
	RevokeAllForUser(userID string) error
}

// ExpenseInput carries a validated-by-binding expense; the service still
// enforces the domain rules so non-HTTP callers get the same checks.
type ExpenseInput struct {
	Date          time.Time
	Category      string
	Description   string
	Amount        decimal.Decimal
	PaymentMethod models.PaymentMethod
	Notes         string
}

// DebtInput carries a new debt record.
type DebtInput struct {
	Date         time.Time
	Counterparty string
	Direction    models.DebtDirection
	Amount       decimal.Decimal
	Status       models.DebtStatus
	DueDate      *time.Time
	Notes        string
}

// SavingInput carries a new saving record.
type SavingInput struct {
	Date        time.Time
	Type        string
	Description string
	Amount      decimal.Decimal
	Goal        string
	Notes       string
}

// LedgerServicer defines the contract for record appends and listings
// against a user's ledger container.
type LedgerServicer interface {
	CreateContainer(username string) error
	AddExpense(username string, in ExpenseInput) (*models.Expense, error)
	AddDebt(username string, in DebtInput) (*models.Debt, error)
	AddSaving(username string, in SavingInput) (*models.Saving, error)
	ListExpenses(username string, page pagination.PageRequest, filter ledger.ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	ListDebts(username string, page pagination.PageRequest) (*pagination.PageResponse[models.Debt], error)
	ListSavings(username string, page pagination.PageRequest) (*pagination.PageResponse[models.Saving], error)
	RecentExpenses(username string, limit int) ([]models.Expense, error)
	Snapshot(username string) (*ledger.Snapshot, error)
}

// Summary holds the aggregate figures derived from one user's snapshot.
// Debts are reported per direction; net balance only subtracts money the
// user owes. Receivables never inflate net worth.
type Summary struct {
	TotalExpenses      decimal.Decimal            `json:"total_expenses"`
	TotalSavings       decimal.Decimal            `json:"total_savings"`
	TotalDebtsIOwe     decimal.Decimal            `json:"total_debts_i_owe"`
	TotalDebtsOwedToMe decimal.Decimal            `json:"total_debts_owed_to_me"`
	NetBalance         decimal.Decimal            `json:"net_balance"`
	CategoryExpenses   map[string]decimal.Decimal `json:"category_expenses"`
}

// SummaryServicer defines the contract for summary aggregation.
type SummaryServicer interface {
	Summarize(snap *ledger.Snapshot) *Summary
	ForUser(username string) (*Summary, error)
}

// BudgetProgress pairs a budget with the spending recorded against it.
type BudgetProgress struct {
	Budget    models.Budget   `json:"budget"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
}

// BudgetServicer defines the contract for monthly category budgets.
type BudgetServicer interface {
	SetBudget(username, month, category string, amount decimal.Decimal) (*models.Budget, error)
	GetBudgets(username, month string) ([]BudgetProgress, error)
}

// BotUser is the payload returned to the chatbot backend after a token
// exchange.
type BotUser struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	AuthToken string `json:"auth_token"`
}

// BotServicer defines the contract for chat linking and text commands.
type BotServicer interface {
	GenerateLinkCode(userID string) (*models.BotLink, error)
	CompleteLink(linkCode string, chatID int64, chatUsername string) error
	Unlink(userID string) error
	GetUserWithAuthToken(chatID int64) (*BotUser, error)
	RecordActivity(chatID int64) error
	HandleMessage(username, text string) (string, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
