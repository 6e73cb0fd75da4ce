package ledger

import (
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "paisa/internal/errors"
	"paisa/internal/models"
	"paisa/internal/pagination"
)

// Ledger is one user's container. Reads go straight to SQLite; writes take
// the per-user mutex so concurrent requests cannot interleave a
// read-modify-write on the same file.
type Ledger struct {
	username string
	db       *gorm.DB
	mu       sync.Mutex
}

// Username returns the owner of this container.
func (l *Ledger) Username() string {
	return l.username
}

// Snapshot is a full in-memory materialization of one user's collections,
// each in insertion order.
type Snapshot struct {
	Expenses []models.Expense `json:"expenses"`
	Debts    []models.Debt    `json:"debts"`
	Savings  []models.Saving  `json:"savings"`
}

// AppendExpense persists an expense and returns its record ID.
func (l *Ledger) AppendExpense(e *models.Expense) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.db.Create(e).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrStorageIO, err)
	}
	return e.ID, nil
}

// AppendDebt persists a debt and returns its record ID.
func (l *Ledger) AppendDebt(d *models.Debt) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.db.Create(d).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrStorageIO, err)
	}
	return d.ID, nil
}

// AppendSaving persists a saving and returns its record ID.
func (l *Ledger) AppendSaving(s *models.Saving) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.db.Create(s).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrStorageIO, err)
	}
	return s.ID, nil
}

// ExpenseFilter narrows an expense listing.
type ExpenseFilter struct {
	Category string
	Month    string // "2006-01"
}

// Expenses lists expenses in insertion order, optionally filtered.
func (l *Ledger) Expenses(page pagination.PageRequest, filter ExpenseFilter) ([]models.Expense, int64, error) {
	query := l.db.Model(&models.Expense{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Month != "" {
		start, end, err := monthRange(filter.Month)
		if err != nil {
			return nil, 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be formatted as YYYY-MM")
		}
		query = query.Where("date >= ? AND date < ?", start, end)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrStorageIO, err)
	}

	var expenses []models.Expense
	// SQLite's implicit rowid preserves exact append order.
	if err := query.Order("rowid").Scopes(pagination.Paginate(page)).Find(&expenses).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrStorageIO, err)
	}
	return expenses, total, nil
}

// RecentExpenses returns the newest expenses first, at most limit of them.
func (l *Ledger) RecentExpenses(limit int) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := l.db.Order("rowid DESC").Limit(limit).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageIO, err)
	}
	return expenses, nil
}

// Debts lists debts in insertion order.
func (l *Ledger) Debts(page pagination.PageRequest) ([]models.Debt, int64, error) {
	var total int64
	if err := l.db.Model(&models.Debt{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrStorageIO, err)
	}

	var debts []models.Debt
	if err := l.db.Order("rowid").Scopes(pagination.Paginate(page)).Find(&debts).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrStorageIO, err)
	}
	return debts, total, nil
}

// Savings lists savings in insertion order.
func (l *Ledger) Savings(page pagination.PageRequest) ([]models.Saving, int64, error) {
	var total int64
	if err := l.db.Model(&models.Saving{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrStorageIO, err)
	}

	var savings []models.Saving
	if err := l.db.Order("rowid").Scopes(pagination.Paginate(page)).Find(&savings).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrStorageIO, err)
	}
	return savings, total, nil
}

// Load materializes the full snapshot of all three collections.
func (l *Ledger) Load() (*Snapshot, error) {
	snap := &Snapshot{}
	if err := l.db.Order("rowid").Find(&snap.Expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageIO, err)
	}
	if err := l.db.Order("rowid").Find(&snap.Debts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageIO, err)
	}
	if err := l.db.Order("rowid").Find(&snap.Savings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageIO, err)
	}
	return snap, nil
}

// SetBudget creates or replaces the budget for a month/category pair.
func (l *Ledger) SetBudget(month, category string, amount decimal.Decimal) (*models.Budget, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	budget := &models.Budget{Month: month, Category: category, Amount: amount}
	err := l.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "month"}, {Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(budget).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageIO, err)
	}

	// Re-read so callers see the stored row after a conflict update.
	var stored models.Budget
	if err := l.db.Where("month = ? AND category = ?", month, category).First(&stored).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageIO, err)
	}
	return &stored, nil
}

// Budgets lists the budgets for a month.
func (l *Ledger) Budgets(month string) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := l.db.Where("month = ?", month).Order("category").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageIO, err)
	}
	return budgets, nil
}

// MonthExpenses returns all expenses dated within a month, used for budget
// progress.
func (l *Ledger) MonthExpenses(month string) ([]models.Expense, error) {
	start, end, err := monthRange(month)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be formatted as YYYY-MM")
	}
	var expenses []models.Expense
	if err := l.db.Where("date >= ? AND date < ?", start, end).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageIO, err)
	}
	return expenses, nil
}

// SchemaVersion reads the container's pinned schema version.
func (l *Ledger) SchemaVersion() (int, error) {
	var meta models.LedgerMeta
	if err := l.db.First(&meta).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.ErrRecordNotFound
		}
		return 0, apperrors.Wrap(apperrors.ErrStorageIO, err)
	}
	return meta.SchemaVersion, nil
}

// monthRange resolves a "2006-01" key to its [start, end) UTC interval.
func monthRange(month string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 1, 0), nil
}
