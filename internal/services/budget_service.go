package services

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "paisa/internal/errors"
	"paisa/internal/ledger"
	"paisa/internal/models"
)

// budgetService manages monthly category budgets stored inside the user's
// ledger container, with progress computed from that month's expenses.
type budgetService struct {
	store *ledger.Store
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(store *ledger.Store) BudgetServicer {
	return &budgetService{store: store}
}

// SetBudget creates or replaces the budget for a month/category pair.
func (s *budgetService) SetBudget(username, month, category string, amount decimal.Decimal) (*models.Budget, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be formatted as YYYY-MM")
	}
	if !models.IsExpenseCategory(category) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown expense category")
	}

	l, err := s.store.Open(username)
	if err != nil {
		return nil, err
	}
	return l.SetBudget(month, category, amount)
}

// GetBudgets returns the month's budgets with spent and remaining figures.
func (s *budgetService) GetBudgets(username, month string) ([]BudgetProgress, error) {
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be formatted as YYYY-MM")
	}

	l, err := s.store.Open(username)
	if err != nil {
		return nil, err
	}

	budgets, err := l.Budgets(month)
	if err != nil {
		return nil, err
	}
	expenses, err := l.MonthExpenses(month)
	if err != nil {
		return nil, err
	}

	spentByCategory := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		spentByCategory[e.Category] = spentByCategory[e.Category].Add(e.Amount)
	}

	progress := make([]BudgetProgress, 0, len(budgets))
	for _, b := range budgets {
		spent := spentByCategory[b.Category]
		progress = append(progress, BudgetProgress{
			Budget:    b,
			Spent:     spent,
			Remaining: b.Amount.Sub(spent),
		})
	}
	return progress, nil
}
