package services

import (
	"strings"

	"paisa/internal/ledger"

	apperrors "paisa/internal/errors"
	"paisa/internal/models"
	"paisa/internal/pagination"
)

// ledgerService validates records and appends them to the owner's container.
// Cross-user access is impossible by construction: the username always comes
// from the verified token, never from the request body.
type ledgerService struct {
	store *ledger.Store
}

// NewLedgerService creates a new LedgerServicer backed by the given store.
func NewLedgerService(store *ledger.Store) LedgerServicer {
	return &ledgerService{store: store}
}

// CreateContainer provisions a user's ledger file.
func (s *ledgerService) CreateContainer(username string) error {
	_, err := s.store.Open(username)
	return err
}

// AddExpense validates and appends an expense.
func (s *ledgerService) AddExpense(username string, in ExpenseInput) (*models.Expense, error) {
	if err := validateAmount(in.Amount); err != nil {
		return nil, err
	}
	if in.Date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	if !models.IsExpenseCategory(in.Category) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category must be one of: "+strings.Join(models.ExpenseCategories, ", "))
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if !validPaymentMethod(in.PaymentMethod) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid payment method")
	}

	l, err := s.store.Open(username)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		Date:          dateOnly(in.Date),
		Category:      in.Category,
		Description:   strings.TrimSpace(in.Description),
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
	}
	if _, err := l.AppendExpense(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// AddDebt validates and appends a debt.
func (s *ledgerService) AddDebt(username string, in DebtInput) (*models.Debt, error) {
	if err := validateAmount(in.Amount); err != nil {
		return nil, err
	}
	if in.Date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	if strings.TrimSpace(in.Counterparty) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "counterparty is required")
	}
	if in.Direction != models.DebtDirectionIOwe && in.Direction != models.DebtDirectionOwedToMe {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "direction must be i_owe or owed_to_me")
	}
	status := in.Status
	if status == "" {
		status = models.DebtStatusPending
	}
	if status != models.DebtStatusPending && status != models.DebtStatusPartial && status != models.DebtStatusPaid {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "status must be pending, partial, or paid")
	}

	l, err := s.store.Open(username)
	if err != nil {
		return nil, err
	}

	debt := &models.Debt{
		Date:         dateOnly(in.Date),
		Counterparty: strings.TrimSpace(in.Counterparty),
		Direction:    in.Direction,
		Amount:       in.Amount,
		Status:       status,
		DueDate:      in.DueDate,
		Notes:        in.Notes,
	}
	if _, err := l.AppendDebt(debt); err != nil {
		return nil, err
	}
	return debt, nil
}

// AddSaving validates and appends a saving.
func (s *ledgerService) AddSaving(username string, in SavingInput) (*models.Saving, error) {
	if err := validateAmount(in.Amount); err != nil {
		return nil, err
	}
	if in.Date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	if strings.TrimSpace(in.Type) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type is required")
	}

	l, err := s.store.Open(username)
	if err != nil {
		return nil, err
	}

	saving := &models.Saving{
		Date:        dateOnly(in.Date),
		Type:        strings.TrimSpace(in.Type),
		Description: in.Description,
		Amount:      in.Amount,
		Goal:        in.Goal,
		Notes:       in.Notes,
	}
	if _, err := l.AppendSaving(saving); err != nil {
		return nil, err
	}
	return saving, nil
}

// ListExpenses pages through a user's expenses in insertion order.
func (s *ledgerService) ListExpenses(username string, page pagination.PageRequest, filter ledger.ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()
	l, err := s.store.Open(username)
	if err != nil {
		return nil, err
	}
	expenses, total, err := l.Expenses(page, filter)
	if err != nil {
		return nil, err
	}
	resp := pagination.NewPageResponse(expenses, page.Page, page.PageSize, total)
	return &resp, nil
}

// ListDebts pages through a user's debts in insertion order.
func (s *ledgerService) ListDebts(username string, page pagination.PageRequest) (*pagination.PageResponse[models.Debt], error) {
	page.Defaults()
	l, err := s.store.Open(username)
	if err != nil {
		return nil, err
	}
	debts, total, err := l.Debts(page)
	if err != nil {
		return nil, err
	}
	resp := pagination.NewPageResponse(debts, page.Page, page.PageSize, total)
	return &resp, nil
}

// ListSavings pages through a user's savings in insertion order.
func (s *ledgerService) ListSavings(username string, page pagination.PageRequest) (*pagination.PageResponse[models.Saving], error) {
	page.Defaults()
	l, err := s.store.Open(username)
	if err != nil {
		return nil, err
	}
	savings, total, err := l.Savings(page)
	if err != nil {
		return nil, err
	}
	resp := pagination.NewPageResponse(savings, page.Page, page.PageSize, total)
	return &resp, nil
}

// RecentExpenses returns the newest expenses first.
func (s *ledgerService) RecentExpenses(username string, limit int) ([]models.Expense, error) {
	if limit <= 0 {
		limit = 5
	}
	l, err := s.store.Open(username)
	if err != nil {
		return nil, err
	}
	return l.RecentExpenses(limit)
}

// Snapshot loads all three collections.
func (s *ledgerService) Snapshot(username string) (*ledger.Snapshot, error) {
	l, err := s.store.Open(username)
	if err != nil {
		return nil, err
	}
	return l.Load()
}
