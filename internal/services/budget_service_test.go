package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"paisa/internal/models"
	"paisa/internal/testutil"
)

func TestSetBudget(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		svc := NewBudgetService(testutil.SetupTestStore(t))

		budget, err := svc.SetBudget("alice", "2026-03", "Groceries", decimal.NewFromInt(3000))
		testutil.AssertNoError(t, err)

		if budget.Month != "2026-03" || budget.Category != "Groceries" {
			t.Errorf("unexpected budget row: %+v", budget)
		}
	})

	t.Run("replaces_existing", func(t *testing.T) {
		svc := NewBudgetService(testutil.SetupTestStore(t))

		_, err := svc.SetBudget("alice", "2026-03", "Groceries", decimal.NewFromInt(3000))
		testutil.AssertNoError(t, err)
		budget, err := svc.SetBudget("alice", "2026-03", "Groceries", decimal.NewFromInt(4500))
		testutil.AssertNoError(t, err)

		if !budget.Amount.Equal(decimal.NewFromInt(4500)) {
			t.Errorf("expected replaced amount 4500, got %s", budget.Amount)
		}
	})

	t.Run("invalid_month", func(t *testing.T) {
		svc := NewBudgetService(testutil.SetupTestStore(t))

		_, err := svc.SetBudget("alice", "March 2026", "Groceries", decimal.NewFromInt(3000))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_category", func(t *testing.T) {
		svc := NewBudgetService(testutil.SetupTestStore(t))

		_, err := svc.SetBudget("alice", "2026-03", "Gambling", decimal.NewFromInt(3000))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		svc := NewBudgetService(testutil.SetupTestStore(t))

		_, err := svc.SetBudget("alice", "2026-03", "Groceries", decimal.Zero)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetBudgets(t *testing.T) {
	t.Run("progress_counts_only_that_month", func(t *testing.T) {
		store := testutil.SetupTestStore(t)
		budgetSvc := NewBudgetService(store)
		ledgerSvc := NewLedgerService(store)

		_, err := budgetSvc.SetBudget("alice", "2026-03", "Groceries", decimal.NewFromInt(3000))
		testutil.AssertNoError(t, err)

		march := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
		april := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
		_, err = ledgerSvc.AddExpense("alice", ExpenseInput{
			Date: march, Category: "Groceries", Description: "weekly shop",
			Amount: decimal.NewFromInt(1200), PaymentMethod: models.PaymentMethodCash,
		})
		testutil.AssertNoError(t, err)
		_, err = ledgerSvc.AddExpense("alice", ExpenseInput{
			Date: april, Category: "Groceries", Description: "next month",
			Amount: decimal.NewFromInt(900), PaymentMethod: models.PaymentMethodCash,
		})
		testutil.AssertNoError(t, err)

		progress, err := budgetSvc.GetBudgets("alice", "2026-03")
		testutil.AssertNoError(t, err)

		if len(progress) != 1 {
			t.Fatalf("expected 1 budget, got %d", len(progress))
		}
		if !progress[0].Spent.Equal(decimal.NewFromInt(1200)) {
			t.Errorf("expected spent 1200, got %s", progress[0].Spent)
		}
		if !progress[0].Remaining.Equal(decimal.NewFromInt(1800)) {
			t.Errorf("expected remaining 1800, got %s", progress[0].Remaining)
		}
	})

	t.Run("no_budgets", func(t *testing.T) {
		svc := NewBudgetService(testutil.SetupTestStore(t))

		progress, err := svc.GetBudgets("alice", "2026-03")
		testutil.AssertNoError(t, err)
		if len(progress) != 0 {
			t.Errorf("expected no budgets, got %d", len(progress))
		}
	})
}
