package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"paisa/internal/models"
	"paisa/internal/testutil"
)

func TestParseCommand(t *testing.T) {
	t.Run("expense_with_description", func(t *testing.T) {
		cmd, err := ParseCommand("expense 120.50 food lunch at the canteen")
		testutil.AssertNoError(t, err)

		if cmd.Kind != CommandAddExpense {
			t.Fatalf("expected add_expense, got %s", cmd.Kind)
		}
		if !cmd.Amount.Equal(decimal.RequireFromString("120.50")) {
			t.Errorf("expected 120.50, got %s", cmd.Amount)
		}
		if cmd.Category != "Food & Dining" {
			t.Errorf("expected Food & Dining, got %s", cmd.Category)
		}
		if cmd.Description != "lunch at the canteen" {
			t.Errorf("unexpected description %q", cmd.Description)
		}
	})

	t.Run("spent_shorthand", func(t *testing.T) {
		cmd, err := ParseCommand("spent 200 on groceries")
		testutil.AssertNoError(t, err)

		if cmd.Kind != CommandAddExpense || cmd.Category != "Groceries" {
			t.Errorf("unexpected command: %+v", cmd)
		}
		// Description defaults to the category name.
		if cmd.Description != "Groceries" {
			t.Errorf("expected default description, got %q", cmd.Description)
		}
	})

	t.Run("unknown_category", func(t *testing.T) {
		_, err := ParseCommand("expense 100 lasers")
		testutil.AssertAppError(t, err, "UNKNOWN_COMMAND")
	})

	t.Run("borrowed_means_i_owe", func(t *testing.T) {
		cmd, err := ParseCommand("borrowed 500 from ravi")
		testutil.AssertNoError(t, err)

		if cmd.Kind != CommandAddDebt {
			t.Fatalf("expected add_debt, got %s", cmd.Kind)
		}
		if cmd.Direction != models.DebtDirectionIOwe {
			t.Errorf("expected i_owe, got %s", cmd.Direction)
		}
		if cmd.Counterpart != "ravi" {
			t.Errorf("expected counterpart ravi, got %q", cmd.Counterpart)
		}
	})

	t.Run("lent_means_owed_to_me", func(t *testing.T) {
		cmd, err := ParseCommand("lent 500 to ravi")
		testutil.AssertNoError(t, err)

		if cmd.Direction != models.DebtDirectionOwedToMe {
			t.Errorf("expected owed_to_me, got %s", cmd.Direction)
		}
	})

	t.Run("debt_from_means_owed_to_me", func(t *testing.T) {
		cmd, err := ParseCommand("debt 250 from priya sharma")
		testutil.AssertNoError(t, err)

		if cmd.Direction != models.DebtDirectionOwedToMe {
			t.Errorf("expected owed_to_me, got %s", cmd.Direction)
		}
		if cmd.Counterpart != "priya sharma" {
			t.Errorf("expected multi-word counterpart, got %q", cmd.Counterpart)
		}
	})

	t.Run("saving", func(t *testing.T) {
		cmd, err := ParseCommand("saved 10000 fd emergency fund")
		testutil.AssertNoError(t, err)

		if cmd.Kind != CommandAddSaving {
			t.Fatalf("expected add_saving, got %s", cmd.Kind)
		}
		if cmd.SavingType != "fd" {
			t.Errorf("expected type fd, got %q", cmd.SavingType)
		}
		if cmd.Description != "emergency fund" {
			t.Errorf("unexpected description %q", cmd.Description)
		}
	})

	t.Run("summary_aliases", func(t *testing.T) {
		for _, text := range []string{"summary", "stats", "balance", "SUMMARY"} {
			cmd, err := ParseCommand(text)
			testutil.AssertNoError(t, err)
			if cmd.Kind != CommandSummary {
				t.Errorf("%q: expected summary, got %s", text, cmd.Kind)
			}
		}
	})

	t.Run("recent_aliases", func(t *testing.T) {
		for _, text := range []string{"recent", "last", "recent expenses"} {
			cmd, err := ParseCommand(text)
			testutil.AssertNoError(t, err)
			if cmd.Kind != CommandRecent {
				t.Errorf("%q: expected recent, got %s", text, cmd.Kind)
			}
		}
	})

	t.Run("help_aliases", func(t *testing.T) {
		for _, text := range []string{"help", "/start", "/help", "start"} {
			cmd, err := ParseCommand(text)
			testutil.AssertNoError(t, err)
			if cmd.Kind != CommandHelp {
				t.Errorf("%q: expected help, got %s", text, cmd.Kind)
			}
		}
	})

	t.Run("gibberish", func(t *testing.T) {
		_, err := ParseCommand("please transfer my life savings")
		testutil.AssertAppError(t, err, "UNKNOWN_COMMAND")
	})

	t.Run("too_many_decimal_places", func(t *testing.T) {
		_, err := ParseCommand("expense 10.999 food")
		testutil.AssertAppError(t, err, "UNKNOWN_COMMAND")
	})
}
