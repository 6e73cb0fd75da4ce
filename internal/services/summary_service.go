package services

import (
	"github.com/shopspring/decimal"

	"paisa/internal/ledger"
	"paisa/internal/models"
)

// summaryService computes aggregate figures over a snapshot. Summarize is a
// pure function; nothing here is ever persisted.
type summaryService struct {
	ledger LedgerServicer
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(ledger LedgerServicer) SummaryServicer {
	return &summaryService{ledger: ledger}
}

// Summarize computes totals from a loaded snapshot.
//
// Debt policy: the two directions are reported separately, and net balance
// subtracts only money the user owes:
//
//	net_balance = total_savings - total_expenses - total_debts_i_owe
func (s *summaryService) Summarize(snap *ledger.Snapshot) *Summary {
	summary := &Summary{
		CategoryExpenses: make(map[string]decimal.Decimal),
	}

	for _, e := range snap.Expenses {
		summary.TotalExpenses = summary.TotalExpenses.Add(e.Amount)
		summary.CategoryExpenses[e.Category] = summary.CategoryExpenses[e.Category].Add(e.Amount)
	}
	for _, d := range snap.Debts {
		if d.Direction == models.DebtDirectionIOwe {
			summary.TotalDebtsIOwe = summary.TotalDebtsIOwe.Add(d.Amount)
		} else {
			summary.TotalDebtsOwedToMe = summary.TotalDebtsOwedToMe.Add(d.Amount)
		}
	}
	for _, sv := range snap.Savings {
		summary.TotalSavings = summary.TotalSavings.Add(sv.Amount)
	}

	summary.NetBalance = summary.TotalSavings.
		Sub(summary.TotalExpenses).
		Sub(summary.TotalDebtsIOwe)

	return summary
}

// ForUser loads a user's snapshot and summarizes it.
func (s *summaryService) ForUser(username string) (*Summary, error) {
	snap, err := s.ledger.Snapshot(username)
	if err != nil {
		return nil, err
	}
	return s.Summarize(snap), nil
}
