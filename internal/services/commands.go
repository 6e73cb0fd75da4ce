package services

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "paisa/internal/errors"
	"paisa/internal/models"
)

// CommandKind is the intent extracted from a chat message.
type CommandKind string

const (
	CommandAddExpense CommandKind = "add_expense"
	CommandAddDebt    CommandKind = "add_debt"
	CommandAddSaving  CommandKind = "add_saving"
	CommandSummary    CommandKind = "summary"
	CommandRecent     CommandKind = "recent"
	CommandHelp       CommandKind = "help"
)

// Command is a parsed chat message ready to execute against the ledger.
type Command struct {
	Kind        CommandKind
	Amount      decimal.Decimal
	Category    string
	Description string
	Direction   models.DebtDirection
	Counterpart string
	SavingType  string
}

var (
	expenseRe = regexp.MustCompile(`^(?:add\s+)?(?:expense|spent)\s+(\d+(?:\.\d{1,2})?)\s+(?:on\s+)?(\S+)(?:\s+(.*))?$`)
	debtRe    = regexp.MustCompile(`^(?:add\s+)?(debt|borrowed|lent)\s+(\d+(?:\.\d{1,2})?)\s+(to|from)\s+(.+)$`)
	savingRe  = regexp.MustCompile(`^(?:add\s+)?(?:saving|saved)\s+(\d+(?:\.\d{1,2})?)\s+(\S+)(?:\s+(.*))?$`)
	summaryRe = regexp.MustCompile(`^(?:summary|stats|balance)$`)
	recentRe  = regexp.MustCompile(`^(?:recent|last)(?:\s+expenses)?$`)
	helpRe    = regexp.MustCompile(`^(?:help|start|/start|/help)$`)
)

// categoryAliases maps single-word chat shorthand onto the fixed categories.
var categoryAliases = map[string]string{
	"food":          "Food & Dining",
	"dining":        "Food & Dining",
	"transport":     "Transportation",
	"transportation": "Transportation",
	"shopping":      "Shopping",
	"entertainment": "Entertainment",
	"bills":         "Bills & Utilities",
	"utilities":     "Bills & Utilities",
	"healthcare":    "Healthcare",
	"health":        "Healthcare",
	"education":     "Education",
	"travel":        "Travel",
	"groceries":     "Groceries",
	"rent":          "Rent/EMI",
	"emi":           "Rent/EMI",
	"investment":    "Investment",
	"other":         "Other",
}

// ParseCommand pattern-matches a chat message into a Command. Messages the
// grammar does not cover fail with an unknown-command error; the bot replies
// with usage help in that case.
func ParseCommand(text string) (*Command, error) {
	text = strings.TrimSpace(text)
	lower := strings.ToLower(text)

	switch {
	case helpRe.MatchString(lower):
		return &Command{Kind: CommandHelp}, nil
	case summaryRe.MatchString(lower):
		return &Command{Kind: CommandSummary}, nil
	case recentRe.MatchString(lower):
		return &Command{Kind: CommandRecent}, nil
	}

	if m := expenseRe.FindStringSubmatch(lower); m != nil {
		amount, err := decimal.NewFromString(m[1])
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrUnknownCommand, "could not read the amount")
		}
		category, ok := categoryAliases[m[2]]
		if !ok {
			return nil, apperrors.WithMessage(apperrors.ErrUnknownCommand, "unknown category '"+m[2]+"'")
		}
		description := strings.TrimSpace(m[3])
		if description == "" {
			description = category
		}
		return &Command{
			Kind:        CommandAddExpense,
			Amount:      amount,
			Category:    category,
			Description: description,
		}, nil
	}

	if m := debtRe.FindStringSubmatch(lower); m != nil {
		amount, err := decimal.NewFromString(m[2])
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrUnknownCommand, "could not read the amount")
		}
		direction := models.DebtDirectionIOwe
		// "lent 500 to ravi" and "debt 500 from ravi" both mean the money
		// is coming back to the user.
		if m[1] == "lent" || m[3] == "from" {
			direction = models.DebtDirectionOwedToMe
		}
		if m[1] == "borrowed" {
			direction = models.DebtDirectionIOwe
		}
		return &Command{
			Kind:        CommandAddDebt,
			Amount:      amount,
			Direction:   direction,
			Counterpart: strings.TrimSpace(m[4]),
		}, nil
	}

	if m := savingRe.FindStringSubmatch(lower); m != nil {
		amount, err := decimal.NewFromString(m[1])
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrUnknownCommand, "could not read the amount")
		}
		return &Command{
			Kind:        CommandAddSaving,
			Amount:      amount,
			SavingType:  m[2],
			Description: strings.TrimSpace(m[3]),
		}, nil
	}

	return nil, apperrors.ErrUnknownCommand
}
