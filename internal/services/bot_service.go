package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "paisa/internal/errors"
	"paisa/internal/middleware"
	"paisa/internal/models"
)

const (
	linkCodeLength = 6
	linkCodeExpiry = 15 * time.Minute
)

const botHelpText = "Commands:\n" +
	"  expense <amount> <category> [description]\n" +
	"  debt <amount> to|from <name>\n" +
	"  saving <amount> <type> [description]\n" +
	"  summary - totals and net balance\n" +
	"  recent - last five expenses"

// botService links chat accounts to users and turns chat messages into
// ledger operations.
type botService struct {
	db      *gorm.DB
	ledger  LedgerServicer
	summary SummaryServicer
}

// NewBotService creates a new BotServicer.
func NewBotService(db *gorm.DB, ledger LedgerServicer, summary SummaryServicer) BotServicer {
	return &botService{db: db, ledger: ledger, summary: summary}
}

// GenerateLinkCode issues a short-lived code the user relays to the bot.
func (s *botService) GenerateLinkCode(userID string) (*models.BotLink, error) {
	code, err := generateRandomCode(linkCodeLength)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	expiresAt := time.Now().Add(linkCodeExpiry)

	var link models.BotLink
	dbErr := s.db.Where("user_id = ?", userID).First(&link).Error
	if dbErr != nil {
		if errors.Is(dbErr, gorm.ErrRecordNotFound) {
			link = models.BotLink{
				UserID:            userID,
				LinkCode:          code,
				LinkCodeExpiresAt: &expiresAt,
				IsActive:          false,
			}
			if err := s.db.Create(&link).Error; err != nil {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			return &link, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, dbErr)
	}

	link.LinkCode = code
	link.LinkCodeExpiresAt = &expiresAt
	if err := s.db.Save(&link).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &link, nil
}

// CompleteLink claims a link code on behalf of a chat account.
func (s *botService) CompleteLink(linkCode string, chatID int64, chatUsername string) error {
	var link models.BotLink
	if err := s.db.Where("link_code = ?", linkCode).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidLinkCode
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if link.LinkCodeExpiresAt == nil || time.Now().After(*link.LinkCodeExpiresAt) {
		return apperrors.ErrLinkCodeExpired
	}

	// A chat account can drive exactly one user's ledger.
	var existing models.BotLink
	err := s.db.Where("chat_id = ? AND user_id != ?", chatID, link.UserID).First(&existing).Error
	if err == nil {
		return apperrors.ErrChatAlreadyLinked
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	link.ChatID = chatID
	link.ChatUsername = chatUsername
	link.LinkCode = ""
	link.LinkCodeExpiresAt = nil
	link.IsActive = true

	if err := s.db.Save(&link).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Unlink removes a user's chat link.
func (s *botService) Unlink(userID string) error {
	result := s.db.Where("user_id = ?", userID).Delete(&models.BotLink{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrBotLinkNotFound
	}
	return nil
}

// GetUserWithAuthToken exchanges a linked chat ID for user info and a
// long-lived bot token.
func (s *botService) GetUserWithAuthToken(chatID int64) (*BotUser, error) {
	var link models.BotLink
	if err := s.db.Where("chat_id = ? AND is_active = ?", chatID, true).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBotLinkNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var user models.User
	if err := s.db.Where("id = ?", link.UserID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	token, err := middleware.GenerateBotToken(&user)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &BotUser{
		UserID:    user.ID,
		Username:  user.Username,
		AuthToken: token,
	}, nil
}

// RecordActivity updates the last message timestamp and increments message count
func (s *botService) RecordActivity(chatID int64) error {
	now := time.Now()
	result := s.db.Model(&models.BotLink{}).
		Where("chat_id = ?", chatID).
		Updates(map[string]interface{}{
			"last_message_at": now,
			"message_count":   gorm.Expr("message_count + 1"),
		})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return nil
}

// HandleMessage parses a chat message and executes it against the user's
// ledger, returning the reply to send back to the chat.
func (s *botService) HandleMessage(username, text string) (string, error) {
	cmd, err := ParseCommand(text)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrUnknownCommand.Code {
			return botHelpText, nil
		}
		return "", err
	}

	today := time.Now()

	switch cmd.Kind {
	case CommandHelp:
		return botHelpText, nil

	case CommandAddExpense:
		expense, err := s.ledger.AddExpense(username, ExpenseInput{
			Date:          today,
			Category:      cmd.Category,
			Description:   cmd.Description,
			Amount:        cmd.Amount,
			PaymentMethod: models.PaymentMethodOther,
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Recorded expense of %s under %s.", formatMoney(expense.Amount), expense.Category), nil

	case CommandAddDebt:
		debt, err := s.ledger.AddDebt(username, DebtInput{
			Date:         today,
			Counterparty: cmd.Counterpart,
			Direction:    cmd.Direction,
			Amount:       cmd.Amount,
			Status:       models.DebtStatusPending,
		})
		if err != nil {
			return "", err
		}
		if debt.Direction == models.DebtDirectionIOwe {
			return fmt.Sprintf("Recorded: you owe %s %s.", debt.Counterparty, formatMoney(debt.Amount)), nil
		}
		return fmt.Sprintf("Recorded: %s owes you %s.", debt.Counterparty, formatMoney(debt.Amount)), nil

	case CommandAddSaving:
		saving, err := s.ledger.AddSaving(username, SavingInput{
			Date:        today,
			Type:        cmd.SavingType,
			Description: cmd.Description,
			Amount:      cmd.Amount,
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Recorded saving of %s (%s).", formatMoney(saving.Amount), saving.Type), nil

	case CommandSummary:
		summary, err := s.summary.ForUser(username)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Expenses: %s\nSavings: %s\nYou owe: %s\nOwed to you: %s\nNet balance: %s",
			formatMoney(summary.TotalExpenses),
			formatMoney(summary.TotalSavings),
			formatMoney(summary.TotalDebtsIOwe),
			formatMoney(summary.TotalDebtsOwedToMe),
			formatMoney(summary.NetBalance)), nil

	case CommandRecent:
		expenses, err := s.ledger.RecentExpenses(username, 5)
		if err != nil {
			return "", err
		}
		if len(expenses) == 0 {
			return "No expenses recorded yet.", nil
		}
		var b strings.Builder
		b.WriteString("Recent expenses:\n")
		for _, e := range expenses {
			fmt.Fprintf(&b, "  %s %s - %s (%s)\n",
				e.Date.Format("2006-01-02"), formatMoney(e.Amount), e.Description, e.Category)
		}
		return strings.TrimRight(b.String(), "\n"), nil
	}

	return botHelpText, nil
}

// generateRandomCode generates a random alphanumeric code of specified length
func generateRandomCode(length int) (string, error) {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	code := hex.EncodeToString(bytes)[:length]
	return code, nil
}
