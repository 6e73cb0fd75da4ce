package services

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "paisa/internal/errors"
	"paisa/internal/models"
)

// validateAmount enforces strictly positive money values.
func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	return nil
}

func validPaymentMethod(m models.PaymentMethod) bool {
	switch m {
	case models.PaymentMethodCash, models.PaymentMethodCreditCard, models.PaymentMethodDebitCard,
		models.PaymentMethodUPI, models.PaymentMethodNetBanking, models.PaymentMethodWallet,
		models.PaymentMethodOther:
		return true
	}
	return false
}

// dateOnly truncates to a calendar date at midnight UTC. Record dates carry
// no time-of-day semantics.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// formatMoney renders an amount for chat replies.
func formatMoney(d decimal.Decimal) string {
	return "₹" + d.StringFixed(2)
}
