// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"paisa/internal/models"
)

var usernameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]{2,63}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("username", validateUsername)
		_ = v.RegisterValidation("expense_category", validateExpenseCategory)
		_ = v.RegisterValidation("payment_method", validatePaymentMethod)
		_ = v.RegisterValidation("debt_direction", validateDebtDirection)
		_ = v.RegisterValidation("debt_status", validateDebtStatus)
		_ = v.RegisterValidation("month_key", validateMonthKey)
	}
}

func validateUsername(fl validator.FieldLevel) bool {
	return usernameRegex.MatchString(fl.Field().String())
}

func validateExpenseCategory(fl validator.FieldLevel) bool {
	return models.IsExpenseCategory(fl.Field().String())
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	switch models.PaymentMethod(fl.Field().String()) {
	case models.PaymentMethodCash, models.PaymentMethodCreditCard, models.PaymentMethodDebitCard,
		models.PaymentMethodUPI, models.PaymentMethodNetBanking, models.PaymentMethodWallet,
		models.PaymentMethodOther:
		return true
	}
	return false
}

func validateDebtDirection(fl validator.FieldLevel) bool {
	switch models.DebtDirection(fl.Field().String()) {
	case models.DebtDirectionIOwe, models.DebtDirectionOwedToMe:
		return true
	}
	return false
}

func validateDebtStatus(fl validator.FieldLevel) bool {
	switch models.DebtStatus(fl.Field().String()) {
	case models.DebtStatusPending, models.DebtStatusPartial, models.DebtStatusPaid:
		return true
	}
	return false
}

func validateMonthKey(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01", fl.Field().String())
	return err == nil
}
