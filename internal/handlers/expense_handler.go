package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "paisa/internal/errors"
	"paisa/internal/ledger"
	"paisa/internal/models"
	"paisa/internal/pagination"
	"paisa/internal/services"
)

// ExpenseHandler handles expense records.
type ExpenseHandler struct {
	ledgerService services.LedgerServicer
	auditService  services.AuditServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(ledgerService services.LedgerServicer, auditService services.AuditServicer) *ExpenseHandler {
	return &ExpenseHandler{ledgerService: ledgerService, auditService: auditService}
}

// CreateExpenseRequest represents the request payload for adding an expense.
type CreateExpenseRequest struct {
	Date          string          `json:"date" binding:"required"`
	Category      string          `json:"category" binding:"required,expense_category"`
	Description   string          `json:"description" binding:"required,max=500"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"required,payment_method"`
	Notes         string          `json:"notes" binding:"max=1000"`
}

// listExpensesQuery holds the query parameters for listing expenses.
type listExpensesQuery struct {
	pagination.PageRequest
	Category string `form:"category" binding:"omitempty,expense_category"`
	Month    string `form:"month" binding:"omitempty,month_key"`
}

// CreateExpense appends an expense to the caller's ledger.
// @Summary     Add an expense
// @Description Append an expense record to the caller's ledger
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} models.Expense "Expense recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.ledgerService.AddExpense(id.Username, services.ExpenseInput{
		Date:          date,
		Category:      req.Category,
		Description:   req.Description,
		Amount:        req.Amount,
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		Notes:         req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(id.UserID, "ADD_EXPENSE", "expense", expense.ID, c.ClientIP(),
		map[string]interface{}{"category": expense.Category, "amount": expense.Amount.String()})

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// ListExpenses lists the caller's expenses.
// @Summary     List expenses
// @Description List the caller's expenses in insertion order, optionally filtered by category or month
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       category query string false "Filter by category"
// @Param       month query string false "Filter by month (YYYY-MM)"
// @Success     200 {object} pagination.PageResponse[models.Expense] "Expenses"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /expenses [get]
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query listExpensesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	resp, err := h.ledgerService.ListExpenses(id.Username, query.PageRequest, ledger.ExpenseFilter{
		Category: query.Category,
		Month:    query.Month,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListCategories returns the fixed expense categories.
// @Summary     List expense categories
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]string "Categories"
// @Router      /expenses/categories [get]
func (h *ExpenseHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.ExpenseCategories})
}
