package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "paisa/internal/errors"
	"paisa/internal/services"
)

// BudgetHandler handles monthly category budgets.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// SetBudgetRequest represents the request payload for setting a budget.
type SetBudgetRequest struct {
	Month    string          `json:"month" binding:"required,month_key"`
	Category string          `json:"category" binding:"required,expense_category"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
}

// SetBudget creates or replaces a monthly category budget.
// @Summary     Set a budget
// @Description Create or replace the budget for a month/category pair
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SetBudgetRequest true "Budget details"
// @Success     200 {object} models.Budget "Budget stored"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /budgets [put]
func (h *BudgetHandler) SetBudget(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.SetBudget(id.Username, req.Month, req.Category, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(id.UserID, "SET_BUDGET", "budget", budget.ID, c.ClientIP(),
		map[string]interface{}{"month": budget.Month, "category": budget.Category, "amount": budget.Amount.String()})

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// GetBudgets lists a month's budgets with progress.
// @Summary     List budgets
// @Description Budgets for a month with spent and remaining amounts; defaults to the current month
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "Month (YYYY-MM)"
// @Success     200 {object} map[string][]services.BudgetProgress "Budgets"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month := c.Query("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}

	budgets, err := h.budgetService.GetBudgets(id.Username, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"month": month, "budgets": budgets})
}
