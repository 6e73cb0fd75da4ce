package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "paisa/internal/errors"
	"paisa/internal/models"
	"paisa/internal/pagination"
	"paisa/internal/services"
)

// DebtHandler handles debt records.
type DebtHandler struct {
	ledgerService services.LedgerServicer
	auditService  services.AuditServicer
}

// NewDebtHandler creates a new DebtHandler.
func NewDebtHandler(ledgerService services.LedgerServicer, auditService services.AuditServicer) *DebtHandler {
	return &DebtHandler{ledgerService: ledgerService, auditService: auditService}
}

// CreateDebtRequest represents the request payload for adding a debt.
type CreateDebtRequest struct {
	Date         string          `json:"date" binding:"required"`
	Counterparty string          `json:"counterparty" binding:"required,max=200"`
	Direction    string          `json:"direction" binding:"required,debt_direction"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Status       string          `json:"status" binding:"omitempty,debt_status"`
	DueDate      string          `json:"due_date" binding:"omitempty"`
	Notes        string          `json:"notes" binding:"max=1000"`
}

// CreateDebt appends a debt to the caller's ledger.
// @Summary     Add a debt
// @Description Append a debt record to the caller's ledger
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateDebtRequest true "Debt details"
// @Success     201 {object} models.Debt "Debt recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /debts [post]
func (h *DebtHandler) CreateDebt(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.DebtInput{
		Date:         date,
		Counterparty: req.Counterparty,
		Direction:    models.DebtDirection(req.Direction),
		Amount:       req.Amount,
		Status:       models.DebtStatus(req.Status),
		Notes:        req.Notes,
	}
	if req.DueDate != "" {
		due, err := parseDate(req.DueDate)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "due_"+err.Error()))
			return
		}
		input.DueDate = &due
	}

	debt, err := h.ledgerService.AddDebt(id.Username, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(id.UserID, "ADD_DEBT", "debt", debt.ID, c.ClientIP(),
		map[string]interface{}{"direction": debt.Direction, "amount": debt.Amount.String()})

	c.JSON(http.StatusCreated, gin.H{"debt": debt})
}

// ListDebts lists the caller's debts.
// @Summary     List debts
// @Description List the caller's debts in insertion order
// @Tags        debts
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Debt] "Debts"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /debts [get]
func (h *DebtHandler) ListDebts(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	resp, err := h.ledgerService.ListDebts(id.Username, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
