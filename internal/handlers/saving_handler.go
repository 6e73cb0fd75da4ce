package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "paisa/internal/errors"
	"paisa/internal/pagination"
	"paisa/internal/services"
)

// SavingHandler handles saving records.
type SavingHandler struct {
	ledgerService services.LedgerServicer
	auditService  services.AuditServicer
}

// NewSavingHandler creates a new SavingHandler.
func NewSavingHandler(ledgerService services.LedgerServicer, auditService services.AuditServicer) *SavingHandler {
	return &SavingHandler{ledgerService: ledgerService, auditService: auditService}
}

// CreateSavingRequest represents the request payload for adding a saving.
type CreateSavingRequest struct {
	Date        string          `json:"date" binding:"required"`
	Type        string          `json:"type" binding:"required,max=100"`
	Description string          `json:"description" binding:"max=500"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Goal        string          `json:"goal" binding:"max=200"`
	Notes       string          `json:"notes" binding:"max=1000"`
}

// CreateSaving appends a saving to the caller's ledger.
// @Summary     Add a saving
// @Description Append a saving record to the caller's ledger
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateSavingRequest true "Saving details"
// @Success     201 {object} models.Saving "Saving recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /savings [post]
func (h *SavingHandler) CreateSaving(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateSavingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	saving, err := h.ledgerService.AddSaving(id.Username, services.SavingInput{
		Date:        date,
		Type:        req.Type,
		Description: req.Description,
		Amount:      req.Amount,
		Goal:        req.Goal,
		Notes:       req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(id.UserID, "ADD_SAVING", "saving", saving.ID, c.ClientIP(),
		map[string]interface{}{"type": saving.Type, "amount": saving.Amount.String()})

	c.JSON(http.StatusCreated, gin.H{"saving": saving})
}

// ListSavings lists the caller's savings.
// @Summary     List savings
// @Description List the caller's savings in insertion order
// @Tags        savings
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Saving] "Savings"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /savings [get]
func (h *SavingHandler) ListSavings(c *gin.Context) {
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

	resp, err := h.ledgerService.ListSavings(id.Username, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
