package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paisa/internal/models"
	"paisa/internal/services"
)

const recentExpenseCount = 5

// DashboardHandler serves the summary views.
type DashboardHandler struct {
	summaryService services.SummaryServicer
	ledgerService  services.LedgerServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(summaryService services.SummaryServicer, ledgerService services.LedgerServicer) *DashboardHandler {
	return &DashboardHandler{summaryService: summaryService, ledgerService: ledgerService}
}

// DashboardResponse is the payload backing the dashboard view.
type DashboardResponse struct {
	Username       string            `json:"username"`
	Stats          *services.Summary `json:"stats"`
	RecentExpenses []models.Expense  `json:"recent_expenses"`
	Categories     []string          `json:"categories"`
}

// GetDashboard returns the summary plus the most recent expenses.
// @Summary     Dashboard
// @Description Summary totals, the five most recent expenses, and the category list
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} DashboardResponse "Dashboard data"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.summaryService.ForUser(id.Username)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recent, err := h.ledgerService.RecentExpenses(id.Username, recentExpenseCount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{
		Username:       id.Username,
		Stats:          stats,
		RecentExpenses: recent,
		Categories:     models.ExpenseCategories,
	})
}

// GetStats returns the summary alone.
// @Summary     Summary statistics
// @Description Totals for expenses, savings, both debt directions, net balance, and per-category spending
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.Summary "Summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.summaryService.ForUser(id.Username)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
