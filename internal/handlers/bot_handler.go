package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "paisa/internal/errors"
	"paisa/internal/services"
)

// BotHandler handles chat account linking and inbound bot messages.
type BotHandler struct {
	botService   services.BotServicer
	auditService services.AuditServicer
}

// NewBotHandler creates a new BotHandler.
func NewBotHandler(botService services.BotServicer, auditService services.AuditServicer) *BotHandler {
	return &BotHandler{botService: botService, auditService: auditService}
}

// CompleteLinkRequest is sent by the bot backend to claim a link code.
type CompleteLinkRequest struct {
	LinkCode     string `json:"link_code" binding:"required,len=6"`
	ChatID       int64  `json:"chat_id" binding:"required"`
	ChatUsername string `json:"chat_username" binding:"max=100"`
}

// BotTokenRequest exchanges a chat ID for a bot auth token.
type BotTokenRequest struct {
	ChatID int64 `json:"chat_id" binding:"required"`
}

// BotMessageRequest is a raw chat message relayed by the bot backend.
type BotMessageRequest struct {
	ChatID int64  `json:"chat_id" binding:"required"`
	Text   string `json:"text" binding:"required,max=1000"`
}

// GenerateLinkCode issues a link code for the authenticated user.
// @Summary     Generate chat link code
// @Description Issue a short-lived code the user sends to the chatbot to link accounts
// @Tags        bot
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]string "Link code"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /bot/link [post]
func (h *BotHandler) GenerateLinkCode(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	link, err := h.botService.GenerateLinkCode(id.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"link_code":  link.LinkCode,
		"expires_at": link.LinkCodeExpiresAt,
	})
}

// Unlink removes the caller's chat link.
// @Summary     Unlink chat account
// @Tags        bot
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]string "Unlinked"
// @Failure     404 {object} ErrorResponse "No link found"
// @Router      /bot/link [delete]
func (h *BotHandler) Unlink(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.botService.Unlink(id.UserID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(id.UserID, "BOT_UNLINK", "bot_link", "", c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Chat account unlinked"})
}

// CompleteLink lets the bot backend claim a link code.
// @Summary     Complete chat link
// @Description Called by the bot backend with a user-provided link code
// @Tags        bot
// @Accept      json
// @Produce     json
// @Param       X-API-Key header string true "Bot backend API key"
// @Param       request body CompleteLinkRequest true "Link code and chat identity"
// @Success     200 {object} map[string]string "Linked"
// @Failure     400 {object} ErrorResponse "Invalid or expired code"
// @Router      /bot/link/complete [post]
func (h *BotHandler) CompleteLink(c *gin.Context) {
	var req CompleteLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.botService.CompleteLink(req.LinkCode, req.ChatID, req.ChatUsername); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Chat account linked"})
}

// GetBotToken exchanges a linked chat ID for a bot auth token.
// @Summary     Bot token exchange
// @Description Called by the bot backend to obtain a bearer token for a linked chat
// @Tags        bot
// @Accept      json
// @Produce     json
// @Param       X-API-Key header string true "Bot backend API key"
// @Param       request body BotTokenRequest true "Chat ID"
// @Success     200 {object} services.BotUser "User info and token"
// @Failure     404 {object} ErrorResponse "Chat not linked"
// @Router      /bot/token [post]
func (h *BotHandler) GetBotToken(c *gin.Context) {
	var req BotTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	botUser, err := h.botService.GetUserWithAuthToken(req.ChatID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, botUser)
}

// HandleMessage executes a chat command against the linked user's ledger.
// @Summary     Handle bot message
// @Description Parse a chat message into a ledger command and execute it
// @Tags        bot
// @Accept      json
// @Produce     json
// @Param       X-API-Key header string true "Bot backend API key"
// @Param       request body BotMessageRequest true "Chat message"
// @Success     200 {object} map[string]string "Reply text"
// @Failure     404 {object} ErrorResponse "Chat not linked"
// @Router      /bot/message [post]
func (h *BotHandler) HandleMessage(c *gin.Context) {
	var req BotMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	botUser, err := h.botService.GetUserWithAuthToken(req.ChatID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	reply, err := h.botService.HandleMessage(botUser.Username, req.Text)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.botService.RecordActivity(req.ChatID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(botUser.UserID, "BOT_MESSAGE", "bot_link", "", c.ClientIP(),
		map[string]interface{}{"chat_id": req.ChatID})

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
