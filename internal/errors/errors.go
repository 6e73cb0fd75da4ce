// Package errors provides custom error types for the Paisa API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid username or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrAccountLocked      = &AppError{Code: "ACCOUNT_LOCKED", Message: "Account is temporarily locked", StatusCode: http.StatusLocked}
)

// Session errors.
var (
	ErrSessionNotFound = &AppError{Code: "SESSION_NOT_FOUND", Message: "Session not found", StatusCode: http.StatusUnauthorized}
	ErrSessionExpired  = &AppError{Code: "SESSION_EXPIRED", Message: "Session has expired, please log in again", StatusCode: http.StatusUnauthorized}
	ErrSessionRevoked  = &AppError{Code: "SESSION_REVOKED", Message: "Session has been revoked", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound  = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateUser = &AppError{Code: "DUPLICATE_USER", Message: "A user with this username already exists", StatusCode: http.StatusConflict}
)

// Ledger errors.
var (
	ErrRecordNotFound = &AppError{Code: "RECORD_NOT_FOUND", Message: "Record not found", StatusCode: http.StatusNotFound}
	ErrStorageIO      = &AppError{Code: "STORAGE_ERROR", Message: "Ledger storage is unavailable", StatusCode: http.StatusInternalServerError}
)

// Budget errors.
var (
	ErrBudgetNotFound = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
)

// Bot link errors.
var (
	ErrBotLinkNotFound   = &AppError{Code: "BOT_LINK_NOT_FOUND", Message: "No chat link found", StatusCode: http.StatusNotFound}
	ErrInvalidLinkCode   = &AppError{Code: "INVALID_LINK_CODE", Message: "Invalid link code", StatusCode: http.StatusBadRequest}
	ErrLinkCodeExpired   = &AppError{Code: "LINK_CODE_EXPIRED", Message: "Link code has expired", StatusCode: http.StatusBadRequest}
	ErrChatAlreadyLinked = &AppError{Code: "CHAT_ALREADY_LINKED", Message: "This chat is already linked to another account", StatusCode: http.StatusConflict}
	ErrUnknownCommand    = &AppError{Code: "UNKNOWN_COMMAND", Message: "Could not understand that command", StatusCode: http.StatusBadRequest}
)
