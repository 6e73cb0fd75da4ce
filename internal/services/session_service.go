package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"paisa/internal/config"
	apperrors "paisa/internal/errors"
	"paisa/internal/models"
)

// sessionService owns the explicit session store behind refresh tokens.
// Sessions end three ways: absolute expiry, idling past the configured
// timeout, or revocation on logout.
type sessionService struct {
	db *gorm.DB
}

// NewSessionService creates a new SessionServicer.
func NewSessionService(db *gorm.DB) SessionServicer {
	return &sessionService{db: db}
}

// Create opens a new session for a user. The refresh token hash is stored
// separately once the token is signed.
func (s *sessionService) Create(userID string) (*models.Session, error) {
	now := time.Now()
	session := &models.Session{
		UserID:     userID,
		ExpiresAt:  now.Add(config.Get().SessionTTL),
		LastUsedAt: now,
	}
	if err := s.db.Create(session).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return session, nil
}

// StoreTokenHash binds the current refresh token's hash to the session.
// Called on creation and again on every rotation.
func (s *sessionService) StoreTokenHash(sessionID, tokenHash string) error {
	result := s.db.Model(&models.Session{}).
		Where("id = ?", sessionID).
		Update("token_hash", tokenHash)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrSessionNotFound
	}
	return nil
}

// ValidateAndTouch checks that a session is live and that the presented
// token hash matches, then records the use. A hash mismatch means the token
// was rotated or the session re-used, both grounds for rejection.
func (s *sessionService) ValidateAndTouch(sessionID, tokenHash string) (*models.Session, error) {
	var session models.Session
	if err := s.db.Where("id = ?", sessionID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := time.Now()
	switch {
	case session.RevokedAt != nil:
		return nil, apperrors.ErrSessionRevoked
	case now.After(session.ExpiresAt):
		return nil, apperrors.ErrSessionExpired
	case now.Sub(session.LastUsedAt) > config.Get().SessionIdleTimeout:
		return nil, apperrors.ErrSessionExpired
	case session.TokenHash != tokenHash:
		return nil, apperrors.ErrSessionNotFound
	}

	if err := s.db.Model(&session).Update("last_used_at", now).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	session.LastUsedAt = now
	return &session, nil
}

// Revoke ends a single session.
func (s *sessionService) Revoke(sessionID string) error {
	now := time.Now()
	result := s.db.Model(&models.Session{}).
		Where("id = ? AND revoked_at IS NULL", sessionID).
		Update("revoked_at", now)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrSessionNotFound
	}
	return nil
}

// RevokeAllForUser ends every live session a user has.
func (s *sessionService) RevokeAllForUser(userID string) error {
	now := time.Now()
	if err := s.db.Model(&models.Session{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", now).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
