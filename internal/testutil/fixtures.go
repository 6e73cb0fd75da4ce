package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"paisa/internal/middleware"
	"paisa/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TestPassword is the plaintext password shared by all user fixtures.
const TestPassword = "password123"

// CreateTestUser creates an active user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithName(t, db, fmt.Sprintf("user%d", nextID()))
}

// CreateTestUserWithName creates an active user with the given username.
func CreateTestUserWithName(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Email:    username + "@test.com",
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestSession creates a live session for the user and returns it with
// the refresh token hash already stored.
func CreateTestSession(t *testing.T, db *gorm.DB, user *models.User) (*models.Session, string) {
	t.Helper()

	session := &models.Session{
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(24 * time.Hour),
		LastUsedAt: time.Now(),
	}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("failed to create test session: %v", err)
	}

	token, err := middleware.GenerateRefreshToken(user, session.ID)
	if err != nil {
		t.Fatalf("failed to generate refresh token: %v", err)
	}
	session.TokenHash = middleware.HashToken(token)
	if err := db.Save(session).Error; err != nil {
		t.Fatalf("failed to store token hash: %v", err)
	}
	return session, token
}

// CreateTestBotLink creates an active chat link for the user.
func CreateTestBotLink(t *testing.T, db *gorm.DB, user *models.User, chatID int64) *models.BotLink {
	t.Helper()

	link := &models.BotLink{
		UserID:   user.ID,
		ChatID:   chatID,
		IsActive: true,
	}
	if err := db.Create(link).Error; err != nil {
		t.Fatalf("failed to create test bot link: %v", err)
	}
	return link
}
