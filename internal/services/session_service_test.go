package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"paisa/internal/middleware"
	"paisa/internal/testutil"
)

func newTestSessionService(t *testing.T) (SessionServicer, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
	return NewSessionService(db), db
}

func TestSessionLifecycle(t *testing.T) {
	t.Run("create_validate_touch", func(t *testing.T) {
		svc, db := newTestSessionService(t)
		user := testutil.CreateTestUser(t, db)

		session, err := svc.Create(user.ID)
		testutil.AssertNoError(t, err)
		if session.ID == "" {
			t.Fatal("expected a session ID")
		}

		token, err := middleware.GenerateRefreshToken(user, session.ID)
		testutil.AssertNoError(t, err)
		hash := middleware.HashToken(token)
		testutil.AssertNoError(t, svc.StoreTokenHash(session.ID, hash))

		validated, err := svc.ValidateAndTouch(session.ID, hash)
		testutil.AssertNoError(t, err)
		if validated.UserID != user.ID {
			t.Errorf("expected session for user %s, got %s", user.ID, validated.UserID)
		}
	})

	t.Run("unknown_session", func(t *testing.T) {
		svc, _ := newTestSessionService(t)

		_, err := svc.ValidateAndTouch("no-such-session", "hash")
		testutil.AssertAppError(t, err, "SESSION_NOT_FOUND")
	})

	t.Run("hash_mismatch_rejected", func(t *testing.T) {
		svc, db := newTestSessionService(t)
		user := testutil.CreateTestUser(t, db)
		session, _ := testutil.CreateTestSession(t, db, user)

		_, err := svc.ValidateAndTouch(session.ID, middleware.HashToken("a token that was never issued"))
		testutil.AssertAppError(t, err, "SESSION_NOT_FOUND")
	})

	t.Run("revoked_session_rejected", func(t *testing.T) {
		svc, db := newTestSessionService(t)
		user := testutil.CreateTestUser(t, db)
		session, token := testutil.CreateTestSession(t, db, user)

		testutil.AssertNoError(t, svc.Revoke(session.ID))

		_, err := svc.ValidateAndTouch(session.ID, middleware.HashToken(token))
		testutil.AssertAppError(t, err, "SESSION_REVOKED")
	})

	t.Run("revoking_twice_fails", func(t *testing.T) {
		svc, db := newTestSessionService(t)
		user := testutil.CreateTestUser(t, db)
		session, _ := testutil.CreateTestSession(t, db, user)

		testutil.AssertNoError(t, svc.Revoke(session.ID))
		testutil.AssertAppError(t, svc.Revoke(session.ID), "SESSION_NOT_FOUND")
	})

	t.Run("absolute_expiry", func(t *testing.T) {
		svc, db := newTestSessionService(t)
		user := testutil.CreateTestUser(t, db)
		session, token := testutil.CreateTestSession(t, db, user)

		db.Model(session).Update("expires_at", time.Now().Add(-time.Hour))

		_, err := svc.ValidateAndTouch(session.ID, middleware.HashToken(token))
		testutil.AssertAppError(t, err, "SESSION_EXPIRED")
	})

	t.Run("idle_timeout", func(t *testing.T) {
		svc, db := newTestSessionService(t)
		user := testutil.CreateTestUser(t, db)
		session, token := testutil.CreateTestSession(t, db, user)

		// Last use longer ago than the default 24h idle timeout.
		db.Model(session).Update("last_used_at", time.Now().Add(-48*time.Hour))

		_, err := svc.ValidateAndTouch(session.ID, middleware.HashToken(token))
		testutil.AssertAppError(t, err, "SESSION_EXPIRED")
	})

	t.Run("revoke_all_for_user", func(t *testing.T) {
		svc, db := newTestSessionService(t)
		user := testutil.CreateTestUser(t, db)
		s1, t1 := testutil.CreateTestSession(t, db, user)
		s2, t2 := testutil.CreateTestSession(t, db, user)

		testutil.AssertNoError(t, svc.RevokeAllForUser(user.ID))

		_, err := svc.ValidateAndTouch(s1.ID, middleware.HashToken(t1))
		testutil.AssertAppError(t, err, "SESSION_REVOKED")
		_, err = svc.ValidateAndTouch(s2.ID, middleware.HashToken(t2))
		testutil.AssertAppError(t, err, "SESSION_REVOKED")
	})
}
