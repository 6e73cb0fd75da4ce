package testutil_test

import (
	"testing"

	"paisa/internal/errors"
	"paisa/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "sessions", "bot_links", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have an ID")
	}
	if !user.IsActive {
		t.Error("fixture users should be active")
	}

	session, token := testutil.CreateTestSession(t, db, user)
	if session.TokenHash == "" || token == "" {
		t.Error("session fixture should carry a token and its hash")
	}

	link := testutil.CreateTestBotLink(t, db, user, 12345)
	if link.ChatID != 12345 || !link.IsActive {
		t.Errorf("unexpected bot link fixture: %+v", link)
	}
}

func TestSetupTestStore(t *testing.T) {
	store := testutil.SetupTestStore(t)

	if _, err := store.Open("alice"); err != nil {
		t.Fatalf("store should open fresh containers: %v", err)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrRecordNotFound, "custom message")
	testutil.AssertAppError(t, err, "RECORD_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
