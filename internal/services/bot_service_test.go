package services

import (
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"paisa/internal/middleware"
	"paisa/internal/models"
	"paisa/internal/testutil"
)

func newTestBotService(t *testing.T) (BotServicer, *gorm.DB, LedgerServicer) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
	ledgerSvc := NewLedgerService(testutil.SetupTestStore(t))
	summarySvc := NewSummaryService(ledgerSvc)
	return NewBotService(db, ledgerSvc, summarySvc), db, ledgerSvc
}

func TestGenerateLinkCode(t *testing.T) {
	t.Run("issues_six_char_code", func(t *testing.T) {
		svc, db, _ := newTestBotService(t)
		user := testutil.CreateTestUser(t, db)

		link, err := svc.GenerateLinkCode(user.ID)
		testutil.AssertNoError(t, err)

		if len(link.LinkCode) != 6 {
			t.Errorf("expected 6-char code, got %q", link.LinkCode)
		}
		if link.LinkCodeExpiresAt == nil || !link.LinkCodeExpiresAt.After(time.Now()) {
			t.Error("expected a future expiry")
		}
		if link.IsActive {
			t.Error("link must stay inactive until the code is claimed")
		}
	})

	t.Run("regenerating_replaces_code", func(t *testing.T) {
		svc, db, _ := newTestBotService(t)
		user := testutil.CreateTestUser(t, db)

		first, err := svc.GenerateLinkCode(user.ID)
		testutil.AssertNoError(t, err)
		second, err := svc.GenerateLinkCode(user.ID)
		testutil.AssertNoError(t, err)

		if first.LinkCode == second.LinkCode {
			t.Error("expected a fresh code on regeneration")
		}

		var count int64
		db.Model(&models.BotLink{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected one link row per user, got %d", count)
		}
	})
}

func TestCompleteLink(t *testing.T) {
	t.Run("claims_code", func(t *testing.T) {
		svc, db, _ := newTestBotService(t)
		user := testutil.CreateTestUser(t, db)

		link, err := svc.GenerateLinkCode(user.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, svc.CompleteLink(link.LinkCode, 555001, "alice_tg"))

		var stored models.BotLink
		db.Where("user_id = ?", user.ID).First(&stored)
		if !stored.IsActive {
			t.Error("expected link to be active after claim")
		}
		if stored.ChatID != 555001 {
			t.Errorf("expected chat ID 555001, got %d", stored.ChatID)
		}
		if stored.LinkCode != "" {
			t.Error("expected the code to be cleared after claim")
		}
	})

	t.Run("invalid_code", func(t *testing.T) {
		svc, _, _ := newTestBotService(t)

		testutil.AssertAppError(t, svc.CompleteLink("zzzzzz", 555001, ""), "INVALID_LINK_CODE")
	})

	t.Run("expired_code", func(t *testing.T) {
		svc, db, _ := newTestBotService(t)
		user := testutil.CreateTestUser(t, db)

		link, err := svc.GenerateLinkCode(user.ID)
		testutil.AssertNoError(t, err)
		db.Model(&models.BotLink{}).Where("user_id = ?", user.ID).
			Update("link_code_expires_at", time.Now().Add(-time.Minute))

		testutil.AssertAppError(t, svc.CompleteLink(link.LinkCode, 555001, ""), "LINK_CODE_EXPIRED")
	})

	t.Run("chat_cannot_drive_two_users", func(t *testing.T) {
		svc, db, _ := newTestBotService(t)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)

		aliceLink, err := svc.GenerateLinkCode(alice.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, svc.CompleteLink(aliceLink.LinkCode, 555001, ""))

		bobLink, err := svc.GenerateLinkCode(bob.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertAppError(t, svc.CompleteLink(bobLink.LinkCode, 555001, ""), "CHAT_ALREADY_LINKED")
	})
}

func TestGetUserWithAuthToken(t *testing.T) {
	t.Run("linked_chat", func(t *testing.T) {
		svc, db, _ := newTestBotService(t)
		user := testutil.CreateTestUserWithName(t, db, "alice")
		testutil.CreateTestBotLink(t, db, user, 555001)

		botUser, err := svc.GetUserWithAuthToken(555001)
		testutil.AssertNoError(t, err)

		if botUser.Username != "alice" {
			t.Errorf("expected alice, got %s", botUser.Username)
		}
		claims, err := middleware.ParseToken(botUser.AuthToken)
		testutil.AssertNoError(t, err)
		if claims.TokenType != middleware.TokenTypeBot {
			t.Errorf("expected a bot token, got %s", claims.TokenType)
		}
	})

	t.Run("unlinked_chat", func(t *testing.T) {
		svc, _, _ := newTestBotService(t)

		_, err := svc.GetUserWithAuthToken(999999)
		testutil.AssertAppError(t, err, "BOT_LINK_NOT_FOUND")
	})
}

func TestUnlink(t *testing.T) {
	svc, db, _ := newTestBotService(t)
	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestBotLink(t, db, user, 555001)

	testutil.AssertNoError(t, svc.Unlink(user.ID))
	testutil.AssertAppError(t, svc.Unlink(user.ID), "BOT_LINK_NOT_FOUND")

	_, err := svc.GetUserWithAuthToken(555001)
	testutil.AssertAppError(t, err, "BOT_LINK_NOT_FOUND")
}

func TestHandleMessage(t *testing.T) {
	t.Run("records_expense", func(t *testing.T) {
		svc, _, ledgerSvc := newTestBotService(t)

		reply, err := svc.HandleMessage("alice", "expense 120.50 food lunch")
		testutil.AssertNoError(t, err)

		if !strings.Contains(reply, "120.50") {
			t.Errorf("expected the amount in the reply, got %q", reply)
		}

		snap, err := ledgerSvc.Snapshot("alice")
		testutil.AssertNoError(t, err)
		if len(snap.Expenses) != 1 {
			t.Fatalf("expected 1 expense, got %d", len(snap.Expenses))
		}
		if snap.Expenses[0].Category != "Food & Dining" {
			t.Errorf("expected Food & Dining, got %s", snap.Expenses[0].Category)
		}
	})

	t.Run("records_debt", func(t *testing.T) {
		svc, _, ledgerSvc := newTestBotService(t)

		reply, err := svc.HandleMessage("alice", "borrowed 500 from ravi")
		testutil.AssertNoError(t, err)

		if !strings.Contains(reply, "you owe ravi") {
			t.Errorf("unexpected reply %q", reply)
		}

		snap, err := ledgerSvc.Snapshot("alice")
		testutil.AssertNoError(t, err)
		if len(snap.Debts) != 1 || snap.Debts[0].Direction != models.DebtDirectionIOwe {
			t.Errorf("unexpected debts: %+v", snap.Debts)
		}
	})

	t.Run("summary_reflects_records", func(t *testing.T) {
		svc, _, _ := newTestBotService(t)

		_, err := svc.HandleMessage("alice", "expense 500 food lunch")
		testutil.AssertNoError(t, err)
		_, err = svc.HandleMessage("alice", "saved 10000 fd")
		testutil.AssertNoError(t, err)
		_, err = svc.HandleMessage("alice", "borrowed 1000 from ravi")
		testutil.AssertNoError(t, err)

		reply, err := svc.HandleMessage("alice", "summary")
		testutil.AssertNoError(t, err)

		if !strings.Contains(reply, "8500.00") {
			t.Errorf("expected net balance 8500.00 in reply, got %q", reply)
		}
	})

	t.Run("recent_lists_expenses", func(t *testing.T) {
		svc, _, _ := newTestBotService(t)

		_, err := svc.HandleMessage("alice", "expense 50 food chai")
		testutil.AssertNoError(t, err)

		reply, err := svc.HandleMessage("alice", "recent")
		testutil.AssertNoError(t, err)
		if !strings.Contains(reply, "chai") {
			t.Errorf("expected the expense in the reply, got %q", reply)
		}
	})

	t.Run("unknown_text_replies_with_help", func(t *testing.T) {
		svc, _, _ := newTestBotService(t)

		reply, err := svc.HandleMessage("alice", "what is the meaning of life")
		testutil.AssertNoError(t, err)
		if !strings.Contains(reply, "Commands:") {
			t.Errorf("expected usage help, got %q", reply)
		}
	})
}

func TestRecordActivity(t *testing.T) {
	svc, db, _ := newTestBotService(t)
	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestBotLink(t, db, user, 555001)

	testutil.AssertNoError(t, svc.RecordActivity(555001))
	testutil.AssertNoError(t, svc.RecordActivity(555001))

	var link models.BotLink
	db.Where("chat_id = ?", 555001).First(&link)
	if link.MessageCount != 2 {
		t.Errorf("expected message count 2, got %d", link.MessageCount)
	}
	if link.LastMessageAt == nil {
		t.Error("expected last message timestamp to be set")
	}
}
