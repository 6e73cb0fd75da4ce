package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func botRouter(apiKey string) *gin.Engine {
	r := gin.New()
	r.Use(BotBackendAuth(apiKey))
	r.POST("/bot/message", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"reply": "ok"})
	})
	return r
}

func doBotRequest(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/bot/message", nil)
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestBotBackendAuth(t *testing.T) {
	t.Run("accepts the configured key", func(t *testing.T) {
		rec := doBotRequest(botRouter("secret-key"), "secret-key")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("rejects a wrong key", func(t *testing.T) {
		rec := doBotRequest(botRouter("secret-key"), "wrong-key")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("rejects a missing key", func(t *testing.T) {
		rec := doBotRequest(botRouter("secret-key"), "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("unavailable when no key configured", func(t *testing.T) {
		rec := doBotRequest(botRouter(""), "anything")
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
	})
}
