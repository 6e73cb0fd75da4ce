package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"paisa/internal/handlers"
	"paisa/internal/ledger"
	"paisa/internal/logger"
	"paisa/internal/middleware"
	"paisa/internal/models"
	"paisa/internal/services"
	"paisa/internal/validator"
)

const testBotAPIKey = "test-bot-key"

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Store  *ledger.Store
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	coreModels := []interface{}{
		&models.User{},
		&models.Session{},
		&models.BotLink{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(coreModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated core
// database and a temp-dir ledger store.
func setupApp(t *testing.T) *testApp {
	t.Helper()
	return setupAppWithDir(t, t.TempDir())
}

// setupAppWithDir pins the ledger store to a caller-provided directory, so
// durability tests can restart the stack over the same files.
func setupAppWithDir(t *testing.T, dataDir string) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	store, err := ledger.NewStore(dataDir)
	if err != nil {
		t.Fatalf("failed to create ledger store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	// Services
	ledgerService := services.NewLedgerService(store)
	summaryService := services.NewSummaryService(ledgerService)
	userService := services.NewUserService(db, ledgerService)
	sessionService := services.NewSessionService(db)
	budgetService := services.NewBudgetService(store)
	botService := services.NewBotService(db, ledgerService, summaryService)
	auditService := services.NewAuditService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, sessionService, auditService)
	expenseHandler := handlers.NewExpenseHandler(ledgerService, auditService)
	debtHandler := handlers.NewDebtHandler(ledgerService, auditService)
	savingHandler := handlers.NewSavingHandler(ledgerService, auditService)
	dashboardHandler := handlers.NewDashboardHandler(summaryService, ledgerService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	botHandler := handlers.NewBotHandler(botService, auditService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/profile", authHandler.GetProfile)

	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.GET("/categories", expenseHandler.ListCategories)

	debts := protected.Group("/debts")
	debts.POST("", debtHandler.CreateDebt)
	debts.GET("", debtHandler.ListDebts)

	savings := protected.Group("/savings")
	savings.POST("", savingHandler.CreateSaving)
	savings.GET("", savingHandler.ListSavings)

	protected.GET("/dashboard", dashboardHandler.GetDashboard)
	protected.GET("/stats", dashboardHandler.GetStats)

	budgets := protected.Group("/budgets")
	budgets.PUT("", budgetHandler.SetBudget)
	budgets.GET("", budgetHandler.GetBudgets)

	protected.POST("/bot/link", botHandler.GenerateLinkCode)
	protected.DELETE("/bot/link", botHandler.Unlink)

	bot := v1.Group("/bot")
	bot.Use(middleware.BotBackendAuth(testBotAPIKey))
	bot.POST("/link/complete", botHandler.CompleteLink)
	bot.POST("/token", botHandler.GetBotToken)
	bot.POST("/message", botHandler.HandleMessage)

	return &testApp{DB: db, Store: store, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// botRequest makes a bot-backend request carrying the shared API key.
func (app *testApp) botRequest(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", testBotAPIKey)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the access and refresh tokens.
func (app *testApp) registerUser(t *testing.T, username, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, username, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// addExpense records an expense for the token's user.
func (app *testApp) addExpense(t *testing.T, token, date, category, description string, amount string) {
	t.Helper()
	body := fmt.Sprintf(`{"date":%q,"category":%q,"description":%q,"amount":%s,"payment_method":"cash"}`,
		date, category, description, amount)
	rec := app.request("POST", "/api/v1/expenses", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add expense failed: %d %s", rec.Code, rec.Body.String())
	}
}
