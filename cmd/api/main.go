package main

import (
	"fmt"
	"net/http"
	"os"

	"paisa/internal/config"
	"paisa/internal/database"
	"paisa/internal/handlers"
	"paisa/internal/ledger"
	"paisa/internal/logger"
	"paisa/internal/middleware"
	"paisa/internal/services"
	"paisa/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "paisa/internal/docs" // Import swagger docs
)

// @title           Paisa API
// @version         1.0
// @description     Paisa is a personal finance tracker: record expenses, debts, and savings in a per-user ledger, with summary dashboards and a chatbot integration.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Core database (users, sessions, bot links, audit)
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Per-user ledger store
	store, err := ledger.NewStore(appConfig.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open ledger store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warnf("closing ledger store: %v", err)
		}
	}()

	// Initialize services
	db := dbManager.DB()
	ledgerService := services.NewLedgerService(store)
	summaryService := services.NewSummaryService(ledgerService)
	userService := services.NewUserService(db, ledgerService)
	sessionService := services.NewSessionService(db)
	budgetService := services.NewBudgetService(store)
	botService := services.NewBotService(db, ledgerService, summaryService)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, sessionService, auditService)
	expenseHandler := handlers.NewExpenseHandler(ledgerService, auditService)
	debtHandler := handlers.NewDebtHandler(ledgerService, auditService)
	savingHandler := handlers.NewSavingHandler(ledgerService, auditService)
	dashboardHandler := handlers.NewDashboardHandler(summaryService, ledgerService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	botHandler := handlers.NewBotHandler(botService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
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

	// Bot backend routes, authenticated by shared API key
	bot := v1.Group("/bot")
	bot.Use(middleware.BotBackendAuth(appConfig.BotAPIKey))
	bot.POST("/link/complete", botHandler.CompleteLink)
	bot.POST("/token", botHandler.GetBotToken)
	bot.POST("/message", botHandler.HandleMessage)

	log.Infof("Starting Paisa backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
