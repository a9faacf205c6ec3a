package main

import (
	"fmt"
	"net/http"
	"os"

	"pulserisk/internal/config"
	"pulserisk/internal/database"
	"pulserisk/internal/handlers"
	"pulserisk/internal/logger"
	"pulserisk/internal/middleware"
	"pulserisk/internal/quote"
	"pulserisk/internal/seed"
	"pulserisk/internal/services"
	"pulserisk/internal/store"
	"pulserisk/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "pulserisk/internal/docs" // Import swagger docs
)

// @title           PulseRisk API
// @version         1.0
// @description     PulseRisk is a portfolio tracking and risk analytics service covering holdings, a transaction ledger, brokerage CSV imports, and a dashboard of risk metrics.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

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

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	stores := store.NewGormStores(dbManager.DB())

	// Seed demo data on first run
	if err := seed.Run(stores); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	// Market data provider is optional: without an API key, quote routes
	// report QUOTE_NOT_CONFIGURED and everything else works normally.
	var provider quote.Provider
	if appConfig.QuoteAPIKey != "" {
		provider, err = quote.New(appConfig.QuoteProvider, appConfig.QuoteAPIKey, nil)
		if err != nil {
			return fmt.Errorf("failed to create quote provider: %w", err)
		}
		log.Infof("Market data provider: %s", provider.Name())
	} else {
		log.Warn("No market data API key configured; quote endpoints disabled")
	}

	// Initialize services
	accountService := services.NewAccountService(stores)
	ledgerService := services.NewLedgerService(stores)
	scopeService := services.NewScopeService(stores)
	analyticsService := services.NewAnalyticsService(scopeService, services.AnalyticsConfig{
		RiskFreeRate:    appConfig.RiskFreeRate,
		SeriesLength:    appConfig.SeriesLength,
		CurveStartValue: appConfig.CurveStartValue,
	})
	importService := services.NewImportService(accountService, ledgerService)
	quoteService := services.NewQuoteService(provider, stores)

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(accountService)
	holdingHandler := handlers.NewHoldingHandler(ledgerService)
	activityHandler := handlers.NewActivityHandler(ledgerService, scopeService)
	importHandler := handlers.NewImportHandler(importService)
	dashboardHandler := handlers.NewDashboardHandler(analyticsService)
	quoteHandler := handlers.NewQuoteHandler(quoteService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Account routes
	accounts := v1.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.DELETE("/:id/data", accountHandler.ClearAccountData)
	accounts.GET("/:id/holdings", holdingHandler.GetAccountHoldings)
	accounts.POST("/:id/refresh-prices", quoteHandler.RefreshPrices)

	// Holding routes
	holdings := v1.Group("/holdings")
	holdings.POST("", holdingHandler.UpsertHolding)
	holdings.DELETE("/:id", holdingHandler.DeleteHolding)

	// Activity routes
	activity := v1.Group("/activity")
	activity.POST("", activityHandler.CreateActivity)
	activity.GET("", activityHandler.ListActivity)
	activity.DELETE("/:id", activityHandler.DeleteActivity)

	// Import, dashboard, and quote routes
	v1.POST("/import", importHandler.ImportCSV)
	v1.GET("/dashboard", dashboardHandler.GetDashboard)
	v1.GET("/quotes/:symbol", quoteHandler.GetQuote)

	log.Infof("Starting PulseRisk server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
