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

	"pulserisk/internal/handlers"
	"pulserisk/internal/logger"
	"pulserisk/internal/middleware"
	"pulserisk/internal/models"
	"pulserisk/internal/services"
	"pulserisk/internal/store"
	"pulserisk/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
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
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Account{},
		&models.Holding{},
		&models.Transaction{},
		&models.TaxLot{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite. No market data provider is configured, so quote routes report
// QUOTE_NOT_CONFIGURED.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	stores := store.NewGormStores(db)

	// Services
	accountService := services.NewAccountService(stores)
	ledgerService := services.NewLedgerService(stores)
	scopeService := services.NewScopeService(stores)
	analyticsService := services.NewAnalyticsService(scopeService, services.AnalyticsConfig{
		RiskFreeRate:    0.04,
		SeriesLength:    120,
		CurveStartValue: 138000,
	})
	importService := services.NewImportService(accountService, ledgerService)
	quoteService := services.NewQuoteService(nil, stores)

	// Handlers
	accountHandler := handlers.NewAccountHandler(accountService)
	holdingHandler := handlers.NewHoldingHandler(ledgerService)
	activityHandler := handlers.NewActivityHandler(ledgerService, scopeService)
	importHandler := handlers.NewImportHandler(importService)
	dashboardHandler := handlers.NewDashboardHandler(analyticsService)
	quoteHandler := handlers.NewQuoteHandler(quoteService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	accounts := v1.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.DELETE("/:id/data", accountHandler.ClearAccountData)
	accounts.GET("/:id/holdings", holdingHandler.GetAccountHoldings)
	accounts.POST("/:id/refresh-prices", quoteHandler.RefreshPrices)

	holdings := v1.Group("/holdings")
	holdings.POST("", holdingHandler.UpsertHolding)
	holdings.DELETE("/:id", holdingHandler.DeleteHolding)

	activity := v1.Group("/activity")
	activity.POST("", activityHandler.CreateActivity)
	activity.GET("", activityHandler.ListActivity)
	activity.DELETE("/:id", activityHandler.DeleteActivity)

	v1.POST("/import", importHandler.ImportCSV)
	v1.GET("/dashboard", dashboardHandler.GetDashboard)
	v1.GET("/quotes/:symbol", quoteHandler.GetQuote)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
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

// createAccount creates an account and returns its ID.
func (app *testApp) createAccount(t *testing.T, name string) string {
	t.Helper()
	rec := app.request("POST", "/api/v1/accounts", fmt.Sprintf(`{"name":%q}`, name))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create account failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	account := result["account"].(map[string]interface{})
	return account["id"].(string)
}

// recordActivity posts a ledger transaction and fails the test on any
// non-201 response.
func (app *testApp) recordActivity(t *testing.T, body string) map[string]interface{} {
	t.Helper()
	rec := app.request("POST", "/api/v1/activity", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("record activity failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)
}

// accountHoldings fetches an account's holdings as raw JSON maps.
func (app *testApp) accountHoldings(t *testing.T, accountID string) []interface{} {
	t.Helper()
	rec := app.request("GET", "/api/v1/accounts/"+accountID+"/holdings", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get holdings failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["holdings"].([]interface{})
}
