package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"pulserisk/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestAccount creates an account with a unique name.
func CreateTestAccount(t *testing.T, db *gorm.DB) *models.Account {
	t.Helper()
	return CreateTestAccountWithName(t, db, fmt.Sprintf("Test Account %d", nextID()))
}

// CreateTestAccountWithName creates an account with the given name.
func CreateTestAccountWithName(t *testing.T, db *gorm.DB, name string) *models.Account {
	t.Helper()

	account := &models.Account{Name: name}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestHolding creates a stock holding in the given account.
func CreateTestHolding(t *testing.T, db *gorm.DB, accountID, symbol string, qty, avgCost float64) *models.Holding {
	t.Helper()

	holding := &models.Holding{
		AccountID:  accountID,
		Symbol:     symbol,
		AssetType:  models.AssetTypeStock,
		Sector:     "Unknown",
		Qty:        qty,
		AvgCost:    avgCost,
		Last:       avgCost,
		PrevClose:  avgCost,
		Beta:       1.0,
		Multiplier: 1,
	}
	if err := db.Create(holding).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}
	return holding
}

// CreateTestTransaction creates a ledger transaction of the given type.
func CreateTestTransaction(t *testing.T, db *gorm.DB, accountID string, txType models.ActivityType, date string, amount float64) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		AccountID:  accountID,
		Date:       date,
		Type:       txType,
		AssetType:  models.AssetTypeCash,
		Symbol:     "-",
		Multiplier: 1,
		Amount:     amount,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestTaxLot creates a closed tax lot for the given symbol.
func CreateTestTaxLot(t *testing.T, db *gorm.DB, accountID, symbol string, qty, buyPrice, sellPrice float64) *models.TaxLot {
	t.Helper()

	lot := &models.TaxLot{
		AccountID:   accountID,
		LotID:       fmt.Sprintf("LOT-%d", nextID()),
		Symbol:      symbol,
		OpenDate:    "2025-01-02",
		CloseDate:   "2025-06-02",
		Qty:         qty,
		BuyPrice:    buyPrice,
		SellPrice:   sellPrice,
		BasisMethod: "FIFO",
	}
	if err := db.Create(lot).Error; err != nil {
		t.Fatalf("failed to create test tax lot: %v", err)
	}
	return lot
}
