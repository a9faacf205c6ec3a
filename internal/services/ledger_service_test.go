package services

import (
	"math"
	"testing"

	"pulserisk/internal/models"
	"pulserisk/internal/store"
	"pulserisk/internal/testutil"
)

func buyTx(accountID, symbol string, qty, price float64) *models.Transaction {
	return &models.Transaction{
		AccountID: accountID,
		Date:      "2025-06-02",
		Type:      models.ActivityBuy,
		AssetType: models.AssetTypeStock,
		Symbol:    symbol,
		Qty:       qty,
		Price:     price,
	}
}

func sellTx(accountID, symbol string, qty, price float64) *models.Transaction {
	tx := buyTx(accountID, symbol, qty, price)
	tx.Type = models.ActivitySell
	return tx
}

func TestRecordActivity_Buy(t *testing.T) {
	t.Run("creates_holding_with_defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(store.NewGormStores(db))
		account := testutil.CreateTestAccount(t, db)

		_, err := svc.RecordActivity(buyTx(account.ID, "AAPL", 10, 150))
		testutil.AssertNoError(t, err)

		var h models.Holding
		testutil.AssertNoError(t, db.First(&h, "symbol = ?", "AAPL").Error)
		if h.Qty != 10 || h.AvgCost != 150 || h.Last != 150 || h.PrevClose != 150 {
			t.Errorf("unexpected holding %+v", h)
		}
		if h.Beta != 1.0 {
			t.Errorf("expected default beta 1.0, got %v", h.Beta)
		}
		if h.Sector != "Unknown" {
			t.Errorf("expected default sector Unknown, got %s", h.Sector)
		}
	})

	t.Run("weighted_average_cost", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(store.NewGormStores(db))
		account := testutil.CreateTestAccount(t, db)

		_, err := svc.RecordActivity(buyTx(account.ID, "AAPL", 10, 100))
		testutil.AssertNoError(t, err)
		_, err = svc.RecordActivity(buyTx(account.ID, "AAPL", 30, 200))
		testutil.AssertNoError(t, err)

		var h models.Holding
		testutil.AssertNoError(t, db.First(&h, "symbol = ?", "AAPL").Error)
		want := (10.0*100 + 30.0*200) / 40.0
		if h.Qty != 40 {
			t.Errorf("expected qty 40, got %v", h.Qty)
		}
		if h.AvgCost != want {
			t.Errorf("expected avg cost %v, got %v", want, h.AvgCost)
		}
		if h.PrevClose != 100 || h.Last != 200 {
			t.Errorf("expected prev close 100 / last 200, got %v/%v", h.PrevClose, h.Last)
		}
	})

	t.Run("derives_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(store.NewGormStores(db))
		account := testutil.CreateTestAccount(t, db)

		tx := buyTx(account.ID, "AAPL", 10, 150)
		tx.Fees = 1.25
		result, err := svc.RecordActivity(tx)
		testutil.AssertNoError(t, err)

		if result.Transaction.Amount != -1501.25 {
			t.Errorf("expected amount -1501.25, got %v", result.Transaction.Amount)
		}
	})

	t.Run("option_multiplier", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(store.NewGormStores(db))
		account := testutil.CreateTestAccount(t, db)

		tx := buyTx(account.ID, "AAPL240621C00190000", 2, 7.60)
		tx.AssetType = models.AssetTypeOption
		tx.Underlying = "AAPL"
		tx.OptionType = models.OptionTypeCall
		tx.Strike = 190
		tx.Expiry = "2024-06-21"
		tx.Fees = 1.25

		result, err := svc.RecordActivity(tx)
		testutil.AssertNoError(t, err)

		if result.Transaction.Multiplier != 100 {
			t.Errorf("expected multiplier 100, got %v", result.Transaction.Multiplier)
		}
		if math.Abs(result.Transaction.Amount-(-1521.25)) > 1e-9 {
			t.Errorf("expected amount -1521.25, got %v", result.Transaction.Amount)
		}
	})
}

func TestRecordActivity_Sell(t *testing.T) {
	t.Run("partial_sell_keeps_avg_cost", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(store.NewGormStores(db))
		account := testutil.CreateTestAccount(t, db)

		_, err := svc.RecordActivity(buyTx(account.ID, "AAPL", 10, 100))
		testutil.AssertNoError(t, err)
		_, err = svc.RecordActivity(sellTx(account.ID, "AAPL", 4, 120))
		testutil.AssertNoError(t, err)

		var h models.Holding
		testutil.AssertNoError(t, db.First(&h, "symbol = ?", "AAPL").Error)
		if h.Qty != 6 {
			t.Errorf("expected qty 6, got %v", h.Qty)
		}
		if h.AvgCost != 100 {
			t.Errorf("expected avg cost unchanged at 100, got %v", h.AvgCost)
		}
		if h.PrevClose != 100 || h.Last != 120 {
			t.Errorf("expected prev close 100 / last 120, got %v/%v", h.PrevClose, h.Last)
		}
	})

	t.Run("exact_sell_deletes_holding", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(store.NewGormStores(db))
		account := testutil.CreateTestAccount(t, db)

		_, err := svc.RecordActivity(buyTx(account.ID, "AAPL", 10, 100))
		testutil.AssertNoError(t, err)
		_, err = svc.RecordActivity(sellTx(account.ID, "AAPL", 10, 120))
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.Holding{}).Where("symbol = ?", "AAPL").Count(&count)
		if count != 0 {
			t.Errorf("expected holding deleted, found %d", count)
		}
	})

	t.Run("over_sell_closes_position", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(store.NewGormStores(db))
		account := testutil.CreateTestAccount(t, db)

		_, err := svc.RecordActivity(buyTx(account.ID, "AAPL", 10, 100))
		testutil.AssertNoError(t, err)
		_, err = svc.RecordActivity(sellTx(account.ID, "AAPL", 25, 120))
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.Holding{}).Where("symbol = ?", "AAPL").Count(&count)
		if count != 0 {
			t.Errorf("expected holding closed on over-sell, found %d", count)
		}
	})

	t.Run("sell_without_holding_is_flagged_noop", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(store.NewGormStores(db))
		account := testutil.CreateTestAccount(t, db)

		result, err := svc.RecordActivity(sellTx(account.ID, "AAPL", 5, 120))
		testutil.AssertNoError(t, err)

		if !result.SellWithoutHolding {
			t.Error("expected SellWithoutHolding flag")
		}
		// The transaction is still recorded.
		var count int64
		db.Model(&models.Transaction{}).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 transaction, got %d", count)
		}
	})

	t.Run("option_and_stock_positions_are_distinct", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(store.NewGormStores(db))
		account := testutil.CreateTestAccount(t, db)

		_, err := svc.RecordActivity(buyTx(account.ID, "AAPL", 10, 100))
		testutil.AssertNoError(t, err)

		opt := sellTx(account.ID, "AAPL", 1, 5)
		opt.AssetType = models.AssetTypeOption
		opt.Underlying = "AAPL"
		opt.OptionType = models.OptionTypePut
		opt.Strike = 95
		opt.Expiry = "2026-01-16"
		result, err := svc.RecordActivity(opt)
		testutil.AssertNoError(t, err)

		// The stock holding must not absorb the option sell.
		if !result.SellWithoutHolding {
			t.Error("expected option sell to miss the stock holding")
		}
		var h models.Holding
		testutil.AssertNoError(t, db.First(&h, "symbol = ?", "AAPL").Error)
		if h.Qty != 10 {
			t.Errorf("expected stock qty unchanged at 10, got %v", h.Qty)
		}
	})
}

func TestRecordActivity_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewLedgerService(store.NewGormStores(db))
	account := testutil.CreateTestAccount(t, db)

	t.Run("zero_quantity_buy", func(t *testing.T) {
		_, err := svc.RecordActivity(buyTx(account.ID, "AAPL", 0, 100))
		testutil.AssertAppError(t, err, "INVALID_QUANTITY")
	})

	t.Run("negative_price", func(t *testing.T) {
		_, err := svc.RecordActivity(buyTx(account.ID, "AAPL", 5, -1))
		testutil.AssertAppError(t, err, "INVALID_QUANTITY")
	})

	t.Run("option_without_fields", func(t *testing.T) {
		tx := buyTx(account.ID, "AAPL240621C00190000", 1, 7.60)
		tx.AssetType = models.AssetTypeOption
		_, err := svc.RecordActivity(tx)
		testutil.AssertAppError(t, err, "INVALID_OPTION_FIELDS")
	})

	t.Run("missing_account", func(t *testing.T) {
		_, err := svc.RecordActivity(buyTx("", "AAPL", 5, 100))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("no_partial_state_on_rejection", func(t *testing.T) {
		var count int64
		db.Model(&models.Transaction{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no transactions recorded, got %d", count)
		}
	})
}

func TestUpsertHolding(t *testing.T) {
	t.Run("inserts_then_overwrites_by_key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(store.NewGormStores(db))
		account := testutil.CreateTestAccount(t, db)

		first, err := svc.UpsertHolding(&models.Holding{
			AccountID: account.ID,
			Symbol:    "NVDA",
			AssetType: models.AssetTypeStock,
			Qty:       5,
			AvgCost:   400,
			Last:      450,
		})
		testutil.AssertNoError(t, err)

		second, err := svc.UpsertHolding(&models.Holding{
			AccountID: account.ID,
			Symbol:    "NVDA",
			AssetType: models.AssetTypeStock,
			Qty:       8,
			AvgCost:   420,
			Last:      460,
		})
		testutil.AssertNoError(t, err)

		if second.ID != first.ID {
			t.Errorf("expected overwrite to keep ID %s, got %s", first.ID, second.ID)
		}
		var count int64
		db.Model(&models.Holding{}).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 holding, got %d", count)
		}
		var h models.Holding
		testutil.AssertNoError(t, db.First(&h).Error)
		if h.Qty != 8 || h.AvgCost != 420 {
			t.Errorf("expected overwritten values, got %+v", h)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(store.NewGormStores(db))
		account := testutil.CreateTestAccount(t, db)

		h, err := svc.UpsertHolding(&models.Holding{
			AccountID: account.ID,
			Symbol:    "VTI",
			AssetType: models.AssetTypeStock,
			Qty:       3,
			AvgCost:   250,
			Last:      260,
		})
		testutil.AssertNoError(t, err)

		if h.Sector != "Unknown" || h.Beta != 1.0 || h.Multiplier != 1 {
			t.Errorf("unexpected defaults %+v", h)
		}
		if h.PrevClose != 260 {
			t.Errorf("expected prev close backfilled from last, got %v", h.PrevClose)
		}
	})

	t.Run("rejects_invalid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(store.NewGormStores(db))
		account := testutil.CreateTestAccount(t, db)

		_, err := svc.UpsertHolding(&models.Holding{AccountID: account.ID, Symbol: "VTI", Qty: 0})
		testutil.AssertAppError(t, err, "INVALID_QUANTITY")

		_, err = svc.UpsertHolding(&models.Holding{
			AccountID: account.ID,
			Symbol:    "AAPL240621C00190000",
			AssetType: models.AssetTypeOption,
			Qty:       1,
			Last:      7.6,
		})
		testutil.AssertAppError(t, err, "INVALID_OPTION_FIELDS")
	})
}

func TestDeleteHolding(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewLedgerService(store.NewGormStores(db))
	account := testutil.CreateTestAccount(t, db)

	h := testutil.CreateTestHolding(t, db, account.ID, "AAPL", 10, 150)
	testutil.AssertNoError(t, svc.DeleteHolding(h.ID))
	testutil.AssertAppError(t, svc.DeleteHolding(h.ID), "HOLDING_NOT_FOUND")
}

func TestDeleteActivity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewLedgerService(store.NewGormStores(db))
	account := testutil.CreateTestAccount(t, db)

	tx := testutil.CreateTestTransaction(t, db, account.ID, models.ActivityDeposit, "2025-06-02", 500)
	testutil.AssertNoError(t, svc.DeleteActivity(tx.ID))
	testutil.AssertAppError(t, svc.DeleteActivity(tx.ID), "ACTIVITY_NOT_FOUND")
}
