// Package seed populates an empty database with a small demo portfolio so
// the dashboard has something to show on first run.
package seed

import (
	"pulserisk/internal/logger"
	"pulserisk/internal/models"
	"pulserisk/internal/store"
)

// Run inserts the demo accounts, holdings, transactions, and tax lots.
// It is a no-op when any account already exists.
func Run(stores store.Stores) error {
	accounts, err := stores.Accounts().GetAll()
	if err != nil {
		return err
	}
	if len(accounts) > 0 {
		return nil
	}

	return stores.InTransaction(func(st store.Stores) error {
		brokerageID, err := st.Accounts().Insert(&models.Account{Name: "Schwab Brokerage"})
		if err != nil {
			return err
		}
		if _, err := st.Accounts().Insert(&models.Account{Name: "Schwab IRA"}); err != nil {
			return err
		}

		for _, h := range demoHoldings() {
			h.AccountID = brokerageID
			if _, err := st.Holdings().Insert(&h); err != nil {
				return err
			}
		}
		for _, tx := range demoTransactions() {
			tx.AccountID = brokerageID
			if _, err := st.Transactions().Insert(&tx); err != nil {
				return err
			}
		}
		for _, lot := range demoTaxLots() {
			lot.AccountID = brokerageID
			if _, err := st.TaxLots().Insert(&lot); err != nil {
				return err
			}
		}

		logger.Get().Infow("seeded demo portfolio",
			"holdings", len(demoHoldings()),
			"transactions", len(demoTransactions()),
			"tax_lots", len(demoTaxLots()),
		)
		return nil
	})
}

func demoHoldings() []models.Holding {
	return []models.Holding{
		{Symbol: "AAPL", AssetType: models.AssetTypeStock, Sector: "Technology", Qty: 120, AvgCost: 148.3, Last: 198.2, PrevClose: 196.5, Beta: 1.08, Multiplier: 1},
		{Symbol: "MSFT", AssetType: models.AssetTypeStock, Sector: "Technology", Qty: 88, AvgCost: 312.7, Last: 417.3, PrevClose: 420.1, Beta: 0.98, Multiplier: 1},
		{Symbol: "NVDA", AssetType: models.AssetTypeStock, Sector: "Technology", Qty: 54, AvgCost: 612.4, Last: 842.9, PrevClose: 826.2, Beta: 1.42, Multiplier: 1},
		{Symbol: "JPM", AssetType: models.AssetTypeStock, Sector: "Financials", Qty: 90, AvgCost: 141.2, Last: 191.8, PrevClose: 190.2, Beta: 1.12, Multiplier: 1},
		{Symbol: "XOM", AssetType: models.AssetTypeStock, Sector: "Energy", Qty: 150, AvgCost: 105.6, Last: 116.4, PrevClose: 117.9, Beta: 0.86, Multiplier: 1},
		{Symbol: "UNH", AssetType: models.AssetTypeStock, Sector: "Healthcare", Qty: 48, AvgCost: 505.9, Last: 537.6, PrevClose: 533.1, Beta: 0.74, Multiplier: 1},
		{Symbol: "AAPL240621C00190000", AssetType: models.AssetTypeOption, Sector: "Technology", Qty: 2, AvgCost: 7.6, Last: 9.2, PrevClose: 8.7, Beta: 1.35, Multiplier: 100, Underlying: "AAPL", OptionType: models.OptionTypeCall, Strike: 190, Expiry: "2026-06-21"},
	}
}

func demoTransactions() []models.Transaction {
	return []models.Transaction{
		{Date: "2026-02-17", Type: models.ActivityBuy, AssetType: models.AssetTypeStock, Symbol: "UNH", Qty: 24, Price: 537.6, Multiplier: 1, Amount: -12902.4},
		{Date: "2026-02-16", Type: models.ActivityDividend, AssetType: models.AssetTypeStock, Symbol: "XOM", Multiplier: 1, Amount: 141.75},
		{Date: "2026-02-14", Type: models.ActivitySell, AssetType: models.AssetTypeStock, Symbol: "MSFT", Qty: 20, Price: 411.1, Multiplier: 1, Amount: 8222.0},
		{Date: "2026-02-11", Type: models.ActivityFee, AssetType: models.AssetTypeCash, Symbol: "-", Fees: 18, Multiplier: 1, Amount: -18.0},
		{Date: "2026-02-09", Type: models.ActivityDeposit, AssetType: models.AssetTypeCash, Symbol: "-", Multiplier: 1, Amount: 6000.0},
		{Date: "2026-02-06", Type: models.ActivityDividend, AssetType: models.AssetTypeStock, Symbol: "JPM", Multiplier: 1, Amount: 94.5},
		{Date: "2026-02-02", Type: models.ActivityBuy, AssetType: models.AssetTypeOption, Symbol: "AAPL240621C00190000", Qty: 2, Price: 7.6, Fees: 1.25, Multiplier: 100, Underlying: "AAPL", OptionType: models.OptionTypeCall, Strike: 190, Expiry: "2026-06-21", Amount: -1521.25},
		{Date: "2026-01-23", Type: models.ActivityWithdrawal, AssetType: models.AssetTypeCash, Symbol: "-", Multiplier: 1, Amount: -1000.0},
	}
}

func demoTaxLots() []models.TaxLot {
	return []models.TaxLot{
		{LotID: "L-1007", Symbol: "AAPL", OpenDate: "2025-03-02", CloseDate: "2025-12-14", Qty: 45, BuyPrice: 171.8, SellPrice: 188.6, BuyFees: 3.2, SellFees: 3.5, BasisMethod: "FIFO"},
		{LotID: "L-1013", Symbol: "MSFT", OpenDate: "2025-04-11", CloseDate: "2025-10-07", Qty: 20, BuyPrice: 389.4, SellPrice: 411.1, BuyFees: 2.8, SellFees: 2.9, BasisMethod: "FIFO"},
		{LotID: "L-1019", Symbol: "JPM", OpenDate: "2025-01-28", CloseDate: "2025-09-23", Qty: 30, BuyPrice: 172.1, SellPrice: 186.4, BuyFees: 1.9, SellFees: 1.9, BasisMethod: "Specific ID", WashSaleAdj: -12.2},
	}
}
