package services

import (
	"context"

	"pulserisk/internal/brokerage"
	"pulserisk/internal/models"
	"pulserisk/internal/pagination"
	"pulserisk/internal/quote"
)

// Scope selects which accounts a view covers.
type Scope string

const (
	// ScopeSingle views one account.
	ScopeSingle Scope = "SINGLE"
	// ScopeCombined merges every account into one view.
	ScopeCombined Scope = "COMBINED"
)

// ClearReport summarizes an account data wipe.
type ClearReport struct {
	HoldingsDeleted     int `json:"holdings_deleted"`
	TransactionsDeleted int `json:"transactions_deleted"`
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(name string) (*models.Account, error)
	GetAccounts() ([]models.Account, error)
	GetAccountByID(id string) (*models.Account, error)
	ClearAccountData(id string) (*ClearReport, error)
}

// RecordResult is the outcome of recording one ledger transaction.
type RecordResult struct {
	Transaction *models.Transaction `json:"transaction"`
	// SellWithoutHolding is true when a SELL matched no holding: the
	// transaction is recorded but no position moved.
	SellWithoutHolding bool `json:"sell_without_holding,omitempty"`
}

// LedgerServicer defines the contract for the transaction ledger and the
// holdings it reconciles.
type LedgerServicer interface {
	// RecordActivity validates a transaction, derives its signed cash amount
	// when absent, persists it, and reconciles holdings for BUY/SELL. The
	// insert and the holdings mutation commit together or not at all.
	RecordActivity(tx *models.Transaction) (*RecordResult, error)
	DeleteActivity(id string) error

	// UpsertHolding is the manual entry path: validated up front, keyed by
	// (accountID, symbol, assetType). A matching holding is overwritten in
	// place, otherwise a new one is inserted.
	UpsertHolding(h *models.Holding) (*models.Holding, error)
	DeleteHolding(id string) error
	GetAccountHoldings(accountID string) ([]models.Holding, error)
}

// ScopeServicer defines the contract for selecting and merging per-account
// holdings and transactions into a single view.
type ScopeServicer interface {
	Holdings(scope Scope, accountID string) ([]models.Holding, error)
	Transactions(scope Scope, accountID string) ([]models.Transaction, error)
	TransactionsPage(scope Scope, accountID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	TaxLots(scope Scope, accountID string) ([]models.TaxLot, error)
}

// AnalyticsServicer defines the contract for the dashboard view computation.
type AnalyticsServicer interface {
	Dashboard(scope Scope, accountID string, lookback int, benchmark string) (*ViewState, error)
}

// ImportReport summarizes a bulk CSV import. Warnings carry every lenient
// default the normalizer applied plus reconciliation no-ops.
type ImportReport struct {
	Imported int                 `json:"imported"`
	Skipped  int                 `json:"skipped"`
	Warnings []brokerage.RowNote `json:"warnings"`
}

// ImportServicer defines the contract for bulk CSV ingestion.
type ImportServicer interface {
	ImportCSV(accountID, csvText string) (*ImportReport, error)
}

// RefreshReport summarizes a bulk price refresh across an account's holdings.
type RefreshReport struct {
	Updated int      `json:"updated"`
	Failed  []string `json:"failed,omitempty"`
}

// QuoteServicer defines the contract for market-data lookups and bulk price
// refreshes.
type QuoteServicer interface {
	Lookup(ctx context.Context, symbol string) (*quote.Quote, error)
	RefreshPrices(ctx context.Context, accountID string) (*RefreshReport, error)
}
