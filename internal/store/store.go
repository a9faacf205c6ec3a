// Package store defines the keyed record-store contract the core depends on.
// Each collection supports the same four operations: get-all, insert, upsert,
// and delete-by-id. The core never touches a concrete storage technology
// directly; it is handed a Stores implementation at construction time.
package store

import "pulserisk/internal/models"

// AccountStore persists accounts.
type AccountStore interface {
	GetAll() ([]models.Account, error)
	Insert(account *models.Account) (string, error)
	Upsert(account *models.Account) (string, error)
	DeleteByID(id string) error
}

// HoldingStore persists holdings.
type HoldingStore interface {
	GetAll() ([]models.Holding, error)
	Insert(holding *models.Holding) (string, error)
	Upsert(holding *models.Holding) (string, error)
	DeleteByID(id string) error
}

// TransactionStore persists ledger transactions.
type TransactionStore interface {
	GetAll() ([]models.Transaction, error)
	Insert(tx *models.Transaction) (string, error)
	Upsert(tx *models.Transaction) (string, error)
	DeleteByID(id string) error
}

// TaxLotStore persists closed tax lots.
type TaxLotStore interface {
	GetAll() ([]models.TaxLot, error)
	Insert(lot *models.TaxLot) (string, error)
	Upsert(lot *models.TaxLot) (string, error)
	DeleteByID(id string) error
}

// Stores bundles the per-collection stores. InTransaction runs fn against a
// transactional view of the same stores: either every write inside fn
// commits, or none do. The ledger reconciler relies on this to keep its
// read-modify-write against holdings atomic.
type Stores interface {
	Accounts() AccountStore
	Holdings() HoldingStore
	Transactions() TransactionStore
	TaxLots() TaxLotStore
	InTransaction(fn func(Stores) error) error
}
