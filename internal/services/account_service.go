package services

import (
	apperrors "pulserisk/internal/errors"
	"pulserisk/internal/models"
	"pulserisk/internal/store"
)

// accountService handles account-related business logic.
type accountService struct {
	stores store.Stores
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(stores store.Stores) AccountServicer {
	return &accountService{stores: stores}
}

// CreateAccount creates a new portfolio account.
func (s *accountService) CreateAccount(name string) (*models.Account, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}

	account := &models.Account{Name: name}
	if _, err := s.stores.Accounts().Insert(account); err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccounts retrieves all accounts ordered by name.
func (s *accountService) GetAccounts() ([]models.Account, error) {
	return s.stores.Accounts().GetAll()
}

// GetAccountByID retrieves an account by ID.
func (s *accountService) GetAccountByID(id string) (*models.Account, error) {
	accounts, err := s.stores.Accounts().GetAll()
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].ID == id {
			return &accounts[i], nil
		}
	}
	return nil, apperrors.ErrAccountNotFound
}

// ClearAccountData deletes every holding and transaction belonging to the
// account, leaving the account itself in place. Deletions commit atomically.
func (s *accountService) ClearAccountData(id string) (*ClearReport, error) {
	if _, err := s.GetAccountByID(id); err != nil {
		return nil, err
	}

	report := &ClearReport{}
	err := s.stores.InTransaction(func(tx store.Stores) error {
		holdings, err := tx.Holdings().GetAll()
		if err != nil {
			return err
		}
		for _, h := range holdings {
			if h.AccountID != id {
				continue
			}
			if err := tx.Holdings().DeleteByID(h.ID); err != nil {
				return err
			}
			report.HoldingsDeleted++
		}

		transactions, err := tx.Transactions().GetAll()
		if err != nil {
			return err
		}
		for _, t := range transactions {
			if t.AccountID != id {
				continue
			}
			if err := tx.Transactions().DeleteByID(t.ID); err != nil {
				return err
			}
			report.TransactionsDeleted++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}
