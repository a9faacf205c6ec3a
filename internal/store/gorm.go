package store

import (
	"gorm.io/gorm"

	apperrors "pulserisk/internal/errors"
	"pulserisk/internal/models"
)

// gormStores implements Stores on a GORM database handle.
type gormStores struct {
	db *gorm.DB
}

// NewGormStores creates a Stores backed by the given GORM database.
func NewGormStores(db *gorm.DB) Stores {
	return &gormStores{db: db}
}

func (s *gormStores) Accounts() AccountStore         { return &accountStore{db: s.db} }
func (s *gormStores) Holdings() HoldingStore         { return &holdingStore{db: s.db} }
func (s *gormStores) Transactions() TransactionStore { return &transactionStore{db: s.db} }
func (s *gormStores) TaxLots() TaxLotStore           { return &taxLotStore{db: s.db} }

// InTransaction runs fn against stores bound to a database transaction.
func (s *gormStores) InTransaction(fn func(Stores) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStores{db: tx})
	})
}

type accountStore struct{ db *gorm.DB }

func (s *accountStore) GetAll() ([]models.Account, error) {
	var out []models.Account
	if err := s.db.Order("name").Find(&out).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return out, nil
}

func (s *accountStore) Insert(account *models.Account) (string, error) {
	if err := s.db.Create(account).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account.ID, nil
}

func (s *accountStore) Upsert(account *models.Account) (string, error) {
	if err := s.db.Save(account).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account.ID, nil
}

func (s *accountStore) DeleteByID(id string) error {
	if err := s.db.Delete(&models.Account{}, "id = ?", id).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

type holdingStore struct{ db *gorm.DB }

func (s *holdingStore) GetAll() ([]models.Holding, error) {
	var out []models.Holding
	if err := s.db.Find(&out).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return out, nil
}

func (s *holdingStore) Insert(holding *models.Holding) (string, error) {
	if err := s.db.Create(holding).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return holding.ID, nil
}

func (s *holdingStore) Upsert(holding *models.Holding) (string, error) {
	if err := s.db.Save(holding).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return holding.ID, nil
}

func (s *holdingStore) DeleteByID(id string) error {
	if err := s.db.Delete(&models.Holding{}, "id = ?", id).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

type transactionStore struct{ db *gorm.DB }

func (s *transactionStore) GetAll() ([]models.Transaction, error) {
	var out []models.Transaction
	if err := s.db.Order("created_at").Find(&out).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return out, nil
}

func (s *transactionStore) Insert(tx *models.Transaction) (string, error) {
	if err := s.db.Create(tx).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tx.ID, nil
}

func (s *transactionStore) Upsert(tx *models.Transaction) (string, error) {
	if err := s.db.Save(tx).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tx.ID, nil
}

func (s *transactionStore) DeleteByID(id string) error {
	if err := s.db.Delete(&models.Transaction{}, "id = ?", id).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

type taxLotStore struct{ db *gorm.DB }

func (s *taxLotStore) GetAll() ([]models.TaxLot, error) {
	var out []models.TaxLot
	if err := s.db.Find(&out).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return out, nil
}

func (s *taxLotStore) Insert(lot *models.TaxLot) (string, error) {
	if err := s.db.Create(lot).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return lot.ID, nil
}

func (s *taxLotStore) Upsert(lot *models.TaxLot) (string, error) {
	if err := s.db.Save(lot).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return lot.ID, nil
}

func (s *taxLotStore) DeleteByID(id string) error {
	if err := s.db.Delete(&models.TaxLot{}, "id = ?", id).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
