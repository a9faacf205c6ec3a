package services

import (
	"math"

	apperrors "pulserisk/internal/errors"
	"pulserisk/internal/logger"
	"pulserisk/internal/models"
	"pulserisk/internal/store"
)

// ledgerService maintains the transaction ledger and keeps holdings
// consistent with it.
type ledgerService struct {
	stores store.Stores
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(stores store.Stores) LedgerServicer {
	return &ledgerService{stores: stores}
}

// RecordActivity validates, persists, and reconciles one ledger transaction.
func (s *ledgerService) RecordActivity(tx *models.Transaction) (*RecordResult, error) {
	if err := validateTransaction(tx); err != nil {
		return nil, err
	}

	if tx.Multiplier == 0 {
		tx.Multiplier = 1
		if tx.AssetType == models.AssetTypeOption {
			tx.Multiplier = 100
		}
	}
	if tx.Amount == 0 {
		tx.Amount = deriveAmount(tx)
	}

	result := &RecordResult{Transaction: tx}
	err := s.stores.InTransaction(func(st store.Stores) error {
		if _, err := st.Transactions().Insert(tx); err != nil {
			return err
		}
		if !tx.MovesHoldings() {
			return nil
		}
		applied, err := reconcile(st, tx)
		if err != nil {
			return err
		}
		if !applied {
			result.SellWithoutHolding = true
			logger.Get().Warnw("sell without matching holding",
				"account_id", tx.AccountID,
				"symbol", tx.Symbol,
				"qty", tx.Qty,
			)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteActivity removes a ledger transaction. Holdings are not re-derived;
// the ledger is append-mostly and deletion is a correction tool.
func (s *ledgerService) DeleteActivity(id string) error {
	transactions, err := s.stores.Transactions().GetAll()
	if err != nil {
		return err
	}
	for _, t := range transactions {
		if t.ID == id {
			return s.stores.Transactions().DeleteByID(id)
		}
	}
	return apperrors.ErrActivityNotFound
}

// UpsertHolding is the manual entry path. The upsert key is
// (accountID, symbol, assetType): a match is overwritten in place.
func (s *ledgerService) UpsertHolding(h *models.Holding) (*models.Holding, error) {
	if err := validateHolding(h); err != nil {
		return nil, err
	}
	if h.Multiplier == 0 {
		h.Multiplier = 1
		if h.IsOption() {
			h.Multiplier = 100
		}
	}
	if h.Sector == "" {
		h.Sector = "Unknown"
	}
	if h.Beta == 0 {
		h.Beta = 1.0
	}
	if h.PrevClose == 0 {
		h.PrevClose = h.Last
	}

	holdings, err := s.stores.Holdings().GetAll()
	if err != nil {
		return nil, err
	}
	for _, existing := range holdings {
		if existing.AccountID == h.AccountID && existing.Symbol == h.Symbol && existing.AssetType == h.AssetType {
			h.Base = existing.Base
			if _, err := s.stores.Holdings().Upsert(h); err != nil {
				return nil, err
			}
			return h, nil
		}
	}

	if _, err := s.stores.Holdings().Insert(h); err != nil {
		return nil, err
	}
	return h, nil
}

// DeleteHolding removes a holding by ID.
func (s *ledgerService) DeleteHolding(id string) error {
	holdings, err := s.stores.Holdings().GetAll()
	if err != nil {
		return err
	}
	for _, h := range holdings {
		if h.ID == id {
			return s.stores.Holdings().DeleteByID(id)
		}
	}
	return apperrors.ErrHoldingNotFound
}

// GetAccountHoldings retrieves the holdings of one account.
func (s *ledgerService) GetAccountHoldings(accountID string) ([]models.Holding, error) {
	holdings, err := s.stores.Holdings().GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]models.Holding, 0, len(holdings))
	for _, h := range holdings {
		if h.AccountID == accountID {
			out = append(out, h)
		}
	}
	return out, nil
}

// reconcile applies a BUY/SELL transaction to the holdings store. It returns
// false when a SELL found no matching holding.
//
// BUY merges into the matching holding with a quantity-weighted average cost;
// SELL reduces quantity, deleting the holding once it reaches zero or below.
// An over-sell closes the position the same way an exact close does.
func reconcile(st store.Stores, tx *models.Transaction) (bool, error) {
	holdings, err := st.Holdings().GetAll()
	if err != nil {
		return false, err
	}

	var match *models.Holding
	for i := range holdings {
		if sameInstrument(&holdings[i], tx) {
			match = &holdings[i]
			break
		}
	}

	switch tx.Type {
	case models.ActivityBuy:
		if match == nil {
			h := &models.Holding{
				AccountID:  tx.AccountID,
				Symbol:     tx.Symbol,
				AssetType:  tx.AssetType,
				Sector:     "Unknown",
				Qty:        tx.Qty,
				AvgCost:    tx.Price,
				Last:       tx.Price,
				PrevClose:  tx.Price,
				Beta:       1.0,
				Multiplier: tx.Multiplier,
				Underlying: tx.Underlying,
				OptionType: tx.OptionType,
				Strike:     tx.Strike,
				Expiry:     tx.Expiry,
			}
			_, err := st.Holdings().Insert(h)
			return true, err
		}

		newQty := match.Qty + tx.Qty
		match.AvgCost = (match.Qty*match.AvgCost + tx.Qty*tx.Price) / newQty
		match.Qty = newQty
		match.PrevClose = match.Last
		if match.PrevClose == 0 {
			match.PrevClose = tx.Price
		}
		match.Last = tx.Price
		_, err := st.Holdings().Upsert(match)
		return true, err

	case models.ActivitySell:
		if match == nil {
			return false, nil
		}
		newQty := match.Qty - tx.Qty
		if newQty <= 0 {
			return true, st.Holdings().DeleteByID(match.ID)
		}
		match.Qty = newQty
		match.PrevClose = match.Last
		if match.PrevClose == 0 {
			match.PrevClose = tx.Price
		}
		match.Last = tx.Price
		_, err := st.Holdings().Upsert(match)
		return true, err
	}

	return true, nil
}

// sameInstrument reports whether a holding and transaction reference the same
// position key.
func sameInstrument(h *models.Holding, tx *models.Transaction) bool {
	return h.AccountID == tx.AccountID &&
		h.Symbol == tx.Symbol &&
		h.AssetType == tx.AssetType &&
		h.OptionType == tx.OptionType &&
		h.Strike == tx.Strike &&
		h.Expiry == tx.Expiry
}

// deriveAmount computes the signed cash effect for a transaction whose amount
// was not supplied.
func deriveAmount(tx *models.Transaction) float64 {
	gross := tx.Qty * tx.Price * tx.Multiplier
	switch tx.Type {
	case models.ActivityBuy:
		return -(gross + tx.Fees)
	case models.ActivitySell:
		return gross - tx.Fees
	case models.ActivityDividend, models.ActivityDeposit:
		return math.Abs(gross)
	case models.ActivityFee, models.ActivityWithdrawal:
		v := gross
		if v == 0 {
			v = tx.Fees
		}
		return -math.Abs(v)
	}
	return 0
}

// validateTransaction rejects invalid manual entries before any mutation.
func validateTransaction(tx *models.Transaction) error {
	if tx.AccountID == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "account_id is required")
	}
	if tx.Date == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	if tx.MovesHoldings() {
		if tx.Qty <= 0 {
			return apperrors.ErrInvalidQuantity
		}
		if tx.Price < 0 {
			return apperrors.ErrInvalidQuantity
		}
	}
	if tx.Fees < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "fees must not be negative")
	}
	if tx.AssetType == models.AssetTypeOption {
		if tx.Underlying == "" || tx.Expiry == "" || tx.Strike <= 0 {
			return apperrors.ErrInvalidOptionFields
		}
	}
	return nil
}

// validateHolding rejects invalid manual holding entries before any mutation.
func validateHolding(h *models.Holding) error {
	if h.AccountID == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "account_id is required")
	}
	if h.Symbol == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol is required")
	}
	if h.Qty <= 0 {
		return apperrors.ErrInvalidQuantity
	}
	if h.AvgCost < 0 || h.Last < 0 || h.PrevClose < 0 {
		return apperrors.ErrInvalidQuantity
	}
	if h.IsOption() {
		if h.Underlying == "" || h.Expiry == "" || h.Strike <= 0 {
			return apperrors.ErrInvalidOptionFields
		}
	}
	return nil
}
