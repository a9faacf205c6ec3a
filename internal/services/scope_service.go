package services

import (
	"fmt"
	"sort"

	apperrors "pulserisk/internal/errors"
	"pulserisk/internal/models"
	"pulserisk/internal/pagination"
	"pulserisk/internal/store"
)

// scopeService selects and merges per-account holdings and transactions into
// a single view.
type scopeService struct {
	stores store.Stores
}

// NewScopeService creates a new ScopeServicer.
func NewScopeService(stores store.Stores) ScopeServicer {
	return &scopeService{stores: stores}
}

// Holdings returns the holdings in scope. COMBINED merges positions sharing
// an instrument key across accounts.
func (s *scopeService) Holdings(scope Scope, accountID string) ([]models.Holding, error) {
	holdings, err := s.stores.Holdings().GetAll()
	if err != nil {
		return nil, err
	}

	if scope == ScopeSingle {
		if accountID == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account_id is required for SINGLE scope")
		}
		out := make([]models.Holding, 0, len(holdings))
		for _, h := range holdings {
			if h.AccountID == accountID {
				out = append(out, h)
			}
		}
		return out, nil
	}

	return CombineHoldings(holdings), nil
}

// Transactions returns the transactions in scope, each annotated with its
// account name, sorted by date descending. The sort is stable so same-day
// entries keep insertion order.
func (s *scopeService) Transactions(scope Scope, accountID string) ([]models.Transaction, error) {
	transactions, err := s.stores.Transactions().GetAll()
	if err != nil {
		return nil, err
	}
	names, err := s.accountNames()
	if err != nil {
		return nil, err
	}

	out := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if scope == ScopeSingle && t.AccountID != accountID {
			continue
		}
		t.AccountName = names[t.AccountID]
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out, nil
}

// TransactionsPage returns one page of the scoped, date-descending
// transaction list.
func (s *scopeService) TransactionsPage(scope Scope, accountID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	all, err := s.Transactions(scope, accountID)
	if err != nil {
		return nil, err
	}

	start := page.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + page.PageSize
	if end > len(all) {
		end = len(all)
	}

	result := pagination.NewPageResponse(all[start:end], page.Page, page.PageSize, int64(len(all)))
	return &result, nil
}

// TaxLots returns the closed lots in scope.
func (s *scopeService) TaxLots(scope Scope, accountID string) ([]models.TaxLot, error) {
	lots, err := s.stores.TaxLots().GetAll()
	if err != nil {
		return nil, err
	}
	if scope == ScopeCombined {
		return lots, nil
	}
	out := make([]models.TaxLot, 0, len(lots))
	for _, l := range lots {
		if l.AccountID == accountID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *scopeService) accountNames() (map[string]string, error) {
	accounts, err := s.stores.Accounts().GetAll()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = a.Name
	}
	return names, nil
}

// CombineHoldings merges holdings that share an instrument key across
// accounts. Numeric fields are quantity-weighted; a combined quantity of zero
// falls back to divisor 1. The result order follows first appearance, which
// makes the merge invariant to input ordering up to that ordering rule.
func CombineHoldings(holdings []models.Holding) []models.Holding {
	type bucket struct {
		holding  models.Holding
		qty      float64
		avgCost  float64
		last     float64
		prev     float64
		beta     float64
	}

	var order []string
	buckets := make(map[string]*bucket)

	for _, h := range holdings {
		key := fmt.Sprintf("%s|%s|%s|%g|%s", h.Symbol, h.AssetType, h.OptionType, h.Strike, h.Expiry)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{holding: h}
			b.holding.AccountID = ""
			buckets[key] = b
			order = append(order, key)
		}
		b.qty += h.Qty
		b.avgCost += h.AvgCost * h.Qty
		b.last += h.Last * h.Qty
		b.prev += h.PrevClose * h.Qty
		b.beta += h.Beta * h.Qty
	}

	out := make([]models.Holding, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		denom := b.qty
		if denom == 0 {
			denom = 1
		}
		merged := b.holding
		merged.Qty = b.qty
		merged.AvgCost = b.avgCost / denom
		merged.Last = b.last / denom
		merged.PrevClose = b.prev / denom
		merged.Beta = b.beta / denom
		out = append(out, merged)
	}
	return out
}
