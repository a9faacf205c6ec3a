package services

import (
	"context"

	apperrors "pulserisk/internal/errors"
	"pulserisk/internal/logger"
	"pulserisk/internal/models"
	"pulserisk/internal/quote"
	"pulserisk/internal/store"
)

// quoteService wires the market-data provider to holdings.
type quoteService struct {
	provider quote.Provider
	stores   store.Stores
}

// NewQuoteService creates a new QuoteServicer. The provider may be nil when
// no market data API key is configured; lookups then fail with a
// configuration error instead of a provider error.
func NewQuoteService(provider quote.Provider, stores store.Stores) QuoteServicer {
	return &quoteService{provider: provider, stores: stores}
}

// Lookup fetches the current quote for a symbol. Option symbols quote by
// their underlying.
func (s *quoteService) Lookup(ctx context.Context, symbol string) (*quote.Quote, error) {
	if s.provider == nil {
		return nil, apperrors.ErrQuoteNotConfigured
	}
	return s.provider.Fetch(ctx, quote.BaseSymbol(symbol))
}

// RefreshPrices refreshes last/prevClose for every stock holding in the
// account. Per-symbol failures are reported without aborting the rest.
func (s *quoteService) RefreshPrices(ctx context.Context, accountID string) (*RefreshReport, error) {
	if s.provider == nil {
		return nil, apperrors.ErrQuoteNotConfigured
	}

	holdings, err := s.stores.Holdings().GetAll()
	if err != nil {
		return nil, err
	}

	report := &RefreshReport{}
	for i := range holdings {
		h := &holdings[i]
		if h.AccountID != accountID || h.AssetType != models.AssetTypeStock {
			continue
		}

		q, err := s.provider.Fetch(ctx, quote.BaseSymbol(h.Symbol))
		if err != nil {
			logger.Get().Warnw("price refresh failed", "symbol", h.Symbol, "error", err)
			report.Failed = append(report.Failed, h.Symbol)
			continue
		}

		h.Last = q.Last
		if q.PrevClose > 0 {
			h.PrevClose = q.PrevClose
		}
		if _, err := s.stores.Holdings().Upsert(h); err != nil {
			return nil, err
		}
		report.Updated++
	}
	return report, nil
}
