// Package quote defines the interface for fetching market quotes from external data sources.
package quote

import (
	"context"
	"net/http"
	"time"

	apperrors "pulserisk/internal/errors"
)

// Quote represents a fetched market quote for a symbol.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Last          float64 `json:"last"`
	PrevClose     float64 `json:"prev_close"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	FetchedAt     string  `json:"fetched_at"`
}

// Provider fetches a current market quote for a single symbol.
type Provider interface {
	// Name returns the provider's display name (e.g., "Alpha Vantage", "Finnhub").
	Name() string

	// Fetch fetches the current quote for the given symbol.
	Fetch(ctx context.Context, symbol string) (*Quote, error)
}

// New constructs the provider selected by name. The API key is required and
// bound at construction; a missing key is a configuration error, not a
// per-request failure.
func New(name, apiKey string, httpClient *http.Client) (Provider, error) {
	if apiKey == "" {
		return nil, apperrors.ErrQuoteNotConfigured
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	switch name {
	case "alphavantage":
		return NewAlphaVantageProvider(apiKey, httpClient), nil
	case "finnhub":
		return NewFinnhubProvider(apiKey, httpClient), nil
	default:
		return nil, apperrors.WithMessage(apperrors.ErrQuoteNotConfigured, "unknown market data provider: "+name)
	}
}
