package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	apperrors "pulserisk/internal/errors"
)

const finnhubBaseURL = "https://finnhub.io/api/v1/quote"

// finnhubResponse is Finnhub's quote payload. A symbol that Finnhub does not
// recognize comes back as all zeros rather than an error.
type finnhubResponse struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	ChangePercent float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PrevClose     float64 `json:"pc"`
}

// FinnhubProvider fetches quotes from the Finnhub quote endpoint.
type FinnhubProvider struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string // overridable for tests
}

// NewFinnhubProvider creates a new Finnhub quote provider.
func NewFinnhubProvider(apiKey string, httpClient *http.Client) *FinnhubProvider {
	return &FinnhubProvider{apiKey: apiKey, httpClient: httpClient, baseURL: finnhubBaseURL}
}

// Name returns the provider's display name.
func (p *FinnhubProvider) Name() string { return "Finnhub" }

// Fetch fetches the current quote for the given symbol.
func (p *FinnhubProvider) Fetch(ctx context.Context, symbol string) (*Quote, error) {
	endpoint := p.baseURL + "?symbol=" + url.QueryEscape(symbol) + "&token=" + url.QueryEscape(p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrQuoteProvider, fmt.Errorf("building request: %w", err))
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrQuoteProvider, fmt.Errorf("http request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Wrap(apperrors.ErrQuoteProvider, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var fhResp finnhubResponse
	if err := json.NewDecoder(resp.Body).Decode(&fhResp); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrQuoteProvider, fmt.Errorf("decoding response: %w", err))
	}
	if fhResp.Current == 0 && fhResp.PrevClose == 0 {
		return nil, apperrors.ErrQuoteNotFound
	}

	return &Quote{
		Symbol:        symbol,
		Last:          fhResp.Current,
		PrevClose:     fhResp.PrevClose,
		Change:        fhResp.Change,
		ChangePercent: fhResp.ChangePercent,
		High:          fhResp.High,
		Low:           fhResp.Low,
		Open:          fhResp.Open,
		FetchedAt:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// BaseSymbol extracts the quotable base ticker from a raw symbol. Option
// symbols in OCC form ("AAPL240621C00190000") quote by their leading
// underlying run of ticker characters.
func BaseSymbol(symbol string) string {
	for i := 0; i < len(symbol); i++ {
		c := symbol[i]
		if (c >= 'A' && c <= 'Z') || c == '.' {
			continue
		}
		return symbol[:i]
	}
	return symbol
}
