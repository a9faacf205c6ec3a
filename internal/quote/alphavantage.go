package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "pulserisk/internal/errors"
)

const alphaVantageBaseURL = "https://www.alphavantage.co/query"

// alphaVantageResponse is the GLOBAL_QUOTE response envelope. Alpha Vantage
// keys every field with a numbered prefix and returns all values as strings.
type alphaVantageResponse struct {
	GlobalQuote struct {
		Symbol        string `json:"01. symbol"`
		Open          string `json:"02. open"`
		High          string `json:"03. high"`
		Low           string `json:"04. low"`
		Price         string `json:"05. price"`
		PrevClose     string `json:"08. previous close"`
		Change        string `json:"09. change"`
		ChangePercent string `json:"10. change percent"`
	} `json:"Global Quote"`
	Note         string `json:"Note"`
	ErrorMessage string `json:"Error Message"`
}

// AlphaVantageProvider fetches quotes from the Alpha Vantage GLOBAL_QUOTE endpoint.
type AlphaVantageProvider struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string // overridable for tests
}

// NewAlphaVantageProvider creates a new Alpha Vantage quote provider.
func NewAlphaVantageProvider(apiKey string, httpClient *http.Client) *AlphaVantageProvider {
	return &AlphaVantageProvider{apiKey: apiKey, httpClient: httpClient, baseURL: alphaVantageBaseURL}
}

// Name returns the provider's display name.
func (p *AlphaVantageProvider) Name() string { return "Alpha Vantage" }

// Fetch fetches the current quote for the given symbol.
func (p *AlphaVantageProvider) Fetch(ctx context.Context, symbol string) (*Quote, error) {
	endpoint := p.baseURL + "?function=GLOBAL_QUOTE&symbol=" + url.QueryEscape(symbol) + "&apikey=" + url.QueryEscape(p.apiKey)

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

	var avResp alphaVantageResponse
	if err := json.NewDecoder(resp.Body).Decode(&avResp); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrQuoteProvider, fmt.Errorf("decoding response: %w", err))
	}
	if avResp.ErrorMessage != "" {
		return nil, apperrors.Wrap(apperrors.ErrQuoteProvider, fmt.Errorf("provider error: %s", avResp.ErrorMessage))
	}
	if avResp.Note != "" {
		return nil, apperrors.Wrap(apperrors.ErrQuoteProvider, fmt.Errorf("rate limited: %s", avResp.Note))
	}
	if avResp.GlobalQuote.Price == "" {
		return nil, apperrors.ErrQuoteNotFound
	}

	last := parseAlphaFloat(avResp.GlobalQuote.Price)
	prevClose := parseAlphaFloat(avResp.GlobalQuote.PrevClose)
	return &Quote{
		Symbol:        symbol,
		Last:          last,
		PrevClose:     prevClose,
		Change:        parseAlphaFloat(avResp.GlobalQuote.Change),
		ChangePercent: parseAlphaFloat(strings.TrimSuffix(avResp.GlobalQuote.ChangePercent, "%")),
		High:          parseAlphaFloat(avResp.GlobalQuote.High),
		Low:           parseAlphaFloat(avResp.GlobalQuote.Low),
		Open:          parseAlphaFloat(avResp.GlobalQuote.Open),
		FetchedAt:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// parseAlphaFloat parses an Alpha Vantage string value, returning 0 for
// missing or malformed fields rather than failing the whole quote.
func parseAlphaFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
