package quote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "pulserisk/internal/errors"
)

// newAlphaMockServer serves canned GLOBAL_QUOTE responses per symbol.
// Symbols not in quotes get an empty Global Quote block.
func newAlphaMockServer(quotes map[string]map[string]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		symbol := r.URL.Query().Get("symbol")
		w.Header().Set("Content-Type", "application/json")

		fields, ok := quotes[symbol]
		if !ok {
			_ = json.NewEncoder(w).Encode(map[string]any{"Global Quote": map[string]string{}})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"Global Quote": fields})
	}))
}

func TestNew(t *testing.T) {
	t.Run("missing_api_key", func(t *testing.T) {
		_, err := New("alphavantage", "", nil)
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrQuoteNotConfigured.Code {
			t.Fatalf("expected QUOTE_NOT_CONFIGURED, got %v", err)
		}
	})

	t.Run("unknown_provider", func(t *testing.T) {
		_, err := New("bloomberg", "key", nil)
		if err == nil {
			t.Fatal("expected error for unknown provider")
		}
	})

	t.Run("selects_by_name", func(t *testing.T) {
		p, err := New("finnhub", "key", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Name() != "Finnhub" {
			t.Errorf("got provider %q, want Finnhub", p.Name())
		}
	})
}

func TestAlphaVantageProvider_Fetch(t *testing.T) {
	server := newAlphaMockServer(map[string]map[string]string{
		"AAPL": {
			"01. symbol":         "AAPL",
			"02. open":           "187.00",
			"03. high":           "190.12",
			"04. low":            "186.40",
			"05. price":          "189.30",
			"08. previous close": "187.85",
			"09. change":         "1.45",
			"10. change percent": "0.7719%",
		},
	})
	defer server.Close()

	p := &AlphaVantageProvider{apiKey: "test", httpClient: server.Client(), baseURL: server.URL}

	t.Run("maps_fields", func(t *testing.T) {
		q, err := p.Fetch(context.Background(), "AAPL")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Last != 189.30 {
			t.Errorf("got last %v, want 189.30", q.Last)
		}
		if q.PrevClose != 187.85 {
			t.Errorf("got prev close %v, want 187.85", q.PrevClose)
		}
		if q.Change != 1.45 {
			t.Errorf("got change %v, want 1.45", q.Change)
		}
		if q.ChangePercent != 0.7719 {
			t.Errorf("got change percent %v, want 0.7719", q.ChangePercent)
		}
		if q.High != 190.12 || q.Low != 186.40 {
			t.Errorf("got high/low %v/%v, want 190.12/186.40", q.High, q.Low)
		}
	})

	t.Run("unknown_symbol", func(t *testing.T) {
		_, err := p.Fetch(context.Background(), "FAKESYM")
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrQuoteNotFound.Code {
			t.Fatalf("expected QUOTE_NOT_FOUND, got %v", err)
		}
	})
}

func TestAlphaVantageProvider_Fetch_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"Note": "Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day.",
		})
	}))
	defer server.Close()

	p := &AlphaVantageProvider{apiKey: "test", httpClient: server.Client(), baseURL: server.URL}
	_, err := p.Fetch(context.Background(), "AAPL")
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrQuoteProvider.Code {
		t.Fatalf("expected QUOTE_PROVIDER_ERROR, got %v", err)
	}
}

func TestFinnhubProvider_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("symbol") {
		case "MSFT":
			_ = json.NewEncoder(w).Encode(finnhubResponse{
				Current: 420.55, PrevClose: 415.10, Change: 5.45, ChangePercent: 1.31,
				High: 422.00, Low: 414.80, Open: 416.00,
			})
		default:
			// Finnhub returns all zeros for unknown symbols.
			_ = json.NewEncoder(w).Encode(finnhubResponse{})
		}
	}))
	defer server.Close()

	p := &FinnhubProvider{apiKey: "test", httpClient: server.Client(), baseURL: server.URL}

	t.Run("maps_fields", func(t *testing.T) {
		q, err := p.Fetch(context.Background(), "MSFT")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Last != 420.55 {
			t.Errorf("got last %v, want 420.55", q.Last)
		}
		if q.PrevClose != 415.10 {
			t.Errorf("got prev close %v, want 415.10", q.PrevClose)
		}
		if q.ChangePercent != 1.31 {
			t.Errorf("got change percent %v, want 1.31", q.ChangePercent)
		}
	})

	t.Run("zero_quote_means_not_found", func(t *testing.T) {
		_, err := p.Fetch(context.Background(), "FAKESYM")
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrQuoteNotFound.Code {
			t.Fatalf("expected QUOTE_NOT_FOUND, got %v", err)
		}
	})
}

func TestFinnhubProvider_Fetch_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	p := &FinnhubProvider{apiKey: "test", httpClient: server.Client(), baseURL: server.URL}
	_, err := p.Fetch(context.Background(), "AAPL")
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrQuoteProvider.Code {
		t.Fatalf("expected QUOTE_PROVIDER_ERROR, got %v", err)
	}
}

func TestBaseSymbol(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"AAPL", "AAPL"},
		{"BRK.B", "BRK.B"},
		{"AAPL240621C00190000", "AAPL"},
		{"SPY241220P00480500", "SPY"},
	}
	for _, tc := range cases {
		if got := BaseSymbol(tc.in); got != tc.want {
			t.Errorf("BaseSymbol(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
