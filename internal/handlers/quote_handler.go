package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "pulserisk/internal/errors"
	"pulserisk/internal/services"
)

// QuoteHandler handles market-data requests.
type QuoteHandler struct {
	quoteService services.QuoteServicer
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quoteService services.QuoteServicer) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// GetQuote handles a single-symbol quote lookup
// @Summary     Look up a quote
// @Description Fetch the current market quote for a symbol; option symbols quote by their underlying
// @Tags        quotes
// @Produce     json
// @Param       symbol path string true "Ticker or OCC option symbol"
// @Success     200 {object} quote.Quote "Quote"
// @Failure     400 {object} ErrorResponse "Provider not configured"
// @Failure     404 {object} ErrorResponse "Symbol not found"
// @Failure     502 {object} ErrorResponse "Provider error"
// @Router      /quotes/{symbol} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if symbol == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol is required"))
		return
	}

	q, err := h.quoteService.Lookup(c.Request.Context(), symbol)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, q)
}

// RefreshPrices handles a bulk price refresh for an account
// @Summary     Refresh account prices
// @Description Refresh last/previous close for every stock holding in the account
// @Tags        quotes
// @Produce     json
// @Param       id path string true "Account ID"
// @Success     200 {object} services.RefreshReport "Refresh summary"
// @Failure     400 {object} ErrorResponse "Invalid account ID or provider not configured"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/{id}/refresh-prices [post]
func (h *QuoteHandler) RefreshPrices(c *gin.Context) {
	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.quoteService.RefreshPrices(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
