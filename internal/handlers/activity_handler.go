package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "pulserisk/internal/errors"
	"pulserisk/internal/models"
	"pulserisk/internal/pagination"
	"pulserisk/internal/services"
)

// ActivityHandler handles ledger transaction requests.
type ActivityHandler struct {
	ledgerService services.LedgerServicer
	scopeService  services.ScopeServicer
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(ledgerService services.LedgerServicer, scopeService services.ScopeServicer) *ActivityHandler {
	return &ActivityHandler{ledgerService: ledgerService, scopeService: scopeService}
}

// CreateActivityRequest represents the request payload for recording a ledger
// transaction. Amount is optional: when zero it is derived from the
// quantity, price, multiplier, and fees.
type CreateActivityRequest struct {
	AccountID  string  `json:"account_id" binding:"required,uuid"`
	Date       string  `json:"date" binding:"required,iso_date"`
	Type       string  `json:"type" binding:"required,activity_type"`
	AssetType  string  `json:"asset_type" binding:"omitempty,asset_type"`
	Symbol     string  `json:"symbol" binding:"max=30"`
	Qty        float64 `json:"qty" binding:"gte=0"`
	Price      float64 `json:"price" binding:"gte=0"`
	Fees       float64 `json:"fees" binding:"gte=0"`
	Multiplier float64 `json:"multiplier" binding:"omitempty,gte=1"`
	Amount     float64 `json:"amount"`
	Underlying string  `json:"underlying" binding:"max=10"`
	OptionType string  `json:"option_type" binding:"omitempty,option_type"`
	Strike     float64 `json:"strike" binding:"gte=0"`
	Expiry     string  `json:"expiry" binding:"omitempty,iso_date"`
}

// ListActivityRequest represents the query parameters for listing activity.
type ListActivityRequest struct {
	Scope     string `form:"scope" binding:"omitempty,view_scope"`
	AccountID string `form:"account_id" binding:"omitempty,uuid"`
	pagination.PageRequest
}

// CreateActivity handles recording a new ledger transaction
// @Summary     Record activity
// @Description Record a ledger transaction and reconcile holdings for BUY/SELL
// @Tags        activity
// @Accept      json
// @Produce     json
// @Param       request body CreateActivityRequest true "Transaction details"
// @Success     201 {object} services.RecordResult "Recorded transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /activity [post]
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	var req CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	assetType := models.AssetTypeStock
	if req.AssetType != "" {
		assetType = models.AssetType(req.AssetType)
	}
	symbol := req.Symbol
	if symbol == "" {
		symbol = "-"
	}

	result, err := h.ledgerService.RecordActivity(&models.Transaction{
		AccountID:  req.AccountID,
		Date:       req.Date,
		Type:       models.ActivityType(req.Type),
		AssetType:  assetType,
		Symbol:     symbol,
		Qty:        req.Qty,
		Price:      req.Price,
		Fees:       req.Fees,
		Multiplier: req.Multiplier,
		Amount:     req.Amount,
		Underlying: req.Underlying,
		OptionType: models.OptionType(req.OptionType),
		Strike:     req.Strike,
		Expiry:     req.Expiry,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// ListActivity handles the scoped, paginated activity listing
// @Summary     List activity
// @Description Get transactions for a scope, newest first
// @Tags        activity
// @Produce     json
// @Param       scope      query string false "SINGLE or COMBINED (default COMBINED)"
// @Param       account_id query string false "Account ID, required for SINGLE scope"
// @Param       page       query int    false "Page number (default 1)"
// @Param       page_size  query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /activity [get]
func (h *ActivityHandler) ListActivity(c *gin.Context) {
	var req ListActivityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	scope := services.ScopeCombined
	if req.Scope != "" {
		scope = services.Scope(req.Scope)
	}

	result, err := h.scopeService.TransactionsPage(scope, req.AccountID, req.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteActivity handles ledger transaction deletion
// @Summary     Delete activity
// @Tags        activity
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     204 "Deleted"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /activity/{id} [delete]
func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.ledgerService.DeleteActivity(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
