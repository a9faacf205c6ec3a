package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "pulserisk/internal/errors"
	"pulserisk/internal/models"
	"pulserisk/internal/services"
)

// HoldingHandler handles manual holding entry requests.
type HoldingHandler struct {
	ledgerService services.LedgerServicer
}

// NewHoldingHandler creates a new HoldingHandler.
func NewHoldingHandler(ledgerService services.LedgerServicer) *HoldingHandler {
	return &HoldingHandler{ledgerService: ledgerService}
}

// HoldingRequest represents the request payload for creating or replacing a
// holding manually.
type HoldingRequest struct {
	AccountID  string  `json:"account_id" binding:"required,uuid"`
	Symbol     string  `json:"symbol" binding:"required,min=1,max=30"`
	AssetType  string  `json:"asset_type" binding:"omitempty,asset_type"`
	Sector     string  `json:"sector" binding:"max=50"`
	Qty        float64 `json:"qty" binding:"required,gt=0"`
	AvgCost    float64 `json:"avg_cost" binding:"gte=0"`
	Last       float64 `json:"last" binding:"gte=0"`
	PrevClose  float64 `json:"prev_close" binding:"gte=0"`
	Beta       float64 `json:"beta"`
	Multiplier float64 `json:"multiplier" binding:"omitempty,gte=1"`
	Underlying string  `json:"underlying" binding:"max=10"`
	OptionType string  `json:"option_type" binding:"omitempty,option_type"`
	Strike     float64 `json:"strike" binding:"gte=0"`
	Expiry     string  `json:"expiry" binding:"omitempty,iso_date"`
}

func (r *HoldingRequest) toModel() *models.Holding {
	assetType := models.AssetTypeStock
	if r.AssetType != "" {
		assetType = models.AssetType(r.AssetType)
	}
	return &models.Holding{
		AccountID:  r.AccountID,
		Symbol:     r.Symbol,
		AssetType:  assetType,
		Sector:     r.Sector,
		Qty:        r.Qty,
		AvgCost:    r.AvgCost,
		Last:       r.Last,
		PrevClose:  r.PrevClose,
		Beta:       r.Beta,
		Multiplier: r.Multiplier,
		Underlying: r.Underlying,
		OptionType: models.OptionType(r.OptionType),
		Strike:     r.Strike,
		Expiry:     r.Expiry,
	}
}

// UpsertHolding handles manual holding creation and replacement
// @Summary     Upsert a holding
// @Description Create a holding, or overwrite the one sharing its (account, symbol, asset type) key
// @Tags        holdings
// @Accept      json
// @Produce     json
// @Param       request body HoldingRequest true "Holding details"
// @Success     200 {object} models.Holding "Holding"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /holdings [post]
func (h *HoldingHandler) UpsertHolding(c *gin.Context) {
	var req HoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	holding, err := h.ledgerService.UpsertHolding(req.toModel())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"holding": holding})
}

// DeleteHolding handles holding deletion
// @Summary     Delete a holding
// @Tags        holdings
// @Produce     json
// @Param       id path string true "Holding ID"
// @Success     204 "Deleted"
// @Failure     400 {object} ErrorResponse "Invalid holding ID"
// @Failure     404 {object} ErrorResponse "Holding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /holdings/{id} [delete]
func (h *HoldingHandler) DeleteHolding(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.ledgerService.DeleteHolding(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetAccountHoldings handles listing one account's holdings
// @Summary     List account holdings
// @Tags        holdings
// @Produce     json
// @Param       id path string true "Account ID"
// @Success     200 {array} models.Holding "Holdings"
// @Failure     400 {object} ErrorResponse "Invalid account ID"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/{id}/holdings [get]
func (h *HoldingHandler) GetAccountHoldings(c *gin.Context) {
	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	holdings, err := h.ledgerService.GetAccountHoldings(accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"holdings": holdings})
}
