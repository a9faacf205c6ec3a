package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "pulserisk/internal/errors"
	"pulserisk/internal/services"
)

// ImportHandler handles brokerage CSV imports.
type ImportHandler struct {
	importService services.ImportServicer
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService services.ImportServicer) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// ImportRequest represents the request payload for a CSV import.
type ImportRequest struct {
	AccountID string `json:"account_id" binding:"required,uuid"`
	CSV       string `json:"csv" binding:"required"`
}

// ImportCSV handles the bulk CSV import
// @Summary     Import brokerage CSV
// @Description Normalize a brokerage CSV export and record each row against the account
// @Tags        import
// @Accept      json
// @Produce     json
// @Param       request body ImportRequest true "Account and CSV text"
// @Success     200 {object} services.ImportReport "Import summary"
// @Failure     400 {object} ErrorResponse "Invalid input or empty import"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /import [post]
func (h *ImportHandler) ImportCSV(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	report, err := h.importService.ImportCSV(req.AccountID, req.CSV)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
