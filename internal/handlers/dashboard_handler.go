package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "pulserisk/internal/errors"
	"pulserisk/internal/services"
)

// DashboardHandler handles analytics view requests.
type DashboardHandler struct {
	analyticsService services.AnalyticsServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(analyticsService services.AnalyticsServicer) *DashboardHandler {
	return &DashboardHandler{analyticsService: analyticsService}
}

// DashboardRequest represents the query parameters for the dashboard view.
type DashboardRequest struct {
	Scope     string `form:"scope" binding:"omitempty,view_scope"`
	AccountID string `form:"account_id" binding:"omitempty,uuid"`
	Lookback  int    `form:"lookback"`
	Benchmark string `form:"benchmark"`
}

// GetDashboard handles the full analytics snapshot
// @Summary     Dashboard view
// @Description Compute the analytics snapshot for a scope, lookback window, and benchmark
// @Tags        dashboard
// @Produce     json
// @Param       scope      query string false "SINGLE or COMBINED (default COMBINED)"
// @Param       account_id query string false "Account ID, required for SINGLE scope"
// @Param       lookback   query int    false "Trailing window: 20, 60, or 120 (default 60)"
// @Param       benchmark  query string false "Benchmark: SPY or QQQ (default SPY)"
// @Success     200 {object} services.ViewState "Analytics snapshot"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	var req DashboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	scope := services.ScopeCombined
	if req.Scope != "" {
		scope = services.Scope(req.Scope)
	}
	if req.Lookback == 0 {
		req.Lookback = 60
	}
	if req.Benchmark == "" {
		req.Benchmark = "SPY"
	}

	view, err := h.analyticsService.Dashboard(scope, req.AccountID, req.Lookback, req.Benchmark)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
