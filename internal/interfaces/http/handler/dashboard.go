package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/vendorhub/backend/internal/application/analytics"
)

// DashboardHandler serves the supplier analytics dashboard
type DashboardHandler struct {
	BaseHandler
	analyticsService *analytics.AnalyticsService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(analyticsService *analytics.AnalyticsService) *DashboardHandler {
	return &DashboardHandler{analyticsService: analyticsService}
}

// GetDashboard godoc
// @Summary      Supplier dashboard
// @Description  Live by default; source=cache reads the stored snapshot
// @Tags         dashboard
// @Produce      json
// @Param        source query string false "live or cache" Enums(live, cache)
// @Success      200 {object} APIResponse[analytics.DashboardResponse]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /supplier/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	supplierID, ok := h.SupplierID(c)
	if !ok {
		return
	}

	source := c.DefaultQuery("source", analytics.SourceLive)
	if source != analytics.SourceLive && source != analytics.SourceCache {
		h.BadRequest(c, "source must be live or cache")
		return
	}

	resp, err := h.analyticsService.Dashboard(c.Request.Context(), supplierID, source == analytics.SourceCache)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
