package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/univera/univera/internal/app/models/dto"
	"github.com/univera/univera/internal/app/services"
	"github.com/univera/univera/internal/middleware"
)

// DashboardController serves the administrator landing-page counters
type DashboardController struct {
	dashboardService *services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// Summary returns the aggregate counters
// @Summary Get dashboard counters
// @Description Returns headcounts, exam and result counters, fee totals, library and hostel figures; cached briefly
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse}
// @Router /dashboard [get]
func (c *DashboardController) Summary(ctx *gin.Context) {
	summary, err := c.dashboardService.Summary(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(summary, ""))
}
