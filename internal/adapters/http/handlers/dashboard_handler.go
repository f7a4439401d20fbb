package handlers

import (
	"strconv"

	"luna-empenos/internal/core/services"
	"luna-empenos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats returns dashboard counters
// @Summary Dashboard stats
// @Description Pawn counts by state plus client total
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetStats(c.Context())
	if err != nil {
		return mapDomainError(c, err, "Failed to get dashboard stats")
	}

	return response.Success(c, "Dashboard stats retrieved successfully", stats)
}

// Recent returns the recent-activity feed
// @Summary Recent activity
// @Description Pawn registrations and cash movements merged, newest first
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Feed size" default(5)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /dashboard/recent [get]
func (h *DashboardHandler) Recent(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "5"))

	items, err := h.dashboardService.GetRecentActivity(c.Context(), limit)
	if err != nil {
		return mapDomainError(c, err, "Failed to get recent activity")
	}

	return response.Success(c, "Recent activity retrieved successfully", fiber.Map{
		"activity": items,
	})
}
