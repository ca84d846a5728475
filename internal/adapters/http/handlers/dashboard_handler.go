package handlers

import (
	"quantfund-staking/internal/core/services"
	"quantfund-staking/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles admin dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Overview returns platform aggregates
// @Summary Admin dashboard overview
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	stats, err := h.dashboardService.Overview(c.Context())
	if err != nil {
		return err
	}

	return response.Success(c, "Dashboard retrieved successfully", stats)
}
