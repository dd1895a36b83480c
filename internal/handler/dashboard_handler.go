package handler

import (
	"go-logistics-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetStats returns the dashboard overview: system-wide for admins, scoped to
// the caller's own data for clients.
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	if isAdmin(c) {
		stats, err := h.service.GetAdminStats(c.Context())
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
		}
		return c.JSON(stats)
	}

	clientID, err := parseUUID(getUserID(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid client ID"})
	}

	stats, err := h.service.GetClientStats(c.Context(), clientID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}
	return c.JSON(stats)
}
