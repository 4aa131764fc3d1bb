package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campusdesk/helpdesk/internal/service"
)

// StatsHandler serves ticket count projections.
type StatsHandler struct {
	service *service.StatsService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{service: statsService}
}

// AdminStats GET /api/stats. Admin only.
func (h *StatsHandler) AdminStats(c *fiber.Ctx) error {
	stats, err := h.service.AdminStats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"stats": stats})
}

// UserStats GET /api/user-stats. Scoped to the caller's own tickets unless
// the caller is admin.
func (h *StatsHandler) UserStats(c *fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	stats, err := h.service.UserStats(c.Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"stats": fiber.Map{
		"open":        stats.Open,
		"in_progress": stats.InProgress,
		"resolved":    stats.Resolved,
	}})
}
