package handlers

import (
	"time"

	"parlay-api/internal/services"

	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	startTime time.Time
	builder   *services.ParlayBuilder
}

func NewHealthHandler(builder *services.ParlayBuilder) *HealthHandler {
	return &HealthHandler{
		startTime: time.Now(),
		builder:   builder,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": "parlay-api",
		"uptime":  time.Since(h.startTime).String(),
		"time":    time.Now(),
	})
}

// Ready handles GET /health/ready
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if !h.builder.Ready() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "not ready",
			"checks": fiber.Map{
				"api":      "ok",
				"odds_api": "missing api key",
			},
		})
	}

	return c.JSON(fiber.Map{
		"status": "ready",
		"checks": fiber.Map{
			"api":      "ok",
			"odds_api": "ok",
		},
	})
}
