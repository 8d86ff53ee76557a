package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/haroonchishty/sca-backend/internal/persistence"
)

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	store *persistence.Store
}

// NewHealthHandler constructs handler.
func NewHealthHandler(store *persistence.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

// Live handles GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready; verifies store reachability.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if err := h.store.Ping(c.UserContext()); err != nil {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
