package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/todo-service/internal/observability"
)

// MetricsHandler exposes in-memory counters for debugging.
type MetricsHandler struct {
	metrics *observability.Metrics
}

// NewMetricsHandler returns a new handler instance.
func NewMetricsHandler(metrics *observability.Metrics) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Snapshot GET /metrics.
func (h *MetricsHandler) Snapshot(c *fiber.Ctx) error {
	return c.JSON(h.metrics.Snapshot())
}
