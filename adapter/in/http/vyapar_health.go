package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthProbe reports whether an upstream dependency is accepting traffic.
type HealthProbe interface {
	Healthy() bool
}

type HealthHandler struct {
	probes map[string]HealthProbe
}

func NewHealthHandler(probes map[string]HealthProbe) *HealthHandler {
	return &HealthHandler{probes: probes}
}

func (h *HealthHandler) Register(app *fiber.App) {
	app.Get("/health", h.Health)
	app.Get("/ready", h.Ready)
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"service":   "VyaparSetu AI",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready reports per-dependency circuit state. A tripped breaker marks the
// service not ready so load balancers can drain it.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	checks := make(map[string]string, len(h.probes))
	allHealthy := true

	for name, probe := range h.probes {
		if probe.Healthy() {
			checks[name] = "healthy"
		} else {
			checks[name] = "circuit open"
			allHealthy = false
		}
	}

	status := "ready"
	statusCode := fiber.StatusOK
	if !allHealthy {
		status = "not ready"
		statusCode = fiber.StatusServiceUnavailable
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"status":    status,
		"checks":    checks,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
