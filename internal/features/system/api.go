package system

import (
	"go-stocksync/internal/common/api"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

type SystemApi struct {
	healthController *HealthController
}

func NewSystemApi(healthController *HealthController) api.Route {
	return &SystemApi{
		healthController: healthController,
	}
}

// Setup registers the unauthenticated health check and API docs routes
func (h *SystemApi) Setup(app *fiber.App) {
	app.Get("/health", h.healthController.HealthCheck)
	app.Get("/health/ready", h.healthController.Readiness)
	app.Get("/swagger/*", swagger.HandlerDefault)
}
