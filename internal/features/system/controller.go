package system

import (
	"context"
	"time"

	"go-stocksync/internal/features/catalog"
	cron_feature "go-stocksync/internal/features/cron"

	"github.com/gofiber/fiber/v2"
)

const readinessTimeout = 3 * time.Second

type HealthController struct {
	Catalog   catalog.Store
	Scheduler cron_feature.Scheduler
}

func NewHealthController(store catalog.Store, scheduler cron_feature.Scheduler) *HealthController {
	return &HealthController{
		Catalog:   store,
		Scheduler: scheduler,
	}
}

// HealthCheck godoc
// @Summary      Health Check
// @Description  Check if the server is up
// @Tags         health
// @Produce      plain
// @Success      200  {string}  string  "OK"
// @Router       /health [get]
func (h *HealthController) HealthCheck(c *fiber.Ctx) error {
	return c.SendString("OK")
}

// Readiness godoc
// @Summary      Readiness Check
// @Description  Report whether the catalog store is reachable and the sync scheduler state
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health/ready [get]
func (h *HealthController) Readiness(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readinessTimeout)
	defer cancel()

	body := fiber.Map{
		"catalog":   "ok",
		"scheduler": h.Scheduler.State(ctx),
	}
	if next := h.Scheduler.NextRun(); next != nil {
		body["next_run"] = next
	}

	if err := h.Catalog.Ping(ctx); err != nil {
		body["catalog"] = err.Error()
		return c.Status(fiber.StatusServiceUnavailable).JSON(body)
	}
	return c.JSON(body)
}
