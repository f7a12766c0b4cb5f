package runlog

import (
	"go-stocksync/internal/common/api"
	"go-stocksync/internal/config"
	"go-stocksync/internal/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type RunLogApi struct {
	controller *RunLogController
	config     *config.Config
}

func NewRunLogApi(controller *RunLogController, config *config.Config) api.Route {
	return &RunLogApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers run history routes
func (h *RunLogApi) Setup(app *fiber.App) {
	group := app.Group("/api/stock-sync", middleware.AuthMiddleware(h.config.SkipAuth), middleware.RequireRole("admin"))

	group.Get("/runs", h.controller.ListRuns)
	group.Get("/runs/:id/logs", h.controller.GetRunLogs)
	group.Get("/runs/:id/export", h.controller.ExportRun)
	group.Get("/logs/counts", h.controller.GetLogCounts)
	group.Delete("/logs", h.controller.ClearLogs)
	group.Get("/logs/live", requireUpgrade, websocket.New(h.controller.StreamLogs))
}

func requireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}
