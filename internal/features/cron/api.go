package cron_feature

import (
	"go-stocksync/internal/common/api"
	"go-stocksync/internal/config"
	"go-stocksync/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CronApi struct {
	cronController *CronController
	config         *config.Config
}

func NewCronApi(cronController *CronController, config *config.Config) api.Route {
	return &CronApi{
		cronController: cronController,
		config:         config,
	}
}

func (h *CronApi) Setup(app *fiber.App) {
	group := app.Group("/api/stock-sync", middleware.AuthMiddleware(h.config.SkipAuth), middleware.RequireRole("admin"))

	group.Post("/run", h.cronController.RunSync)
	group.Get("/status", h.cronController.GetStatus)
}
