package settings

import (
	"go-stocksync/internal/common/api"
	"go-stocksync/internal/config"
	"go-stocksync/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SettingsApi struct {
	Controller *SettingsController
	Config     *config.Config
}

func NewSettingsApi(controller *SettingsController, config *config.Config) api.Route {
	return &SettingsApi{
		Controller: controller,
		Config:     config,
	}
}

func (a *SettingsApi) Setup(app *fiber.App) {
	group := app.Group("/api/stock-sync", middleware.AuthMiddleware(a.Config.SkipAuth), middleware.RequireRole("admin"))

	group.Get("/settings", a.Controller.GetSyncSettings)
	group.Put("/settings", a.Controller.UpdateSyncSettings)
}
