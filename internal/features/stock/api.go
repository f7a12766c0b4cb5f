package stock

import (
	"go-stocksync/internal/common/api"
	"go-stocksync/internal/config"
	"go-stocksync/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type StockApi struct {
	controller *StockController
	config     *config.Config
}

func NewStockApi(controller *StockController, config *config.Config) api.Route {
	return &StockApi{
		controller: controller,
		config:     config,
	}
}

func (h *StockApi) Setup(app *fiber.App) {
	group := app.Group("/api/stock-sync", middleware.AuthMiddleware(h.config.SkipAuth), middleware.RequireRole("admin"))

	group.Post("/test-connection", h.controller.TestConnection)
}
