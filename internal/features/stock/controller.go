package stock

import (
	"strings"

	"go-stocksync/internal/features/settings"

	"github.com/gofiber/fiber/v2"
)

type StockController struct {
	Syncer   StockSyncer
	Settings settings.SettingsService
}

func NewStockController(syncer StockSyncer, settingsService settings.SettingsService) *StockController {
	return &StockController{
		Syncer:   syncer,
		Settings: settingsService,
	}
}

// testConnectionRequest lets the operator try feed values before saving them.
type testConnectionRequest struct {
	FeedURL        string `json:"feed_url"`
	SKUColumn      string `json:"sku_column"`
	QuantityColumn string `json:"quantity_column"`
}

// TestConnection godoc
// @Summary Validate the feed and its columns without syncing
// @Tags stock-sync
// @Accept json
// @Produce json
// @Success 200 {object} ConnectionResult
// @Router /api/stock-sync/test-connection [post]
func (ctrl *StockController) TestConnection(c *fiber.Ctx) error {
	current, err := ctrl.Settings.GetSyncSettings(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error retrieving sync settings",
		})
	}

	var req testConnectionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}
	cfg := *current
	if v := strings.TrimSpace(req.FeedURL); v != "" {
		cfg.FeedURL = v
	}
	if v := strings.TrimSpace(req.SKUColumn); v != "" {
		cfg.SKUColumn = v
	}
	if v := strings.TrimSpace(req.QuantityColumn); v != "" {
		cfg.QuantityColumn = v
	}

	return c.JSON(ctrl.Syncer.TestConnection(c.UserContext(), cfg))
}
