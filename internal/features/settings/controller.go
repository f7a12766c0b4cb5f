package settings

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Rescheduler rearms the sync timer after a schedule change.
type Rescheduler interface {
	Reschedule(enabled bool, schedule string, customMinutes int) error
}

type SettingsController struct {
	Service     SettingsService
	Rescheduler Rescheduler
	Logger      *zap.Logger
}

func NewSettingsController(service SettingsService, rescheduler Rescheduler, logger *zap.Logger) *SettingsController {
	return &SettingsController{
		Service:     service,
		Rescheduler: rescheduler,
		Logger:      logger,
	}
}

// GetSyncSettings godoc
// @Summary Get stock sync settings
// @Tags stock-sync
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/stock-sync/settings [get]
func (ctrl *SettingsController) GetSyncSettings(c *fiber.Ctx) error {
	current, err := ctrl.Service.GetSyncSettings(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error retrieving sync settings",
		})
	}

	return c.JSON(fiber.Map{
		"settings":         current,
		"schedule_options": ScheduleOptions(),
	})
}

// UpdateSyncSettings godoc
// @Summary Update stock sync settings
// @Tags stock-sync
// @Accept json
// @Produce json
// @Param settings body UpdateSyncSettingsRequest true "Changed fields"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/stock-sync/settings [put]
func (ctrl *SettingsController) UpdateSyncSettings(c *fiber.Ctx) error {
	var req UpdateSyncSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	updated, changed, err := ctrl.Service.UpdateSyncSettings(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidFeedURL) || errors.Is(err, ErrUnknownSchedule) || errors.Is(err, ErrInvalidSettings) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error updating sync settings",
		})
	}

	if changed {
		if err := ctrl.Rescheduler.Reschedule(updated.Enabled, updated.Schedule, updated.CustomIntervalMinutes); err != nil {
			ctrl.Logger.Error("Failed to reschedule stock sync", zap.String("schedule", updated.Schedule), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Settings saved but the sync could not be rescheduled",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message":  "Sync settings updated successfully",
		"settings": updated,
	})
}
