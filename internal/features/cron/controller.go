package cron_feature

import (
	"go-stocksync/internal/features/runlog"

	"github.com/gofiber/fiber/v2"
)

type CronController struct {
	Scheduler Scheduler
}

func NewCronController(scheduler Scheduler) *CronController {
	return &CronController{
		Scheduler: scheduler,
	}
}

// RunSync godoc
// @Summary Run a stock sync now
// @Description Runs synchronously and returns the outcome
// @Tags stock-sync
// @Produce json
// @Success 200 {object} RunResult
// @Failure 409 {object} RunResult
// @Router /api/stock-sync/run [post]
func (ctrl *CronController) RunSync(c *fiber.Ctx) error {
	result := ctrl.Scheduler.RunSync(c.UserContext(), runlog.TriggerManual)
	if result.AlreadyRunning {
		return c.Status(fiber.StatusConflict).JSON(result)
	}
	return c.JSON(result)
}

// GetStatus godoc
// @Summary Get stock sync status
// @Tags stock-sync
// @Produce json
// @Success 200 {object} SyncStatus
// @Router /api/stock-sync/status [get]
func (ctrl *CronController) GetStatus(c *fiber.Ctx) error {
	status, err := ctrl.Scheduler.GetSyncStats(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(status)
}
