package runlog

import (
	"fmt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type RunLogController struct {
	Service RunLogger
}

func NewRunLogController(service RunLogger) *RunLogController {
	return &RunLogController{
		Service: service,
	}
}

// ListRuns godoc
// @Summary List sync runs
// @Tags stock-sync
// @Produce json
// @Param limit query int false "Runs per page"
// @Param offset query int false "Offset"
// @Router /api/stock-sync/runs [get]
func (ctrl *RunLogController) ListRuns(c *fiber.Ctx) error {
	limit := int64(c.QueryInt("limit", defaultRunsPageSize))
	offset := int64(c.QueryInt("offset", 0))

	runs, err := ctrl.Service.GetSyncRuns(c.Context(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	total, err := ctrl.Service.GetSyncRunsCount(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data":  runs,
		"total": total,
	})
}

// GetRunLogs godoc
// @Summary Get the log entries of one run
// @Tags stock-sync
// @Produce json
// @Param id path string true "Run ID"
// @Router /api/stock-sync/runs/{id}/logs [get]
func (ctrl *RunLogController) GetRunLogs(c *fiber.Ctx) error {
	logs, err := ctrl.Service.GetLogsForRun(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": logs,
	})
}

// ExportRun godoc
// @Summary Download the log entries of one run as xlsx
// @Tags stock-sync
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Run ID"
// @Router /api/stock-sync/runs/{id}/export [get]
func (ctrl *RunLogController) ExportRun(c *fiber.Ctx) error {
	runID := c.Params("id")
	logs, err := ctrl.Service.GetLogsForRun(c.Context(), runID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if len(logs) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Run not found",
		})
	}

	buf, err := ExportRunXLSX(runID, logs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="stock-sync-%s.xlsx"`, runID))
	return c.Send(buf.Bytes())
}

// GetLogCounts godoc
// @Summary Count runs and entries by level
// @Tags stock-sync
// @Produce json
// @Router /api/stock-sync/logs/counts [get]
func (ctrl *RunLogController) GetLogCounts(c *fiber.Ctx) error {
	counts, err := ctrl.Service.GetLogCounts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(counts)
}

// ClearLogs godoc
// @Summary Delete all run log entries
// @Tags stock-sync
// @Produce json
// @Router /api/stock-sync/logs [delete]
func (ctrl *RunLogController) ClearLogs(c *fiber.Ctx) error {
	if !ctrl.Service.ClearAllLogs(c.Context()) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to clear logs",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Logs cleared successfully",
	})
}

// StreamLogs godoc
// @Summary Stream run log entries
// @Description Pushes every new run log entry to the client as JSON until either side closes.
// @Tags stock-sync
// @Param token query string false "JWT for browser clients"
// @Router /api/stock-sync/logs/live [get]
func (ctrl *RunLogController) StreamLogs(c *websocket.Conn) {
	entries, unsubscribe := ctrl.Service.Subscribe()
	defer unsubscribe()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case entry, ok := <-entries:
			if !ok {
				return
			}
			if err := c.WriteJSON(entry); err != nil {
				return
			}
		}
	}
}
