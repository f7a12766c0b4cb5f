package cron_feature

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCronApp(h *harness) *fiber.App {
	ctrl := NewCronController(h.scheduler)
	app := fiber.New()
	app.Post("/run", ctrl.RunSync)
	app.Get("/status", ctrl.GetStatus)
	return app
}

func TestCronController_Run(t *testing.T) {
	h := newHarness(t)
	app := newCronApp(h)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/run", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result RunResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.Success)
	assert.Equal(t, "manual", result.Stats["trigger"])

	require.NoError(t, h.scheduler.SetRunning(context.Background(), true))
	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/run", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestCronController_Status(t *testing.T) {
	h := newHarness(t)
	app := newCronApp(h)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/status", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var status SyncStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "hourly", status.Schedule)
	assert.Equal(t, StateUnscheduled, status.State)
}
