package settings

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingRescheduler struct {
	calls []string
	err   error
}

func (r *recordingRescheduler) Reschedule(enabled bool, schedule string, _ int) error {
	state := "off"
	if enabled {
		state = "on"
	}
	r.calls = append(r.calls, state+":"+schedule)
	return r.err
}

func newSettingsApp(rescheduler Rescheduler) *fiber.App {
	ctrl := NewSettingsController(NewSettingsService(NewMemorySettingsRepository()), rescheduler, zap.NewNop())
	app := fiber.New()
	app.Get("/settings", ctrl.GetSyncSettings)
	app.Put("/settings", ctrl.UpdateSyncSettings)
	return app
}

func putSettings(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/settings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestSettingsController_Update(t *testing.T) {
	rescheduler := &recordingRescheduler{}
	app := newSettingsApp(rescheduler)

	resp := putSettings(t, app, `{"feed_url":"https://example.com/stock.csv"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, rescheduler.calls)

	resp = putSettings(t, app, `{"enabled":true,"schedule":"daily"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"on:daily"}, rescheduler.calls)

	resp = putSettings(t, app, `{"schedule":"never"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = putSettings(t, app, `{not json`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSettingsController_RescheduleFailure(t *testing.T) {
	app := newSettingsApp(&recordingRescheduler{err: errors.New("cron down")})

	resp := putSettings(t, app, `{"enabled":true}`)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestSettingsController_Get(t *testing.T) {
	app := newSettingsApp(&recordingRescheduler{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/settings", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Settings        SyncSettings     `json:"settings"`
		ScheduleOptions []ScheduleOption `json:"schedule_options"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, DefaultSyncSettings(), body.Settings)
	assert.Len(t, body.ScheduleOptions, 8)
}
