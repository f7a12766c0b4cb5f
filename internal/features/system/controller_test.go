package system

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "go-stocksync/docs"
	"go-stocksync/internal/features/catalog/catalogtest"
	cron_feature "go-stocksync/internal/features/cron"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScheduler struct {
	cron_feature.Scheduler
	state cron_feature.State
}

func (s *stubScheduler) State(context.Context) cron_feature.State { return s.state }

func (s *stubScheduler) NextRun() *time.Time { return nil }

func newHealthApp(store *catalogtest.Store, state cron_feature.State) *fiber.App {
	app := fiber.New()
	NewSystemApi(NewHealthController(store, &stubScheduler{state: state})).Setup(app)
	return app
}

func TestHealthCheck(t *testing.T) {
	app := newHealthApp(catalogtest.NewStore(), cron_feature.StateUnscheduled)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "OK", string(body))
}

func TestReadiness(t *testing.T) {
	store := catalogtest.NewStore()
	app := newHealthApp(store, cron_feature.StateScheduled)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["catalog"])
	assert.Equal(t, "scheduled", body["scheduler"])

	store.PingErr = errors.New("connection refused")
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	body = nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "connection refused", body["catalog"])
}

func TestSwaggerDocsServed(t *testing.T) {
	app := newHealthApp(catalogtest.NewStore(), cron_feature.StateUnscheduled)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var doc map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Contains(t, doc["paths"], "/api/stock-sync/run")
}
