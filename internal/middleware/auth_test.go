package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-stocksync/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedApp(skipAuth bool) *fiber.App {
	app := fiber.New()
	app.Get("/admin", AuthMiddleware(skipAuth), RequireRole("admin"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	utils.SetSecret("middleware-secret")
	adminToken, err := utils.GenerateToken("u1", []string{"admin"}, time.Hour)
	require.NoError(t, err)
	viewerToken, err := utils.GenerateToken("u2", []string{"viewer"}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name     string
		skipAuth bool
		header   string
		want     int
	}{
		{name: "missing header", header: "", want: fiber.StatusUnauthorized},
		{name: "bad scheme", header: "Basic abc", want: fiber.StatusUnauthorized},
		{name: "invalid token", header: "Bearer nope", want: fiber.StatusUnauthorized},
		{name: "wrong role", header: "Bearer " + viewerToken, want: fiber.StatusForbidden},
		{name: "admin", header: "Bearer " + adminToken, want: fiber.StatusOK},
		{name: "skip auth", skipAuth: true, want: fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newProtectedApp(tt.skipAuth)
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestAuthMiddleware_QueryTokenOnlyForUpgrade(t *testing.T) {
	utils.SetSecret("middleware-secret")
	token, err := utils.GenerateToken("u1", []string{"admin"}, time.Hour)
	require.NoError(t, err)

	app := newProtectedApp(false)

	req := httptest.NewRequest(http.MethodGet, "/admin?token="+token, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/admin?token="+token, nil)
	req.Header.Set("Upgrade", "websocket")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCORSMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(CORSMiddleware("https://admin.example.com"))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "https://admin.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Disposition", resp.Header.Get("Access-Control-Expose-Headers"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}
