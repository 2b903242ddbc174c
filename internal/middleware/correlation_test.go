package middleware

import (
	"catalog/pkg/events"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(NewCorrelationMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(events.CorrelationIDFromContext(c.UserContext()))
	})
	return app
}

func TestCorrelationIDFromHeader(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(CorrelationIDHeader, "abc-123")

	resp, err := newTestApp().Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", string(body))
	assert.Equal(t, "abc-123", resp.Header.Get(CorrelationIDHeader))
}

func TestCorrelationIDGenerated(t *testing.T) {
	resp, err := newTestApp().Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	_, err = uuid.Parse(string(body))
	assert.NoError(t, err)
	assert.Equal(t, string(body), resp.Header.Get(CorrelationIDHeader))
}
