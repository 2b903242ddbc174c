package middleware

import (
	"catalog/pkg/events"
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const CorrelationIDHeader = "X-Correlation-ID"

// NewCorrelationMiddleware puts the caller's correlation id, or a fresh one,
// into the request context and echoes it on the response.
func NewCorrelationMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		correlationID := strings.TrimSpace(c.Get(CorrelationIDHeader))
		if correlationID == "" {
			correlationID = events.GenerateCorrelationID()
		}

		userCtx := c.UserContext()
		if userCtx == nil {
			userCtx = context.Background()
		}

		c.SetUserContext(events.WithCorrelationID(userCtx, correlationID))
		c.Set(CorrelationIDHeader, correlationID)
		return c.Next()
	}
}
