package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestID tags every request with a unique id so log lines and responses
// can be correlated across the stack.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := uuid.NewString()
		c.Locals("x-request-id", id)
		c.Set("X-Request-ID", id)
		return c.Next()
	}
}
