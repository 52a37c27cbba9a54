package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/1Garv23/share-smote/internal/util"
	"github.com/1Garv23/share-smote/pkg/types"
)

// JwtAuthMiddleware rejects requests without a valid bearer token and
// stores the account id in Locals for handlers to access.
func JwtAuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{Error: "Missing authorization header"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{Error: "Authorization header format must be Bearer {token}"})
		}

		token := parts[1]
		authorized, err := util.IsAuthorized(token, secret)
		if err != nil || !authorized {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{Error: "Not authorized or invalid token"})
		}

		userID, err := util.ExtractIDFromToken(token, secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{Error: "Could not extract user from token"})
		}

		c.Locals("x-user-id", userID)

		return c.Next()
	}
}
