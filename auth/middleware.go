package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// IdentityKey is the fiber.Ctx local under which the validated Identity is
// stored for downstream handlers.
const IdentityKey = "identity"

// Middleware validates the Authorization header on every request and injects
// the resulting Identity into the request context. Requests without a valid
// token are rejected before any relay state is touched.
func Middleware(validator *TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authorization token is missing"})
		}

		// Expecting the standard "Bearer <token>" format
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		identity, err := validator.Validate(tokenStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		c.Locals(IdentityKey, identity)
		return c.Next()
	}
}
