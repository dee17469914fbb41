package middleware

import (
	"strings"

	"exam-api/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// RequireQuery rejects the request with message unless the query parameter
// name is present and not blank. The trimmed value is stored in Locals under
// name for the handler.
func RequireQuery(name, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		value := strings.TrimSpace(c.Query(name))
		if value == "" {
			return domain.NewInvalidInputError(message)
		}
		c.Locals(name, value)
		return c.Next()
	}
}

// OptionalQuery behaves like RequireQuery when the parameter is sent, and
// passes through untouched when it is absent. A present but blank value is
// rejected.
func OptionalQuery(name, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !c.Context().QueryArgs().Has(name) {
			return c.Next()
		}
		return RequireQuery(name, message)(c)
	}
}
