package handler

import (
	"exam-api/internal/domain"
	"exam-api/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const msgInvalidBody = "Invalid request body"

// parseBody decodes the JSON body into req. Decoding failures are reported
// to the client as INVALID_INPUT.
func parseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		logger.Get().Debug("Failed to parse request body",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return domain.NewInvalidInputError(msgInvalidBody)
	}
	return nil
}

// queryLocal returns the query parameter stored by the query middleware.
func queryLocal(c *fiber.Ctx, name string) (string, bool) {
	value, ok := c.Locals(name).(string)
	return value, ok
}
