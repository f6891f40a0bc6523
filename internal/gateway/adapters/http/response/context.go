package response

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"davazen/pkg/logger"
)

// LocalRequestID - ключ Locals с идентификатором запроса.
const LocalRequestID = "requestID"

// Context возвращает контекст запроса с идентификатором запроса для логов.
func Context(c fiber.Ctx) context.Context {
	ctx := context.Context(c.Context())
	if id, ok := c.Locals(LocalRequestID).(string); ok && id != "" {
		return logger.NewRequestIDContext(ctx, id)
	}
	return ctx
}
