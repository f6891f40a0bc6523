package middleware

import (
	"github.com/gofiber/fiber/v3"

	"davazen/internal/gateway/adapters/http/response"
	"davazen/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestIDMiddleware берет идентификатор запроса из заголовка или создает новый.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		id := ctx.Get(HeaderRequestID)
		if id == "" {
			id = logger.GenerateRequestID()
		}
		ctx.Locals(response.LocalRequestID, id)
		ctx.Set(HeaderRequestID, id)
		return ctx.Next()
	}
}
