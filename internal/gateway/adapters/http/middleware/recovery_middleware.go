package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"davazen/internal/gateway/adapters/http/response"
	"davazen/pkg/logger"
)

// Сообщения восстановления после паники.
const (
	LogServerPanic         = "server panic"
	LogFailedPanicResponse = "failed to send error response after panic"
)

// NewRecoveryMiddleware создает новое промежуточное ПО для восстановления после паники.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) (err error) {
		requestCtx := response.Context(ctx)
		log := logger.Log(requestCtx)

		defer func() {
			if r := recover(); r != nil {
				log.Error(requestCtx, LogServerPanic,
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)

				if sendErr := response.Fail(ctx, fiber.StatusInternalServerError, response.MsgInternalError); sendErr != nil {
					log.Error(requestCtx, LogFailedPanicResponse, zap.Error(sendErr))
					err = sendErr
				}
			}
		}()

		return ctx.Next()
	}
}
