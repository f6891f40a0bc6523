// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"davazen/internal/gateway/adapters/http/response"
	"davazen/pkg/logger"
)

// Сообщения журнала запросов.
const (
	LogRequestStarted   = "request started"
	LogRequestCompleted = "request completed"
	LogRequestFailed    = "request failed"
)

// NewLoggerMiddleware создает новое промежуточное ПО для логирования HTTP запросов.
// Ошибку обработчика оно отдает обработчику ошибок приложения, чтобы статус в логе был итоговым.
func NewLoggerMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := response.Context(ctx)
		start := time.Now()

		log := logger.Log(requestCtx).With(
			zap.String("path", ctx.Path()),
			zap.String("http_method", ctx.Method()),
			zap.String("ip", ctx.IP()),
		)

		log.Debug(requestCtx, LogRequestStarted)

		if err := ctx.Next(); err != nil {
			if sendErr := response.Error(ctx, err); sendErr != nil {
				log.Error(requestCtx, LogRequestFailed, zap.Error(sendErr))
				return sendErr
			}
		}

		fields := []zap.Field{
			zap.Int("status", ctx.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}

		if ctx.Response().StatusCode() >= fiber.StatusInternalServerError {
			log.Warn(requestCtx, LogRequestFailed, fields...)
			return nil
		}

		log.Info(requestCtx, LogRequestCompleted, fields...)
		return nil
	}
}
