package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"davazen/internal/auth/domain/entities"
	"davazen/internal/auth/ports/api"
	"davazen/internal/gateway/adapters/http/response"
	"davazen/pkg/apperr"
	"davazen/pkg/logger"
)

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"
	LogTokenRejected  = "token rejected"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorInvalidToken       = "invalid or expired token"

	bearerPrefix  = "Bearer "
	localIdentity = "identity"
)

// NewAuthMiddleware проверяет Bearer-токен и кладет личность пользователя в Locals.
func NewAuthMiddleware(auth api.AuthUseCase) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := response.Context(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return response.Fail(ctx, fiber.StatusUnauthorized, ErrorNoAuthHeader)
		}

		token, ok := strings.CutPrefix(authHeader, bearerPrefix)
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return response.Fail(ctx, fiber.StatusUnauthorized, ErrorInvalidTokenFormat)
		}

		identity, err := auth.ValidateToken(requestCtx, token)
		if err != nil {
			if errors.Is(err, apperr.ErrConfiguration) {
				return response.Error(ctx, err)
			}
			log.Debug(requestCtx, LogTokenRejected, zap.Error(err))
			return response.Fail(ctx, fiber.StatusUnauthorized, ErrorInvalidToken)
		}

		ctx.Locals(localIdentity, *identity)
		return ctx.Next()
	}
}

// Identity возвращает личность, проверенную NewAuthMiddleware.
func Identity(ctx fiber.Ctx) (entities.Identity, bool) {
	identity, ok := ctx.Locals(localIdentity).(entities.Identity)
	return identity, ok && identity.ID != ""
}
