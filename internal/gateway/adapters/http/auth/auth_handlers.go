// Package auth содержит HTTP обработчики регистрации, входа и профиля.
package auth

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"davazen/internal/auth/ports/api"
	"davazen/internal/gateway/adapters/http/middleware"
	"davazen/internal/gateway/adapters/http/request"
	"davazen/internal/gateway/adapters/http/response"
	"davazen/internal/gateway/app/dto"
	"davazen/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister   = "auth handler: register"
	LogHandlerLogin      = "auth handler: login"
	LogHandlerGetProfile = "auth handler: get profile"

	ErrorInvalidRequest = "invalid request"
	ErrorUnauthorized   = "unauthorized"

	errCtxRegister = "register"
	errCtxLogin    = "login"
	errCtxProfile  = "get profile"
)

// Handler содержит HTTP обработчики для авторизации.
type Handler struct {
	authUseCase api.AuthUseCase
	userUseCase api.UserUseCase
}

// NewHandler создает новый экземпляр обработчика авторизации.
func NewHandler(authUseCase api.AuthUseCase, userUseCase api.UserUseCase) *Handler {
	return &Handler{
		authUseCase: authUseCase,
		userUseCase: userUseCase,
	}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := response.Context(ctx)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := request.BindAndValidate(ctx, &req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return err
	}

	session, err := h.authUseCase.Register(requestCtx, req.Email, req.Password)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxRegister, err)
	}

	return response.OK(ctx, dto.NewSessionResponse(session))
}

// Login обрабатывает запрос на вход пользователя.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := response.Context(ctx)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := request.BindAndValidate(ctx, &req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return err
	}

	session, err := h.authUseCase.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxLogin, err)
	}

	return response.OK(ctx, dto.NewSessionResponse(session))
}

// GetProfile возвращает профиль текущего пользователя.
func (h *Handler) GetProfile(ctx fiber.Ctx) error {
	requestCtx := response.Context(ctx)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerGetProfile)

	identity, ok := middleware.Identity(ctx)
	if !ok {
		return response.Fail(ctx, fiber.StatusUnauthorized, ErrorUnauthorized)
	}

	profile, err := h.userUseCase.GetProfile(requestCtx, identity.Email)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxProfile, err)
	}

	return response.OK(ctx, profile)
}
