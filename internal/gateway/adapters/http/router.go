// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	authapi "davazen/internal/auth/ports/api"
	caseapi "davazen/internal/cases/ports/api"
	"davazen/internal/config"
	"davazen/internal/gateway/adapters/http/auth"
	"davazen/internal/gateway/adapters/http/cases"
	"davazen/internal/gateway/adapters/http/middleware"
	"davazen/internal/gateway/adapters/http/response"
	"davazen/internal/gateway/app/dto"
)

// StatusOK - значение поля status в ответе /health.
const StatusOK = "ok"

// Services - входные порты, которые обслуживает HTTP API.
type Services struct {
	Auth  authapi.AuthUseCase
	Users authapi.UserUseCase
	Cases caseapi.CaseUseCase
}

// NewApp создает fiber-приложение с настроенными маршрутами.
func NewApp(cfg *config.HTTPConfig, services Services) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      config.ServiceName,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: response.ErrorHandler,
	})

	SetupRouter(app, services)
	return app
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, services Services) {
	authHandler := auth.NewHandler(services.Auth, services.Users)
	caseHandler := cases.NewHandler(services.Cases)
	requireAuth := middleware.NewAuthMiddleware(services.Auth)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/health", func(c fiber.Ctx) error {
		return response.OK(c, dto.HealthResponse{Status: StatusOK})
	})

	api := app.Group("/api")

	// Auth routes (публичные).
	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)

	// Текущий пользователь.
	meRoutes := authRoutes.Group("/me")
	meRoutes.Use(requireAuth)
	meRoutes.Get("/", authHandler.GetProfile)

	// Маршруты дел (требуют авторизации).
	caseRoutes := api.Group("/cases")
	caseRoutes.Use(requireAuth)
	caseRoutes.Get("/", caseHandler.List)
	caseRoutes.Post("/", caseHandler.Create)
	caseRoutes.Post("/batch", caseHandler.Batch)
	caseRoutes.Post("/import/html", caseHandler.ImportHTML)
	caseRoutes.Get("/:id", caseHandler.Get)
	caseRoutes.Put("/:id", caseHandler.Update)
	caseRoutes.Delete("/:id", caseHandler.Delete)
	caseRoutes.Post("/:id/notes", caseHandler.AddNote)

	// Лента заметок по всем делам пользователя.
	noteRoutes := api.Group("/notes")
	noteRoutes.Use(requireAuth)
	noteRoutes.Get("/", caseHandler.ListNotes)

	// Обработчик для несуществующих маршрутов.
	app.Use(response.NotFound)
}
