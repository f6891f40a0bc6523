// Package response формирует единый конверт ответов HTTP API.
package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"davazen/pkg/apperr"
	"davazen/pkg/logger"
)

// Сообщения об ошибках, которые не раскрывают детали.
const (
	MsgInternalError = "internal server error"
	MsgRouteNotFound = "route not found"

	errCtxSending = "sending response"
)

// Envelope - тело любого ответа API.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK отправляет успешный ответ с данными.
func OK(c fiber.Ctx, data any) error {
	if err := c.Status(http.StatusOK).JSON(Envelope{Success: true, Data: data}); err != nil {
		return fmt.Errorf("%s: %w", errCtxSending, err)
	}
	return nil
}

// Fail отправляет ответ с ошибкой.
func Fail(c fiber.Ctx, status int, message string) error {
	if err := c.Status(status).JSON(Envelope{Success: false, Error: message}); err != nil {
		return fmt.Errorf("%s: %w", errCtxSending, err)
	}
	return nil
}

// Error переводит ошибку в HTTP-код и сообщение. Внутренние ошибки логируются и скрываются.
func Error(c fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return Fail(c, fiberErr.Code, fiberErr.Message)
	}

	status := apperr.HTTPStatus(err)
	msg, ok := apperr.Message(err)
	if !ok || status == http.StatusInternalServerError {
		ctx := Context(c)
		logger.Log(ctx).Error(ctx, MsgInternalError,
			zap.String("path", c.Path()),
			zap.Error(err))
		msg = MsgInternalError
	}
	return Fail(c, status, msg)
}

// ErrorHandler - обработчик ошибок fiber, возвращающий ошибки в конверте.
func ErrorHandler(c fiber.Ctx, err error) error {
	return Error(c, err)
}

// NotFound отвечает на неизвестные маршруты.
func NotFound(c fiber.Ctx) error {
	return Fail(c, http.StatusNotFound, MsgRouteNotFound)
}
