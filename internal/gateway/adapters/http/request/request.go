// Package request содержит разбор тел HTTP-запросов.
package request

import (
	"github.com/gofiber/fiber/v3"

	"davazen/internal/gateway/app/dto"
	"davazen/pkg/apperr"
)

// ErrInvalidBody - тело запроса не является корректным JSON нужной формы.
var ErrInvalidBody = apperr.Validation("invalid request body")

// BindJSON разбирает JSON-тело в out.
func BindJSON(c fiber.Ctx, out any) error {
	if err := c.Bind().JSON(out); err != nil {
		return ErrInvalidBody
	}
	return nil
}

// BindAndValidate разбирает JSON-тело и проверяет теги validate.
func BindAndValidate(c fiber.Ctx, out any) error {
	if err := BindJSON(c, out); err != nil {
		return err
	}
	return dto.Validate(out)
}
