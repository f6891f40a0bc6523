// Package apperr описывает классы ошибок приложения и их сопоставление с HTTP-кодами.
package apperr

import (
	"errors"
	"net/http"
)

// Классы ошибок. Сравнивать через errors.Is.
var (
	ErrValidation     = errors.New("validation error")
	ErrConflict       = errors.New("conflict error")
	ErrAuthentication = errors.New("authentication error")
	ErrNotFound       = errors.New("not found error")
	ErrForbidden      = errors.New("forbidden error")
	ErrConfiguration  = errors.New("configuration error")
)

// Error - ошибка с классом и сообщением для пользователя.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is сопоставляет ошибку с ее классом.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Unwrap возвращает класс ошибки.
func (e *Error) Unwrap() error {
	return e.Kind
}

// Validation создает ошибку валидации.
func Validation(msg string) *Error { return &Error{Kind: ErrValidation, Message: msg} }

// Conflict создает ошибку конфликта уникального ключа.
func Conflict(msg string) *Error { return &Error{Kind: ErrConflict, Message: msg} }

// Authentication создает ошибку неверных учетных данных.
func Authentication(msg string) *Error { return &Error{Kind: ErrAuthentication, Message: msg} }

// NotFound создает ошибку отсутствующей записи.
func NotFound(msg string) *Error { return &Error{Kind: ErrNotFound, Message: msg} }

// Forbidden создает ошибку доступа к чужой записи.
func Forbidden(msg string) *Error { return &Error{Kind: ErrForbidden, Message: msg} }

// Configuration создает ошибку конфигурации.
func Configuration(msg string) *Error { return &Error{Kind: ErrConfiguration, Message: msg} }

// Message возвращает сообщение для пользователя, если в цепочке есть *Error.
func Message(err error) (string, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message, true
	}
	return "", false
}

// HTTPStatus возвращает HTTP-код для ошибки.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrAuthentication):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
