// Package services содержит доменные типы и ошибки аутентификации.
package services

import (
	"time"

	"davazen/internal/auth/domain/entities"
	"davazen/pkg/apperr"
)

// InvalidCredentialsMessage одинаково для неизвестного email и неверного пароля.
const InvalidCredentialsMessage = "invalid email or password"

// Ошибки домена аутентификации.
var (
	ErrEmptyCredentials   = apperr.Validation("email and password are required")
	ErrUnknownEmail       = apperr.NotFound(InvalidCredentialsMessage)
	ErrInvalidCredentials = apperr.Authentication(InvalidCredentialsMessage)
	ErrEmailAlreadyExists = apperr.Conflict("user with this email already exists")
)

// Session - результат регистрации или входа.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      entities.Identity
}
