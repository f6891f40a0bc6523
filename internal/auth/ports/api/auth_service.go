// Package api определяет входные порты сервиса аутентификации.
package api

import (
	"context"

	"davazen/internal/auth/domain/entities"
	"davazen/internal/auth/domain/services"
)

// AuthUseCase определяет основной порт для операций аутентификации.
type AuthUseCase interface {
	Register(ctx context.Context, email, password string) (*services.Session, error)

	Login(ctx context.Context, email, password string) (*services.Session, error)

	ValidateToken(ctx context.Context, token string) (*entities.Identity, error)
}

// UserUseCase определяет порт для чтения профиля.
type UserUseCase interface {
	GetProfile(ctx context.Context, email string) (*entities.Identity, error)
}
