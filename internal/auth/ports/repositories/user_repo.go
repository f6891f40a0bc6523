// Package repositories определяет порты хранения учетных записей.
package repositories

import (
	"context"

	"davazen/internal/auth/domain/entities"
)

// UserRepository - хранилище учетных записей с ключом email.
// Записи только создаются, изменение и удаление не поддерживаются.
type UserRepository interface {
	Exists(ctx context.Context, email string) (bool, error)

	// Create возвращает entities.ErrUserExists, если email занят.
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	// Get возвращает entities.ErrUserNotFound, если email неизвестен.
	Get(ctx context.Context, email string) (*entities.User, error)
}
