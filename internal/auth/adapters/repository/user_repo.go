// Package repository хранит учетные записи в общем хранилище ключ-значение.
package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"davazen/internal/auth/domain/entities"
	"davazen/internal/auth/ports/repositories"
	"davazen/internal/storage"
	"davazen/pkg/logger"
)

// Kind - вид сущности пользователя в хранилище.
const Kind = "user"

const (
	msgUserCreated = "user created"

	errCtxCheckingUser = "checking user existence"
	errCtxCreatingUser = "creating user"
	errCtxReadingUser  = "reading user"
)

// UserRepository реализует repositories.UserRepository поверх storage.Collection.
type UserRepository struct {
	users *storage.Collection[entities.User]
}

// NewUserRepository создает репозиторий пользователей.
func NewUserRepository(store storage.Store) repositories.UserRepository {
	return &UserRepository{users: storage.NewCollection[entities.User](store, Kind)}
}

// Exists сообщает, зарегистрирован ли email.
func (r *UserRepository) Exists(ctx context.Context, email string) (bool, error) {
	ok, err := r.users.Exists(ctx, email)
	if err != nil {
		return false, fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	return ok, nil
}

// Create атомарно создает пользователя, если email свободен.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", Kind), zap.String("method", "Create"))

	if err := r.users.Create(ctx, user.Email, user); err != nil {
		if errors.Is(err, storage.ErrKeyExists) {
			return nil, entities.ErrUserExists
		}
		log.Error(ctx, errCtxCreatingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Debug(ctx, msgUserCreated, zap.String("userID", user.ID))
	stored := *user
	return &stored, nil
}

// Get возвращает пользователя по email.
func (r *UserRepository) Get(ctx context.Context, email string) (*entities.User, error) {
	user, err := r.users.Get(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", errCtxReadingUser, err)
	}
	return user, nil
}
