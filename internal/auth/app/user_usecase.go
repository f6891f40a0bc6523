package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"davazen/internal/auth/domain/entities"
	"davazen/internal/auth/ports/api"
	"davazen/internal/auth/ports/repositories"
	"davazen/pkg/logger"
)

const (
	methodGetProfile = "GetProfile"

	msgRequestingProfile = "requesting user profile"
	msgProfileRetrieved  = "user profile successfully retrieved"

	errCtxFetchingProfile = "fetching user profile"
)

// UserUseCaseImpl реализует интерфейс UserUseCase.
type UserUseCaseImpl struct {
	userRepo repositories.UserRepository
}

// NewUserUseCase создает сценарий чтения профиля.
func NewUserUseCase(userRepo repositories.UserRepository) api.UserUseCase {
	return &UserUseCaseImpl{userRepo: userRepo}
}

// GetProfile возвращает публичные данные пользователя.
func (u *UserUseCaseImpl) GetProfile(ctx context.Context, email string) (*entities.Identity, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetProfile), zap.String("email", email))
	log.Debug(ctx, msgRequestingProfile)

	user, err := u.userRepo.Get(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFetchingProfile, err)
	}

	identity := user.Identity()
	log.Debug(ctx, msgProfileRetrieved, zap.String("userID", identity.ID))
	return &identity, nil
}
