// Package app содержит сценарии аутентификации: регистрацию, вход и проверку токена.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"davazen/internal/auth/domain/entities"
	"davazen/internal/auth/domain/services"
	"davazen/internal/auth/ports/api"
	"davazen/internal/auth/ports/repositories"
	svc "davazen/internal/auth/ports/services"
	"davazen/pkg/apperr"
	"davazen/pkg/logger"
)

const (
	methodRegister      = "Register"
	methodLogin         = "Login"
	methodValidateToken = "ValidateToken"

	msgStartRegistration   = "starting user registration"
	msgInvalidInput        = "invalid registration input"
	msgEmailExists         = "user with this email already exists"
	msgUserRegistered      = "user registered successfully"
	msgLoginAttempt        = "login attempt"
	msgLoginNonExistent    = "login attempt with non-existent email"
	msgInvalidPasswordAuth = "invalid password provided"
	msgUserLoggedIn        = "user logged in successfully"
	msgTokenRejected       = "token rejected"

	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrGenerateToken     = "failed to generate token"
	msgErrFindingUser       = "error finding user by email"
	msgErrVerifyingPassword = "error verifying password"

	errCtxValidatingInput   = "validating credentials"
	errCtxHashingPassword   = "hashing password"
	errCtxCreatingUser      = "creating user"
	errCtxGeneratingToken   = "generating token"
	errCtxFindingUser       = "finding user"
	errCtxVerifyingPassword = "verifying password"
	errCtxValidatingToken   = "validating token"
)

// AuthUseCaseImpl реализует интерфейс AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Register создает нового пользователя и выдает ему токен.
func (a *AuthUseCaseImpl) Register(ctx context.Context, email, password string) (*services.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("email", email))
	log.Debug(ctx, msgStartRegistration)

	if err := validateCredentials(email, password); err != nil {
		log.Debug(ctx, msgInvalidInput, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, err)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, err)
		}
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	newUser := &entities.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hashedPassword,
	}

	createdUser, err := a.userRepo.Create(ctx, newUser)
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			log.Debug(ctx, msgEmailExists)
			return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, services.ErrEmailAlreadyExists)
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", createdUser.ID))
	return a.issue(ctx, log, createdUser)
}

// Login аутентифицирует пользователя по email и паролю.
func (a *AuthUseCaseImpl) Login(ctx context.Context, email, password string) (*services.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("email", email))
	log.Debug(ctx, msgLoginAttempt)

	if email == "" || password == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, services.ErrEmptyCredentials)
	}

	user, err := a.userRepo.Get(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, fmt.Errorf("%s: %w", errCtxFindingUser, services.ErrUnknownEmail)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth, zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, services.ErrInvalidCredentials)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))
	return a.issue(ctx, log, user)
}

// ValidateToken проверяет токен и возвращает личность из него без обращения к хранилищу.
func (a *AuthUseCaseImpl) ValidateToken(ctx context.Context, token string) (*entities.Identity, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateToken))

	claims, err := a.tokenSvc.ValidateToken(ctx, token)
	if err != nil {
		log.Debug(ctx, msgTokenRejected, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, err)
	}

	return &entities.Identity{ID: claims.UserID, Email: claims.Email}, nil
}

func (a *AuthUseCaseImpl) issue(ctx context.Context, log *logger.Logger, user *entities.User) (*services.Session, error) {
	token, expiresAt, err := a.tokenSvc.GenerateToken(ctx, user.ID, user.Email)
	if err != nil {
		log.Error(ctx, msgErrGenerateToken, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingToken, err)
	}

	return &services.Session{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.Identity(),
	}, nil
}

func validateCredentials(email, password string) error {
	if email == "" || password == "" {
		return services.ErrEmptyCredentials
	}
	if len(password) < services.MinPasswordLength {
		return services.ErrPasswordTooShort
	}
	return nil
}
