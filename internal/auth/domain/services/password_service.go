package services

import (
	"errors"

	"davazen/pkg/apperr"
)

// MinPasswordLength - минимальная длина пароля.
const MinPasswordLength = 6

// Ошибки паролей.
var (
	ErrHashingFailed    = errors.New("failed to hash password")
	ErrPasswordTooShort = apperr.Validation("password must be at least 6 characters")
	ErrPasswordTooLong  = apperr.Validation("password is too long")
)
