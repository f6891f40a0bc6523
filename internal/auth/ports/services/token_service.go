package services

import (
	"context"
	"time"

	"davazen/internal/auth/domain/services"
)

// TokenService определяет интерфейс для операций с токенами JWT.
type TokenService interface {
	GenerateToken(ctx context.Context, userID, email string) (string, time.Time, error)

	ValidateToken(ctx context.Context, token string) (*services.JWTClaims, error)
}
