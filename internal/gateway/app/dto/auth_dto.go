// Package dto содержит объекты передачи данных HTTP API и их проверку.
package dto

import (
	"time"

	"davazen/internal/auth/domain/entities"
	"davazen/internal/auth/domain/services"
)

// RegisterRequest содержит данные для регистрации пользователя.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse - токен и пользователь после регистрации или входа.
type SessionResponse struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	User      entities.Identity `json:"user"`
}

// NewSessionResponse собирает ответ из сессии.
func NewSessionResponse(s *services.Session) SessionResponse {
	return SessionResponse{Token: s.Token, ExpiresAt: s.ExpiresAt, User: s.User}
}
