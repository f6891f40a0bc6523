// Package entities содержит сущности домена пользователей.
package entities

import "davazen/pkg/apperr"

// Ошибки домена пользователя.
var (
	ErrUserNotFound = apperr.NotFound("user not found")
	ErrUserExists   = apperr.Conflict("user with this email already exists")
)

// User - учетная запись. Ключ хранения - Email, запись неизменяема после создания.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

// Identity - проверенная личность из токена.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Identity возвращает публичную часть учетной записи.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email}
}
