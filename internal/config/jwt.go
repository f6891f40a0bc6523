package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL - срок жизни токена по умолчанию.
const DefaultTokenTTL = 7 * 24 * time.Hour

// JWTConfig содержит настройки токенов и хеширования паролей.
type JWTConfig struct {
	Secret     string `yaml:"secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL   string `yaml:"token_ttl" env:"JWT_TOKEN_TTL" env-default:"168h"`
	BCryptCost int    `yaml:"bcrypt_cost" env:"DAVAZEN_BCRYPT_COST" env-default:"10"`
}

// GetTokenTTL возвращает срок жизни токена.
func (c *JWTConfig) GetTokenTTL() time.Duration {
	duration, err := time.ParseDuration(c.TokenTTL)
	if err != nil || duration <= 0 {
		return DefaultTokenTTL
	}
	return duration
}

// GetBCryptCost возвращает стоимость bcrypt в допустимых пределах.
func (c *JWTConfig) GetBCryptCost() int {
	if c.BCryptCost < bcrypt.MinCost || c.BCryptCost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return c.BCryptCost
}
