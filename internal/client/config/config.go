// Package config содержит конфигурацию клиента API для утилиты импорта.
package config

import (
	"context"
	"fmt"
	"time"

	"davazen/internal/client/resilience"
	pkgconfig "davazen/pkg/config"
	"davazen/pkg/logger"
)

// ServiceName - имя утилиты в логах конфигурации.
const ServiceName = "uyapimport"

// ErrFailedLoadConfig - ошибка загрузки конфигурации клиента.
const ErrFailedLoadConfig = "failed to load client configuration"

// Config - настройки подключения к API.
type Config struct {
	BaseURL  string        `yaml:"base_url" env:"DAVAZEN_API_URL" env-default:"http://localhost:8080"`
	Email    string        `yaml:"email" env:"DAVAZEN_API_EMAIL"`
	Password string        `yaml:"password" env:"DAVAZEN_API_PASSWORD"`
	Timeout  time.Duration `yaml:"timeout" env:"DAVAZEN_API_TIMEOUT" env-default:"15s"`

	Retry   RetryConfig   `yaml:"retry"`
	Breaker BreakerConfig `yaml:"breaker"`
	Logging LoggingConfig `yaml:"logging"`
}

// RetryConfig - настройки повторов.
type RetryConfig struct {
	MaxAttempts    int           `yaml:"max_attempts" env:"DAVAZEN_API_RETRY_ATTEMPTS" env-default:"3"`
	InitialBackoff time.Duration `yaml:"initial_backoff" env:"DAVAZEN_API_RETRY_BACKOFF" env-default:"200ms"`
	MaxBackoff     time.Duration `yaml:"max_backoff" env:"DAVAZEN_API_RETRY_MAX_BACKOFF" env-default:"2s"`
}

// BreakerConfig - настройки Circuit Breaker.
type BreakerConfig struct {
	ErrorThreshold   int           `yaml:"error_threshold" env:"DAVAZEN_API_BREAKER_THRESHOLD" env-default:"5"`
	Timeout          time.Duration `yaml:"timeout" env:"DAVAZEN_API_BREAKER_TIMEOUT" env-default:"10s"`
	SuccessThreshold int           `yaml:"success_threshold" env:"DAVAZEN_API_BREAKER_SUCCESSES" env-default:"1"`
}

// LoggingConfig содержит настройки логирования утилиты.
type LoggingConfig struct {
	Level string `yaml:"level" env:"DAVAZEN_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"DAVAZEN_LOGGER_MODE" env-default:"development"`
}

// Load загружает конфигурацию клиента.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}
	return cfg, nil
}

// GetEnvironment возвращает режим работы логгера.
func (c *LoggingConfig) GetEnvironment() logger.Environment {
	if c.Mode == "production" {
		return logger.Production
	}
	return logger.Development
}

// RetryPolicy переводит настройки в конфигурацию повторов.
func (c *RetryConfig) RetryPolicy(shouldRetry func(error) bool) resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.MaxAttempts = c.MaxAttempts
	cfg.InitialBackoff = c.InitialBackoff
	cfg.MaxBackoff = c.MaxBackoff
	if shouldRetry != nil {
		cfg.ShouldRetry = shouldRetry
	}
	return cfg
}

// BreakerPolicy переводит настройки в конфигурацию Circuit Breaker.
func (c *BreakerConfig) BreakerPolicy(isFailure func(error) bool) resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		ErrorThreshold:   c.ErrorThreshold,
		Timeout:          c.Timeout,
		SuccessThreshold: c.SuccessThreshold,
		IsFailure:        isFailure,
	}
}
