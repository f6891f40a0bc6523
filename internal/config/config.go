// Package config содержит конфигурацию HTTP-сервиса davazen.
package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"davazen/pkg/apperr"
	pkgconfig "davazen/pkg/config"
	"davazen/pkg/logger"
)

// ServiceName - имя сервиса в логах конфигурации.
const ServiceName = "davazen"

// Константы ошибок и сообщений для конфигурации.
const (
	LogConfigSummary    = "effective configuration"
	ErrFailedLoadConfig = "failed to load configuration"
	ErrInvalidConfig    = "invalid configuration"
)

// Config представляет полную конфигурацию сервиса.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
	JWT      JWTConfig      `yaml:"jwt"`
	Storage  StorageConfig  `yaml:"storage"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
}

// Load загружает конфигурацию из переменных окружения и проверяет ее.
func Load(ctx context.Context) (*Config, error) {
	log := logger.Log(ctx)

	cfg, err := pkgconfig.Load[Config](ctx, ServiceName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		log.Error(ctx, ErrInvalidConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrInvalidConfig, err)
	}

	log.Info(ctx, LogConfigSummary,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.Duration("jwt_token_ttl", cfg.JWT.GetTokenTTL()))

	return cfg, nil
}

// Validate проверяет значения, которые cleanenv не может проверить тегами.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return apperr.Configuration("JWT_SECRET is not set")
	}
	switch c.Storage.Driver {
	case DriverMemory, DriverPostgres, DriverRedis, DriverSQLite:
	default:
		return apperr.Configuration(fmt.Sprintf("unknown storage driver %q", c.Storage.Driver))
	}
	return nil
}
