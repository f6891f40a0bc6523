// Package config предоставляет функциональность для загрузки конфигурации из переменных окружения.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"davazen/pkg/logger"
)

const (
	msgLoadingConfiguration    = "loading configuration"
	msgConfigurationLoaded     = "configuration loaded successfully"
	msgFailedLoadConfiguration = "failed to load configuration"

	errFailedCreateLogger      = "failed to create logger"
	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// EnvFileVariable - переменная окружения с путем к необязательному .env файлу.
const EnvFileVariable = "DAVAZEN_ENV_FILE"

// Load заполняет структуру T из переменных окружения.
// Если задан DAVAZEN_ENV_FILE и файл существует, значения читаются из него,
// а переменные окружения имеют приоритет.
func Load[T any](ctx context.Context, serviceName string) (*T, error) {
	log, err := logger.FromContext(ctx)
	if err != nil {
		log, err = logger.NewLogger(logger.Development, "info")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errFailedCreateLogger, err)
		}
		ctx = logger.NewContext(ctx, log)
	}

	envPath := os.Getenv(EnvFileVariable)

	log.Info(ctx, msgLoadingConfiguration,
		zap.String(attrService, serviceName),
		zap.String(attrPath, envPath))

	var cfg T

	if envPath != "" && fileExists(envPath) {
		err = cleanenv.ReadConfig(envPath, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		log.Error(ctx, msgFailedLoadConfiguration,
			zap.String(attrService, serviceName),
			zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded,
		zap.String(attrService, serviceName))

	return &cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}
