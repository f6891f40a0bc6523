package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"davazen/internal/config"
	"davazen/pkg/apperr"
	"davazen/pkg/logger"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DAVAZEN_ENV_FILE", "")

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.GetAddress())
	assert.Equal(t, config.DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.GetTokenTTL())
	assert.Equal(t, 5*time.Second, cfg.Shutdown.GetTimeout())
	assert.Equal(t, logger.Production, cfg.Logging.GetEnvironment())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_TOKEN_TTL", "1h")
	t.Setenv("DAVAZEN_STORAGE_DRIVER", config.DriverSQLite)
	t.Setenv("DAVAZEN_SQLITE_PATH", "/tmp/cases.db")
	t.Setenv("DAVAZEN_LOGGER_MODE", "development")

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.JWT.GetTokenTTL())
	assert.Equal(t, "/tmp/cases.db", cfg.SQLite.Path)
	assert.Equal(t, logger.Development, cfg.Logging.GetEnvironment())
}

func TestLoadUnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DAVAZEN_STORAGE_DRIVER", "bolt")

	_, err := config.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConfiguration)
}

func TestValidateMissingSecret(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: config.DriverMemory}}

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConfiguration)
}

func TestGetters(t *testing.T) {
	pg := config.PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "d"}
	assert.Equal(t, "postgres://u:p@db:5432/d?sslmode=disable", pg.GetConnectionURL())
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=d sslmode=disable", pg.GetDSN())

	jwtCfg := config.JWTConfig{TokenTTL: "garbage", BCryptCost: 1000}
	assert.Equal(t, config.DefaultTokenTTL, jwtCfg.GetTokenTTL())
	assert.Equal(t, 10, jwtCfg.GetBCryptCost())

	rc := config.RedisConfig{Host: "r", Port: 6380, Timeout: time.Second}
	assert.Equal(t, "r:6380", rc.ClientConfig().Addr())
}
