package config_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"davazen/internal/client/config"
	"davazen/pkg/logger"
)

func TestLoad_Defaults(t *testing.T) {

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 5, cfg.Breaker.ErrorThreshold)
	assert.Equal(t, logger.Development, cfg.Logging.GetEnvironment())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DAVAZEN_API_URL", "https://api.example.com")
	t.Setenv("DAVAZEN_API_EMAIL", "a@x.com")
	t.Setenv("DAVAZEN_API_RETRY_ATTEMPTS", "5")
	t.Setenv("DAVAZEN_LOGGER_MODE", "production")

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, "a@x.com", cfg.Email)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, logger.Production, cfg.Logging.GetEnvironment())
}

func TestPolicies(t *testing.T) {
	errNever := errors.New("never")
	retry := config.RetryConfig{MaxAttempts: 4, InitialBackoff: time.Millisecond, MaxBackoff: time.Second}
	policy := retry.RetryPolicy(func(err error) bool { return !errors.Is(err, errNever) })

	assert.Equal(t, 4, policy.MaxAttempts)
	assert.Equal(t, 2.0, policy.BackoffFactor)
	assert.False(t, policy.ShouldRetry(errNever))

	breaker := config.BreakerConfig{ErrorThreshold: 2, Timeout: time.Second, SuccessThreshold: 1}
	cb := breaker.BreakerPolicy(nil)
	assert.Equal(t, 2, cb.ErrorThreshold)
	assert.Nil(t, cb.IsFailure)
}
