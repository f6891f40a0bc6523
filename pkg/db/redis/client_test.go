package redis_test

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbredis "davazen/pkg/db/redis"
)

func configFor(t *testing.T, s *miniredis.Miniredis) *dbredis.Config {
	t.Helper()
	host, portStr, err := net.SplitHostPort(s.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := dbredis.DefaultConfig()
	cfg.Host = host
	cfg.Port = port
	return cfg
}

func TestNewClient(t *testing.T) {
	ctx := context.Background()

	t.Run("connects to running server", func(t *testing.T) {
		s, err := miniredis.Run()
		require.NoError(t, err)
		defer s.Close()

		client, err := dbredis.NewClient(ctx, configFor(t, s))
		require.NoError(t, err)

		require.NoError(t, client.RawClient().Set(ctx, "k", "v", 0).Err())
		got, err := s.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "v", got)

		require.NoError(t, client.Close(ctx))
	})

	t.Run("fails when server is down", func(t *testing.T) {
		s, err := miniredis.Run()
		require.NoError(t, err)
		cfg := configFor(t, s)
		s.Close()

		cfg.Timeout = 200 * time.Millisecond
		client, err := dbredis.NewClient(ctx, cfg)
		require.Error(t, err)
		assert.Nil(t, client)
		assert.Contains(t, err.Error(), "failed to connect to Redis")
	})
}

func TestConfigAddr(t *testing.T) {
	cfg := dbredis.DefaultConfig()
	assert.Equal(t, "localhost:6379", cfg.Addr())
}
