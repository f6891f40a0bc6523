package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"davazen/internal/storage"
	"davazen/internal/storage/adapters/redis"
	"davazen/internal/storage/storagetest"
)

func mockRedisServer(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func newStore(t *testing.T, s *miniredis.Miniredis, namespace string) *redis.Store {
	t.Helper()
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redis.New(client, namespace)
}

func TestStoreContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		return newStore(t, mockRedisServer(t), "")
	})
}

func TestStoreNamespace(t *testing.T) {
	ctx := context.Background()
	s := mockRedisServer(t)

	first := newStore(t, s, "one:")
	second := newStore(t, s, "two:")

	require.NoError(t, first.CreateOrReplace(ctx, "case/1", []byte("a")))

	assert.True(t, s.Exists("one:case/1"))

	_, err := second.ReadByKey(ctx, "case/1")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	entries, err := second.ListByPrefix(ctx, "case/")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStoreGlobCharactersInPrefix(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, mockRedisServer(t), "")

	require.NoError(t, store.CreateOrReplace(ctx, "user/a*b@x.com", []byte("1")))
	require.NoError(t, store.CreateOrReplace(ctx, "user/axb@x.com", []byte("2")))

	entries, err := store.ListByPrefix(ctx, "user/a*")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "user/a*b@x.com", entries[0].Key)
}

func TestStoreConnectionError(t *testing.T) {
	ctx := context.Background()
	s := mockRedisServer(t)
	store := newStore(t, s, "")
	s.Close()

	_, err := store.ReadByKey(ctx, "case/1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrKeyNotFound)
	assert.Contains(t, err.Error(), redis.ErrorFailedToGet)
}
