package repository_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"davazen/internal/auth/adapters/repository"
	"davazen/internal/auth/domain/entities"
	"davazen/internal/storage/adapters/memory"
	"davazen/pkg/apperr"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserRepository(memory.New())

	t.Run("неизвестный email", func(t *testing.T) {
		ok, err := repo.Exists(ctx, "nobody@x.com")
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = repo.Get(ctx, "nobody@x.com")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("создание и чтение", func(t *testing.T) {
		user := &entities.User{ID: "u1", Email: "a@x.com", PasswordHash: "hash-1"}

		created, err := repo.Create(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, *user, *created)

		ok, err := repo.Exists(ctx, "a@x.com")
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := repo.Get(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, "u1", got.ID)
		assert.Equal(t, "hash-1", got.PasswordHash)
	})

	t.Run("повторный email не перезаписывает хеш", func(t *testing.T) {
		_, err := repo.Create(ctx, &entities.User{ID: "u2", Email: "a@x.com", PasswordHash: "hash-2"})
		assert.ErrorIs(t, err, apperr.ErrConflict)

		got, err := repo.Get(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, "u1", got.ID)
		assert.Equal(t, "hash-1", got.PasswordHash)
	})
}

func TestUserRepository_ConcurrentRegistration(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserRepository(memory.New())

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded []string
	)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Create(ctx, &entities.User{ID: id, Email: "race@x.com", PasswordHash: "h-" + id}); err == nil {
				mu.Lock()
				succeeded = append(succeeded, id)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, succeeded, 1)
	got, err := repo.Get(ctx, "race@x.com")
	require.NoError(t, err)
	assert.Equal(t, succeeded[0], got.ID)
	assert.Equal(t, "h-"+succeeded[0], got.PasswordHash)
}
