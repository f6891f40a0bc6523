// Package storagetest содержит общий набор проверок для драйверов storage.Store.
package storagetest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"davazen/internal/storage"
)

// Run проверяет контракт storage.Store на хранилище, которое возвращает newStore.
// newStore вызывается для каждого подтеста и должен возвращать пустое хранилище.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("read missing key", func(t *testing.T) {
		s := newStore(t)
		_, err := s.ReadByKey(ctx, "case/none")
		assert.ErrorIs(t, err, storage.ErrKeyNotFound)
	})

	t.Run("create or replace overwrites", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.CreateOrReplace(ctx, "case/1", []byte("v1")))
		require.NoError(t, s.CreateOrReplace(ctx, "case/1", []byte("v2")))

		got, err := s.ReadByKey(ctx, "case/1")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), got)
	})

	t.Run("create if absent keeps first value", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.CreateIfAbsent(ctx, "user/a@x.com", []byte("first")))

		err := s.CreateIfAbsent(ctx, "user/a@x.com", []byte("second"))
		assert.ErrorIs(t, err, storage.ErrKeyExists)

		got, err := s.ReadByKey(ctx, "user/a@x.com")
		require.NoError(t, err)
		assert.Equal(t, []byte("first"), got)
	})

	t.Run("concurrent create if absent has one winner", func(t *testing.T) {
		s := newStore(t)

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			winners int
		)
		for i := range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := s.CreateIfAbsent(ctx, "user/race@x.com", []byte(fmt.Sprint(i))); err == nil {
					mu.Lock()
					winners++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, winners)
	})

	t.Run("list by prefix", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.CreateOrReplace(ctx, "case/b", []byte("2")))
		require.NoError(t, s.CreateOrReplace(ctx, "case/a", []byte("1")))
		require.NoError(t, s.CreateOrReplace(ctx, "user/a_b@x.com", []byte("u")))
		require.NoError(t, s.CreateOrReplace(ctx, "index/case", []byte("[]")))

		entries, err := s.ListByPrefix(ctx, "case/")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "case/a", entries[0].Key)
		assert.Equal(t, []byte("1"), entries[0].Value)
		assert.Equal(t, "case/b", entries[1].Key)

		entries, err = s.ListByPrefix(ctx, "user/a_")
		require.NoError(t, err)
		require.Len(t, entries, 1)

		entries, err = s.ListByPrefix(ctx, "note/")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.CreateOrReplace(ctx, "case/1", []byte("v")))

		require.NoError(t, s.DeleteByKey(ctx, "case/1"))
		_, err := s.ReadByKey(ctx, "case/1")
		assert.ErrorIs(t, err, storage.ErrKeyNotFound)

		assert.ErrorIs(t, s.DeleteByKey(ctx, "case/1"), storage.ErrKeyNotFound)
	})
}
