// Package redis реализует хранилище ключ-значение поверх Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"davazen/internal/storage"
	"davazen/pkg/logger"
)

// DefaultNamespace - префикс всех ключей сервиса в Redis.
const DefaultNamespace = "davazen:"

const (
	scanBatch = 500

	ErrorFailedToGet    = "failed to get value from redis"
	ErrorFailedToSet    = "failed to set value in redis"
	ErrorFailedToScan   = "failed to scan keys in redis"
	ErrorFailedToDelete = "failed to delete value from redis"
	ErrorFailedToClose  = "failed to close redis connection"
)

var globReplacer = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// Store реализует storage.Store поверх Redis.
type Store struct {
	client    redis.UniversalClient
	namespace string
}

// New создает хранилище. Пустой namespace заменяется на DefaultNamespace.
func New(client redis.UniversalClient, namespace string) *Store {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Store{client: client, namespace: namespace}
}

var _ storage.Store = (*Store)(nil)

func (s *Store) key(k string) string {
	return s.namespace + k
}

// CreateOrReplace записывает значение без срока жизни.
func (s *Store) CreateOrReplace(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToSet, zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}
	return nil
}

// CreateIfAbsent записывает значение через SETNX.
func (s *Store) CreateIfAbsent(ctx context.Context, key string, value []byte) error {
	ok, err := s.client.SetNX(ctx, s.key(key), value, 0).Result()
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToSet, zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}
	if !ok {
		return storage.ErrKeyExists
	}
	return nil
}

// ReadByKey возвращает значение.
func (s *Store) ReadByKey(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrKeyNotFound
		}
		logger.Log(ctx).Error(ctx, ErrorFailedToGet, zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}
	return value, nil
}

// ListByPrefix собирает ключи через SCAN и читает значения одним MGET.
func (s *Store) ListByPrefix(ctx context.Context, prefix string) ([]storage.Entry, error) {
	log := logger.Log(ctx).With(zap.String("prefix", prefix))
	pattern := globReplacer.Replace(s.key(prefix)) + "*"

	var keys []string
	iter := s.client.Scan(ctx, 0, pattern, scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Error(ctx, ErrorFailedToScan, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToScan, err)
	}

	entries := make([]storage.Entry, 0, len(keys))
	if len(keys) == 0 {
		return entries, nil
	}

	slices.Sort(keys)
	keys = slices.Compact(keys)

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		log.Error(ctx, ErrorFailedToGet, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	for i, v := range values {
		str, ok := v.(string)
		if !ok {
			// Ключ удален между SCAN и MGET.
			continue
		}
		entries = append(entries, storage.Entry{
			Key:   strings.TrimPrefix(keys[i], s.namespace),
			Value: []byte(str),
		})
	}
	return entries, nil
}

// DeleteByKey удаляет ключ.
func (s *Store) DeleteByKey(ctx context.Context, key string) error {
	n, err := s.client.Del(ctx, s.key(key)).Result()
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToDelete, zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDelete, err)
	}
	if n == 0 {
		return storage.ErrKeyNotFound
	}
	return nil
}

// Close закрывает соединение с Redis.
func (s *Store) Close(context.Context) error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
