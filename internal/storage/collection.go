package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"davazen/pkg/logger"
)

const (
	indexPrefix = "index/"

	errCtxEncode      = "encoding entity"
	errCtxDecode      = "decoding entity"
	errCtxReadIndex   = "reading index"
	errCtxWriteIndex  = "writing index"
	errCtxWriteEntity = "writing entity"
	errCtxReadEntity  = "reading entity"
	errCtxDelete      = "deleting entity"
	errCtxList        = "listing entities"
	errCtxRollback    = "rolling back entity"

	msgIndexRepaired  = "index referenced a missing entity"
	msgRollbackFailed = "failed to roll back unindexed entity"
)

// Collection - типизированный доступ к сущностям одного вида.
// Ключ сущности - "<kind>/<id>", упорядоченный список id хранится в "index/<kind>".
// Порядок индекса совпадает с порядком вставки.
type Collection[T any] struct {
	store Store
	kind  string
	mu    sync.Mutex
}

// NewCollection создает коллекцию вида kind поверх store.
func NewCollection[T any](store Store, kind string) *Collection[T] {
	return &Collection[T]{store: store, kind: kind}
}

// Kind возвращает вид сущностей коллекции.
func (c *Collection[T]) Kind() string {
	return c.kind
}

func (c *Collection[T]) key(id string) string {
	return c.kind + "/" + id
}

func (c *Collection[T]) indexKey() string {
	return indexPrefix + c.kind
}

// Create записывает новую сущность. Если id уже занят, возвращает ErrKeyExists.
// При ошибке обновления индекса записанная сущность удаляется.
func (c *Collection[T]) Create(ctx context.Context, id string, entity *T) error {
	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxEncode, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.CreateIfAbsent(ctx, c.key(id), data); err != nil {
		return fmt.Errorf("%s: %w", errCtxWriteEntity, err)
	}

	ids, err := c.readIndex(ctx)
	if err != nil {
		return c.rollbackCreate(ctx, id, err)
	}
	if slices.Contains(ids, id) {
		return nil
	}
	if err := c.writeIndex(ctx, append(ids, id)); err != nil {
		return c.rollbackCreate(ctx, id, err)
	}
	return nil
}

// rollbackCreate удаляет сущность, которую не удалось внести в индекс.
func (c *Collection[T]) rollbackCreate(ctx context.Context, id string, cause error) error {
	if err := c.store.DeleteByKey(ctx, c.key(id)); err != nil && !errors.Is(err, ErrKeyNotFound) {
		logger.Log(ctx).Error(ctx, msgRollbackFailed,
			zap.String("kind", c.kind), zap.String("id", id), zap.Error(err))
		return errors.Join(cause, fmt.Errorf("%s: %w", errCtxRollback, err))
	}
	return cause
}

// Put перезаписывает существующую сущность целиком. Индекс не меняется.
func (c *Collection[T]) Put(ctx context.Context, id string, entity *T) error {
	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxEncode, err)
	}
	if err := c.store.CreateOrReplace(ctx, c.key(id), data); err != nil {
		return fmt.Errorf("%s: %w", errCtxWriteEntity, err)
	}
	return nil
}

// Get возвращает сущность или ошибку, оборачивающую ErrKeyNotFound.
func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	data, err := c.store.ReadByKey(ctx, c.key(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxReadEntity, err)
	}
	return decode[T](data)
}

// Exists сообщает, есть ли сущность с таким id.
func (c *Collection[T]) Exists(ctx context.Context, id string) (bool, error) {
	_, err := c.store.ReadByKey(ctx, c.key(id))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrKeyNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("%s: %w", errCtxReadEntity, err)
	}
}

// Delete удаляет сущность и ее запись в индексе.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.DeleteByKey(ctx, c.key(id)); err != nil {
		return fmt.Errorf("%s: %w", errCtxDelete, err)
	}

	ids, err := c.readIndex(ctx)
	if err != nil {
		return err
	}
	return c.writeIndex(ctx, slices.DeleteFunc(ids, func(v string) bool { return v == id }))
}

// List возвращает все сущности в порядке вставки.
func (c *Collection[T]) List(ctx context.Context) ([]*T, error) {
	c.mu.Lock()
	ids, err := c.readIndex(ctx)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}

	entries, err := c.store.ListByPrefix(ctx, c.kind+"/")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxList, err)
	}

	byKey := make(map[string][]byte, len(entries))
	for _, e := range entries {
		byKey[e.Key] = e.Value
	}

	result := make([]*T, 0, len(ids))
	for _, id := range ids {
		data, ok := byKey[c.key(id)]
		if !ok {
			logger.Log(ctx).Warn(ctx, msgIndexRepaired,
				zap.String("kind", c.kind), zap.String("id", id))
			continue
		}
		entity, err := decode[T](data)
		if err != nil {
			return nil, err
		}
		result = append(result, entity)
	}
	return result, nil
}

func (c *Collection[T]) readIndex(ctx context.Context) ([]string, error) {
	data, err := c.store.ReadByKey(ctx, c.indexKey())
	if errors.Is(err, ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxReadIndex, err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxReadIndex, err)
	}
	return ids, nil
}

func (c *Collection[T]) writeIndex(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxWriteIndex, err)
	}
	if err := c.store.CreateOrReplace(ctx, c.indexKey(), data); err != nil {
		return fmt.Errorf("%s: %w", errCtxWriteIndex, err)
	}
	return nil
}

func decode[T any](data []byte) (*T, error) {
	var entity T
	if err := json.Unmarshal(data, &entity); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxDecode, err)
	}
	return &entity, nil
}
