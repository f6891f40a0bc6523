// Package sqlite реализует хранилище ключ-значение во встроенной базе SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"davazen/internal/storage"
	"davazen/pkg/logger"
)

const (
	queryUpsert = `
        INSERT INTO entities (key, value)
        VALUES (?, ?)
        ON CONFLICT (key) DO UPDATE SET
            value = excluded.value,
            updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
    `
	queryInsertIfAbsent = `
        INSERT INTO entities (key, value)
        VALUES (?, ?)
        ON CONFLICT (key) DO NOTHING
    `
	querySelect = `
        SELECT value FROM entities WHERE key = ?
    `
	querySelectPrefix = `
        SELECT key, value FROM entities
        WHERE substr(key, 1, length(?)) = ?
        ORDER BY key
    `
	queryDelete = `
        DELETE FROM entities WHERE key = ?
    `

	errUpsert     = "error upserting entity"
	errInsert     = "error inserting entity"
	errSelect     = "error querying entity"
	errSelectList = "error querying entities by prefix"
	errScan       = "error scanning entity row"
	errDelete     = "error deleting entity"
	errClose      = "error closing database"
)

// Store реализует storage.Store поверх SQLite.
type Store struct {
	db *sql.DB
}

// New создает хранилище. Таблица entities должна быть создана миграциями.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

var _ storage.Store = (*Store)(nil)

// CreateOrReplace записывает значение.
func (s *Store) CreateOrReplace(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, queryUpsert, key, value); err != nil {
		logger.Log(ctx).Error(ctx, errUpsert, zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%s: %w", errUpsert, err)
	}
	return nil
}

// CreateIfAbsent записывает значение, если ключа нет.
func (s *Store) CreateIfAbsent(ctx context.Context, key string, value []byte) error {
	res, err := s.db.ExecContext(ctx, queryInsertIfAbsent, key, value)
	if err != nil {
		logger.Log(ctx).Error(ctx, errInsert, zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%s: %w", errInsert, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", errInsert, err)
	}
	if n == 0 {
		return storage.ErrKeyExists
	}
	return nil
}

// ReadByKey возвращает значение.
func (s *Store) ReadByKey(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	if err := s.db.QueryRowContext(ctx, querySelect, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrKeyNotFound
		}
		logger.Log(ctx).Error(ctx, errSelect, zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errSelect, err)
	}
	return value, nil
}

// ListByPrefix возвращает записи с префиксом в порядке ключей.
func (s *Store) ListByPrefix(ctx context.Context, prefix string) ([]storage.Entry, error) {
	rows, err := s.db.QueryContext(ctx, querySelectPrefix, prefix, prefix)
	if err != nil {
		logger.Log(ctx).Error(ctx, errSelectList, zap.String("prefix", prefix), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errSelectList, err)
	}
	defer rows.Close()

	entries := make([]storage.Entry, 0)
	for rows.Next() {
		var e storage.Entry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, fmt.Errorf("%s: %w", errScan, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", errSelectList, err)
	}
	return entries, nil
}

// DeleteByKey удаляет ключ.
func (s *Store) DeleteByKey(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, queryDelete, key)
	if err != nil {
		logger.Log(ctx).Error(ctx, errDelete, zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%s: %w", errDelete, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", errDelete, err)
	}
	if n == 0 {
		return storage.ErrKeyNotFound
	}
	return nil
}

// Close закрывает базу.
func (s *Store) Close(context.Context) error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("%s: %w", errClose, err)
	}
	return nil
}
