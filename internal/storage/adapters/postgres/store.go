// Package postgres реализует хранилище ключ-значение в таблице entities PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"davazen/internal/storage"
	"davazen/pkg/logger"
)

const (
	queryUpsert = `
        INSERT INTO entities (key, value)
        VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
    `
	queryInsertIfAbsent = `
        INSERT INTO entities (key, value)
        VALUES ($1, $2)
        ON CONFLICT (key) DO NOTHING
    `
	querySelect = `
        SELECT value
        FROM entities
        WHERE key = $1
    `
	querySelectPrefix = `
        SELECT key, value
        FROM entities
        WHERE starts_with(key, $1)
        ORDER BY key
    `
	queryDelete = `
        DELETE FROM entities
        WHERE key = $1
    `

	errUpsert     = "error upserting entity"
	errInsert     = "error inserting entity"
	errSelect     = "error querying entity"
	errSelectList = "error querying entities by prefix"
	errScan       = "error scanning entity row"
	errDelete     = "error deleting entity"
)

// PgxPoolInterface - подмножество методов pgxpool.Pool, нужное хранилищу.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	Close()
}

// Store реализует storage.Store поверх PostgreSQL.
type Store struct {
	pool PgxPoolInterface
}

// New создает хранилище поверх пула соединений.
func New(pool PgxPoolInterface) *Store {
	return &Store{pool: pool}
}

var _ storage.Store = (*Store)(nil)

func (s *Store) log(ctx context.Context, method string) *logger.Logger {
	return logger.Log(ctx).With(zap.String("repository", "entities"), zap.String("method", method))
}

// CreateOrReplace записывает значение.
func (s *Store) CreateOrReplace(ctx context.Context, key string, value []byte) error {
	if _, err := s.pool.Exec(ctx, queryUpsert, key, value); err != nil {
		s.log(ctx, "CreateOrReplace").Error(ctx, errUpsert, zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%s: %w", errUpsert, err)
	}
	return nil
}

// CreateIfAbsent записывает значение, если ключа нет.
func (s *Store) CreateIfAbsent(ctx context.Context, key string, value []byte) error {
	tag, err := s.pool.Exec(ctx, queryInsertIfAbsent, key, value)
	if err != nil {
		s.log(ctx, "CreateIfAbsent").Error(ctx, errInsert, zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%s: %w", errInsert, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrKeyExists
	}
	return nil
}

// ReadByKey возвращает значение.
func (s *Store) ReadByKey(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx, querySelect, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrKeyNotFound
		}
		s.log(ctx, "ReadByKey").Error(ctx, errSelect, zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errSelect, err)
	}
	return value, nil
}

// ListByPrefix возвращает записи с префиксом в порядке ключей.
func (s *Store) ListByPrefix(ctx context.Context, prefix string) ([]storage.Entry, error) {
	log := s.log(ctx, "ListByPrefix")

	rows, err := s.pool.Query(ctx, querySelectPrefix, prefix)
	if err != nil {
		log.Error(ctx, errSelectList, zap.String("prefix", prefix), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errSelectList, err)
	}
	defer rows.Close()

	entries := make([]storage.Entry, 0)
	for rows.Next() {
		var e storage.Entry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			log.Error(ctx, errScan, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errScan, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, errSelectList, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errSelectList, err)
	}

	return entries, nil
}

// DeleteByKey удаляет ключ.
func (s *Store) DeleteByKey(ctx context.Context, key string) error {
	tag, err := s.pool.Exec(ctx, queryDelete, key)
	if err != nil {
		s.log(ctx, "DeleteByKey").Error(ctx, errDelete, zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%s: %w", errDelete, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrKeyNotFound
	}
	return nil
}

// Close закрывает пул соединений.
func (s *Store) Close(context.Context) error {
	s.pool.Close()
	return nil
}
