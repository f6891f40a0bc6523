// Package storage описывает хранилище ключ-значение, на котором построены
// все сущности сервиса, и типизированную коллекцию с индексом идентификаторов.
package storage

import (
	"context"
	"errors"
)

// Ошибки хранилища.
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrKeyExists   = errors.New("key already exists")
)

// Entry - пара ключ-значение.
type Entry struct {
	Key   string
	Value []byte
}

// Store - узкий интерфейс хранилища. Каждая операция атомарна в пределах одного ключа.
type Store interface {
	// CreateOrReplace записывает значение, перезаписывая существующее.
	CreateOrReplace(ctx context.Context, key string, value []byte) error
	// CreateIfAbsent записывает значение, только если ключа нет, иначе ErrKeyExists.
	CreateIfAbsent(ctx context.Context, key string, value []byte) error
	// ReadByKey возвращает значение или ErrKeyNotFound.
	ReadByKey(ctx context.Context, key string) ([]byte, error)
	// ListByPrefix возвращает все записи с ключом, начинающимся с prefix, в порядке ключей.
	ListByPrefix(ctx context.Context, prefix string) ([]Entry, error)
	// DeleteByKey удаляет ключ или возвращает ErrKeyNotFound.
	DeleteByKey(ctx context.Context, key string) error
	// Close освобождает ресурсы драйвера.
	Close(ctx context.Context) error
}
