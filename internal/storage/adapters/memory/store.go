// Package memory реализует хранилище ключ-значение в памяти процесса.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"davazen/internal/storage"
)

// Store - потокобезопасное хранилище в памяти.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New создает пустое хранилище.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

var _ storage.Store = (*Store)(nil)

// CreateOrReplace записывает значение.
func (s *Store) CreateOrReplace(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = slices.Clone(value)
	return nil
}

// CreateIfAbsent записывает значение, если ключа нет.
func (s *Store) CreateIfAbsent(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; ok {
		return storage.ErrKeyExists
	}
	s.data[key] = slices.Clone(value)
	return nil
}

// ReadByKey возвращает копию значения.
func (s *Store) ReadByKey(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	return slices.Clone(v), nil
}

// ListByPrefix возвращает записи с префиксом в порядке ключей.
func (s *Store) ListByPrefix(_ context.Context, prefix string) ([]storage.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]storage.Entry, 0)
	for k, v := range s.data {
		if strings.HasPrefix(k, prefix) {
			entries = append(entries, storage.Entry{Key: k, Value: slices.Clone(v)})
		}
	}
	slices.SortFunc(entries, func(a, b storage.Entry) int { return strings.Compare(a.Key, b.Key) })
	return entries, nil
}

// DeleteByKey удаляет ключ.
func (s *Store) DeleteByKey(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return storage.ErrKeyNotFound
	}
	delete(s.data, key)
	return nil
}

// Close ничего не делает.
func (s *Store) Close(context.Context) error {
	return nil
}
