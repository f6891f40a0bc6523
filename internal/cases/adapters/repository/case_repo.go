// Package repository хранит дела в общем хранилище ключ-значение.
package repository

import (
	"context"
	"errors"
	"fmt"

	"davazen/internal/cases/domain/entities"
	"davazen/internal/cases/ports/repositories"
	"davazen/internal/storage"
)

// Kind - вид сущности дела в хранилище.
const Kind = "case"

const (
	errCtxCreate = "creating case"
	errCtxGet    = "reading case"
	errCtxPut    = "writing case"
	errCtxDelete = "deleting case"
	errCtxList   = "listing cases"
)

// CaseRepository реализует repositories.CaseRepository поверх storage.Collection.
type CaseRepository struct {
	cases *storage.Collection[entities.Case]
}

// NewCaseRepository создает репозиторий дел.
func NewCaseRepository(store storage.Store) repositories.CaseRepository {
	return &CaseRepository{cases: storage.NewCollection[entities.Case](store, Kind)}
}

// Create сохраняет новое дело и добавляет его в индекс.
func (r *CaseRepository) Create(ctx context.Context, c *entities.Case) error {
	if err := r.cases.Create(ctx, c.ID, c); err != nil {
		return fmt.Errorf("%s: %w", errCtxCreate, err)
	}
	return nil
}

// Get возвращает дело по id.
func (r *CaseRepository) Get(ctx context.Context, id string) (*entities.Case, error) {
	c, err := r.cases.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, entities.ErrCaseNotFound
		}
		return nil, fmt.Errorf("%s: %w", errCtxGet, err)
	}
	if c.Notes == nil {
		c.Notes = []entities.Note{}
	}
	return c, nil
}

// Put перезаписывает дело целиком.
func (r *CaseRepository) Put(ctx context.Context, c *entities.Case) error {
	if err := r.cases.Put(ctx, c.ID, c); err != nil {
		return fmt.Errorf("%s: %w", errCtxPut, err)
	}
	return nil
}

// Delete удаляет дело и его запись в индексе.
func (r *CaseRepository) Delete(ctx context.Context, id string) error {
	if err := r.cases.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return entities.ErrCaseNotFound
		}
		return fmt.Errorf("%s: %w", errCtxDelete, err)
	}
	return nil
}

// List возвращает все дела в порядке добавления.
func (r *CaseRepository) List(ctx context.Context) ([]*entities.Case, error) {
	all, err := r.cases.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxList, err)
	}
	for _, c := range all {
		if c.Notes == nil {
			c.Notes = []entities.Note{}
		}
	}
	return all, nil
}
