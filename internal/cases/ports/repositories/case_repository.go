// Package repositories определяет порт хранения дел.
package repositories

import (
	"context"

	"davazen/internal/cases/domain/entities"
)

// CaseRepository хранит дела целиком. Get возвращает entities.ErrCaseNotFound для неизвестного id.
type CaseRepository interface {
	Create(ctx context.Context, c *entities.Case) error
	Get(ctx context.Context, id string) (*entities.Case, error)
	Put(ctx context.Context, c *entities.Case) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entities.Case, error)
}
