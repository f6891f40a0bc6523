// Package api определяет входной порт сервиса дел.
package api

import (
	"context"

	"davazen/internal/cases/domain/entities"
)

// CaseUseCase - операции над делами от имени проверенного пользователя.
type CaseUseCase interface {
	Create(ctx context.Context, owner string, draft entities.CaseDraft) (*entities.Case, error)
	Get(ctx context.Context, id, requester string) (*entities.Case, error)
	Patch(ctx context.Context, id, requester string, patch entities.CasePatch) (*entities.Case, error)
	Delete(ctx context.Context, id, requester string) error
	ListByOwner(ctx context.Context, requester string, query entities.ListQuery) ([]*entities.Case, error)

	AppendNote(ctx context.Context, id, requester, content string) (*entities.Case, error)
	ListNotes(ctx context.Context, requester string) ([]entities.NoteView, error)

	ImportBatch(ctx context.Context, requester string, candidates []entities.CaseDraft) ([]*entities.Case, error)
}
