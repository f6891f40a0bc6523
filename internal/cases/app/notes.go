package app

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"davazen/internal/cases/domain/entities"
	"davazen/pkg/logger"
)

const (
	methodAppendNote = "AppendNote"
	methodListNotes  = "ListNotes"

	msgNoteAppended   = "note appended"
	msgErrStoreNote   = "failed to store note"
	msgNotesCollected = "notes collected"

	errCtxAppendingNote = "appending note"
	errCtxListingNotes  = "listing notes"
)

// AppendNote добавляет заметку к делу под блокировкой ключа дела.
func (uc *CaseUseCase) AppendNote(ctx context.Context, id, requester, content string) (*entities.Case, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAppendNote), zap.String("caseID", id))

	unlock := uc.locks.Lock(id)
	defer unlock()

	c, err := uc.load(ctx, log, id, requester)
	if err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%s: %w", errCtxAppendingNote, entities.ErrNoteContentEmpty)
	}

	c.Notes = append(c.Notes, entities.Note{
		ID:        uc.newID(),
		Content:   content,
		CreatedAt: uc.now().UTC(),
	})

	if err := uc.repo.Put(ctx, c); err != nil {
		log.Error(ctx, msgErrStoreNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxAppendingNote, err)
	}

	log.Info(ctx, msgNoteAppended, zap.Int("notes", len(c.Notes)))
	return c, nil
}

// ListNotes возвращает заметки всех дел пользователя, новые первыми.
func (uc *CaseUseCase) ListNotes(ctx context.Context, requester string) ([]entities.NoteView, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListNotes), zap.String("userID", requester))

	owned, err := uc.owned(ctx, requester)
	if err != nil {
		log.Error(ctx, msgErrListCases, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingNotes, err)
	}

	views := make([]entities.NoteView, 0)
	for _, c := range owned {
		for _, n := range c.Notes {
			views = append(views, entities.NoteView{
				ID:         n.ID,
				Content:    n.Content,
				CreatedAt:  n.CreatedAt,
				CaseID:     c.ID,
				CourtName:  c.CourtName,
				FileNumber: c.FileNumber,
			})
		}
	}

	slices.SortStableFunc(views, func(a, b entities.NoteView) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	log.Debug(ctx, msgNotesCollected, zap.Int("count", len(views)))
	return views, nil
}
