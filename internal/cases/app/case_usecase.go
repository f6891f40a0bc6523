// Package app реализует бизнес-логику дел: хранение с проверкой владельца,
// заметки и импорт пакета дел без дублей по номеру дела.
package app

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"davazen/internal/cases/domain/entities"
	"davazen/internal/cases/ports/api"
	"davazen/internal/cases/ports/repositories"
	"davazen/pkg/keymutex"
	"davazen/pkg/logger"
)

const (
	methodCreate      = "Create"
	methodGet         = "Get"
	methodPatch       = "Patch"
	methodDelete      = "Delete"
	methodListByOwner = "ListByOwner"

	msgCreatingCase  = "creating case"
	msgCaseCreated   = "case created"
	msgCasePatched   = "case patched"
	msgCaseDeleted   = "case deleted"
	msgAccessDenied  = "access to case denied"
	msgInvalidDraft  = "invalid case draft"
	msgInvalidPatch  = "invalid case patch"
	msgCasesListed   = "cases listed"
	msgErrStoreCase  = "failed to store case"
	msgErrLoadCase   = "failed to load case"
	msgErrListCases  = "failed to list cases"
	msgErrDeleteCase = "failed to delete case"

	errCtxValidating = "validating case"
	errCtxCreating   = "creating case"
	errCtxLoading    = "loading case"
	errCtxPatching   = "patching case"
	errCtxDeleting   = "deleting case"
	errCtxListing    = "listing cases"
)

// CaseUseCase реализует api.CaseUseCase.
type CaseUseCase struct {
	repo  repositories.CaseRepository
	locks *keymutex.KeyMutex
	now   func() time.Time
	newID func() string
}

// Option настраивает CaseUseCase.
type Option func(*CaseUseCase)

// WithClock подменяет источник времени для заметок.
func WithClock(now func() time.Time) Option {
	return func(uc *CaseUseCase) { uc.now = now }
}

// WithIDGenerator подменяет генератор идентификаторов.
func WithIDGenerator(newID func() string) Option {
	return func(uc *CaseUseCase) { uc.newID = newID }
}

// NewCaseUseCase создает новый экземпляр CaseUseCase.
func NewCaseUseCase(repo repositories.CaseRepository, opts ...Option) *CaseUseCase {
	uc := &CaseUseCase{
		repo:  repo,
		locks: keymutex.New(keymutex.DefaultStripes),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

var _ api.CaseUseCase = (*CaseUseCase)(nil)

// Create создает дело владельца owner.
func (uc *CaseUseCase) Create(ctx context.Context, owner string, draft entities.CaseDraft) (*entities.Case, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreate), zap.String("userID", owner))
	log.Debug(ctx, msgCreatingCase)

	if err := draft.Validate(); err != nil {
		log.Debug(ctx, msgInvalidDraft, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}

	c := entities.NewCase(uc.newID(), owner, draft)
	if err := uc.repo.Create(ctx, c); err != nil {
		log.Error(ctx, msgErrStoreCase, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreating, err)
	}

	log.Info(ctx, msgCaseCreated, zap.String("caseID", c.ID))
	return c, nil
}

// Get возвращает дело. Сначала проверяется существование, затем владелец.
func (uc *CaseUseCase) Get(ctx context.Context, id, requester string) (*entities.Case, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGet), zap.String("caseID", id))
	return uc.load(ctx, log, id, requester)
}

// Patch перезаписывает переданные поля дела под блокировкой ключа.
func (uc *CaseUseCase) Patch(ctx context.Context, id, requester string, patch entities.CasePatch) (*entities.Case, error) {
	log := logger.Log(ctx).With(zap.String("method", methodPatch), zap.String("caseID", id))

	unlock := uc.locks.Lock(id)
	defer unlock()

	c, err := uc.load(ctx, log, id, requester)
	if err != nil {
		return nil, err
	}

	if err := patch.Validate(); err != nil {
		log.Debug(ctx, msgInvalidPatch, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}
	if patch.IsEmpty() {
		return c, nil
	}

	c.Apply(&patch)
	if err := uc.repo.Put(ctx, c); err != nil {
		log.Error(ctx, msgErrStoreCase, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxPatching, err)
	}

	log.Info(ctx, msgCasePatched)
	return c, nil
}

// Delete удаляет дело владельца.
func (uc *CaseUseCase) Delete(ctx context.Context, id, requester string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDelete), zap.String("caseID", id))

	unlock := uc.locks.Lock(id)
	defer unlock()

	if _, err := uc.load(ctx, log, id, requester); err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		log.Error(ctx, msgErrDeleteCase, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeleting, err)
	}

	log.Info(ctx, msgCaseDeleted)
	return nil
}

// ListByOwner возвращает дела пользователя, по умолчанию в порядке добавления.
func (uc *CaseUseCase) ListByOwner(ctx context.Context, requester string, query entities.ListQuery) ([]*entities.Case, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListByOwner), zap.String("userID", requester))

	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListing, err)
	}

	owned, err := uc.owned(ctx, requester)
	if err != nil {
		log.Error(ctx, msgErrListCases, zap.Error(err))
		return nil, err
	}

	result := slices.DeleteFunc(owned, func(c *entities.Case) bool { return !c.Matches(query.Search) })

	if query.SortBy != "" {
		slices.SortStableFunc(result, func(a, b *entities.Case) int {
			cmp := strings.Compare(strings.ToLower(a.Field(query.SortBy)), strings.ToLower(b.Field(query.SortBy)))
			if query.Desc {
				return -cmp
			}
			return cmp
		})
	}

	log.Debug(ctx, msgCasesListed, zap.Int("count", len(result)))
	return result, nil
}

// owned возвращает все дела пользователя в порядке добавления.
func (uc *CaseUseCase) owned(ctx context.Context, requester string) ([]*entities.Case, error) {
	all, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListing, err)
	}

	result := make([]*entities.Case, 0, len(all))
	for _, c := range all {
		if c.OwnedBy(requester) {
			result = append(result, c)
		}
	}
	return result, nil
}

// load читает дело и проверяет владельца.
func (uc *CaseUseCase) load(ctx context.Context, log *logger.Logger, id, requester string) (*entities.Case, error) {
	c, err := uc.repo.Get(ctx, id)
	if err != nil {
		if !isNotFound(err) {
			log.Error(ctx, msgErrLoadCase, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxLoading, err)
	}

	if !c.OwnedBy(requester) {
		log.Warn(ctx, msgAccessDenied, zap.String("requester", requester))
		return nil, fmt.Errorf("%s: %w", errCtxLoading, entities.ErrForbidden)
	}
	return c, nil
}
