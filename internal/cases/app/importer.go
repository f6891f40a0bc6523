package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"davazen/internal/cases/domain/entities"
	"davazen/pkg/logger"
)

const (
	methodImportBatch = "ImportBatch"

	msgImportingBatch   = "importing case batch"
	msgBatchImported    = "case batch imported"
	msgInvalidCandidate = "invalid candidate in batch"
	msgErrImportCase    = "failed to import case"

	errCtxImporting = "importing cases"
)

// ImportBatch создает дела из пакета, пропуская номера дел, которые уже есть у пользователя.
// Повтор номера внутри пакета создается один раз, по первому вхождению.
// Проверка дублей и создание не атомарны: параллельные импорты могут создать дубль.
func (uc *CaseUseCase) ImportBatch(ctx context.Context, requester string, candidates []entities.CaseDraft) ([]*entities.Case, error) {
	log := logger.Log(ctx).With(zap.String("method", methodImportBatch), zap.String("userID", requester))
	log.Debug(ctx, msgImportingBatch, zap.Int("candidates", len(candidates)))

	for i := range candidates {
		if err := candidates[i].Validate(); err != nil {
			log.Debug(ctx, msgInvalidCandidate, zap.Int("index", i), zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxImporting, entities.InvalidCandidateError(i, err))
		}
	}

	existing, err := uc.owned(ctx, requester)
	if err != nil {
		log.Error(ctx, msgErrListCases, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxImporting, err)
	}

	seen := make(map[string]struct{}, len(existing)+len(candidates))
	for _, c := range existing {
		seen[c.FileNumber] = struct{}{}
	}

	created := make([]*entities.Case, 0, len(candidates))
	for _, draft := range candidates {
		if _, dup := seen[draft.FileNumber]; dup {
			continue
		}
		seen[draft.FileNumber] = struct{}{}

		c := entities.NewCase(uc.newID(), requester, draft)
		if err := uc.repo.Create(ctx, c); err != nil {
			log.Error(ctx, msgErrImportCase, zap.String("fileNumber", draft.FileNumber), zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxImporting, err)
		}
		created = append(created, c)
	}

	log.Info(ctx, msgBatchImported,
		zap.Int("candidates", len(candidates)),
		zap.Int("created", len(created)))
	return created, nil
}
