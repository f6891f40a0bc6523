package dto

import (
	"strings"

	"davazen/internal/cases/domain/entities"
	"davazen/pkg/apperr"
)

// Допустимые значения параметра order.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ErrEmptyBatch - пакет импорта должен быть непустым массивом.
var ErrEmptyBatch = apperr.Validation("request body must be a non-empty array of cases")

// ErrInvalidOrder - неизвестное направление сортировки.
var ErrInvalidOrder = apperr.Validation("order must be asc or desc")

// CreateCaseRequest - тело POST /api/cases и элемент пакета импорта.
type CreateCaseRequest struct {
	CourtName  string `json:"courtName" validate:"required"`
	FileNumber string `json:"fileNumber" validate:"required"`
	Parties    string `json:"parties"`
	TarafAdi   string `json:"tarafAdi"`
	CaseStatus string `json:"caseStatus"`
}

// Draft переводит запрос в черновик дела.
func (r CreateCaseRequest) Draft() entities.CaseDraft {
	return entities.CaseDraft{
		CourtName:  r.CourtName,
		FileNumber: r.FileNumber,
		Parties:    r.Parties,
		TarafAdi:   r.TarafAdi,
		CaseStatus: r.CaseStatus,
	}
}

// Drafts переводит пакет запросов в черновики. Проверка элементов остается импортеру,
// который сообщает индекс неверного элемента.
func Drafts(batch []CreateCaseRequest) ([]entities.CaseDraft, error) {
	if len(batch) == 0 {
		return nil, ErrEmptyBatch
	}
	drafts := make([]entities.CaseDraft, 0, len(batch))
	for _, r := range batch {
		drafts = append(drafts, r.Draft())
	}
	return drafts, nil
}

// UpdateCaseRequest - тело PUT /api/cases/:id. id и userId игнорируются.
type UpdateCaseRequest struct {
	CourtName  *string          `json:"courtName"`
	FileNumber *string          `json:"fileNumber"`
	Parties    *string          `json:"parties"`
	TarafAdi   *string          `json:"tarafAdi"`
	CaseStatus *string          `json:"caseStatus"`
	Notes      *[]entities.Note `json:"notes"`
}

// Patch переводит запрос в патч дела.
func (r UpdateCaseRequest) Patch() entities.CasePatch {
	return entities.CasePatch{
		CourtName:  r.CourtName,
		FileNumber: r.FileNumber,
		Parties:    r.Parties,
		TarafAdi:   r.TarafAdi,
		CaseStatus: r.CaseStatus,
		Notes:      r.Notes,
	}
}

// AddNoteRequest - тело POST /api/cases/:id/notes.
type AddNoteRequest struct {
	Content string `json:"content" validate:"required"`
}

// ListCasesQuery - параметры GET /api/cases.
type ListCasesQuery struct {
	Q     string
	Sort  string
	Order string
}

// ToListQuery проверяет направление сортировки и собирает запрос списка.
func (q ListCasesQuery) ToListQuery() (entities.ListQuery, error) {
	order := strings.ToLower(strings.TrimSpace(q.Order))
	if order != "" && order != OrderAsc && order != OrderDesc {
		return entities.ListQuery{}, ErrInvalidOrder
	}
	lq := entities.ListQuery{
		Search: q.Q,
		SortBy: strings.TrimSpace(q.Sort),
		Desc:   order == OrderDesc,
	}
	if err := lq.Validate(); err != nil {
		return entities.ListQuery{}, err
	}
	return lq, nil
}

// ItemsResponse - список в поле items.
type ItemsResponse[T any] struct {
	Items []T `json:"items"`
}

// DeleteResponse - ответ DELETE /api/cases/:id.
type DeleteResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// HealthResponse - ответ /health.
type HealthResponse struct {
	Status string `json:"status"`
}
