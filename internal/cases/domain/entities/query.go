package entities

import (
	"strings"
	"time"

	"davazen/pkg/apperr"
)

// Поля, по которым допускается сортировка.
const (
	SortCourtName  = "courtName"
	SortFileNumber = "fileNumber"
	SortParties    = "parties"
	SortTarafAdi   = "tarafAdi"
	SortCaseStatus = "caseStatus"
)

// ErrInvalidSortField - неизвестное поле сортировки.
var ErrInvalidSortField = apperr.Validation(
	"sort must be one of courtName, fileNumber, parties, tarafAdi, caseStatus")

// ListQuery - необязательные фильтр и сортировка списка дел.
// Пустой SortBy сохраняет порядок добавления.
type ListQuery struct {
	Search string
	SortBy string
	Desc   bool
}

// Validate проверяет поле сортировки.
func (q ListQuery) Validate() error {
	switch q.SortBy {
	case "", SortCourtName, SortFileNumber, SortParties, SortTarafAdi, SortCaseStatus:
		return nil
	default:
		return ErrInvalidSortField
	}
}

// Field возвращает значение текстового поля по имени сортировки.
func (c *Case) Field(name string) string {
	switch name {
	case SortCourtName:
		return c.CourtName
	case SortFileNumber:
		return c.FileNumber
	case SortParties:
		return c.Parties
	case SortTarafAdi:
		return c.TarafAdi
	case SortCaseStatus:
		return c.CaseStatus
	default:
		return ""
	}
}

// Matches выполняет поиск подстроки без учета регистра по текстовым полям.
func (c *Case) Matches(search string) bool {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return true
	}
	for _, field := range []string{c.CourtName, c.FileNumber, c.Parties, c.TarafAdi, c.CaseStatus} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// NoteView - заметка вместе с кратким описанием дела для общей ленты.
type NoteView struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	CaseID     string    `json:"caseId"`
	CourtName  string    `json:"courtName"`
	FileNumber string    `json:"fileNumber"`
}
