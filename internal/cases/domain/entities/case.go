// Package entities содержит сущности домена дел: дело, заметку, черновик и патч.
package entities

import (
	"fmt"
	"strings"
	"time"

	"davazen/pkg/apperr"
)

// Ошибки домена дел.
var (
	ErrCaseNotFound       = apperr.NotFound("case not found")
	ErrForbidden          = apperr.Forbidden("you do not have access to this case")
	ErrCourtNameRequired  = apperr.Validation("courtName is required")
	ErrFileNumberRequired = apperr.Validation("fileNumber is required")
	ErrNoteContentEmpty   = apperr.Validation("note content is required")
)

// Note - заметка к делу. Хранится внутри дела, порядок - порядок добавления.
type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Case - судебное дело пользователя.
type Case struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	CourtName  string `json:"courtName"`
	FileNumber string `json:"fileNumber"`
	Parties    string `json:"parties"`
	TarafAdi   string `json:"tarafAdi"`
	CaseStatus string `json:"caseStatus"`
	Notes      []Note `json:"notes"`
}

// CaseDraft - дело без id, владельца и заметок: то, что приходит из формы или со страницы портала.
type CaseDraft struct {
	CourtName  string `json:"courtName"`
	FileNumber string `json:"fileNumber"`
	Parties    string `json:"parties"`
	TarafAdi   string `json:"tarafAdi"`
	CaseStatus string `json:"caseStatus"`
}

// Validate проверяет обязательные поля черновика.
func (d *CaseDraft) Validate() error {
	if strings.TrimSpace(d.CourtName) == "" {
		return ErrCourtNameRequired
	}
	if strings.TrimSpace(d.FileNumber) == "" {
		return ErrFileNumberRequired
	}
	return nil
}

// NewCase создает дело из черновика.
func NewCase(id, ownerID string, d CaseDraft) *Case {
	return &Case{
		ID:         id,
		UserID:     ownerID,
		CourtName:  d.CourtName,
		FileNumber: d.FileNumber,
		Parties:    d.Parties,
		TarafAdi:   d.TarafAdi,
		CaseStatus: d.CaseStatus,
		Notes:      []Note{},
	}
}

// CasePatch - частичное обновление. nil означает "поле не передано".
// id и userId в патч не входят и изменены быть не могут.
type CasePatch struct {
	CourtName  *string `json:"courtName,omitempty"`
	FileNumber *string `json:"fileNumber,omitempty"`
	Parties    *string `json:"parties,omitempty"`
	TarafAdi   *string `json:"tarafAdi,omitempty"`
	CaseStatus *string `json:"caseStatus,omitempty"`
	Notes      *[]Note `json:"notes,omitempty"`
}

// Validate запрещает пустые обязательные поля в патче.
func (p *CasePatch) Validate() error {
	if p.CourtName != nil && strings.TrimSpace(*p.CourtName) == "" {
		return ErrCourtNameRequired
	}
	if p.FileNumber != nil && strings.TrimSpace(*p.FileNumber) == "" {
		return ErrFileNumberRequired
	}
	return nil
}

// IsEmpty сообщает, что патч ничего не меняет.
func (p *CasePatch) IsEmpty() bool {
	return p.CourtName == nil && p.FileNumber == nil && p.Parties == nil &&
		p.TarafAdi == nil && p.CaseStatus == nil && p.Notes == nil
}

// Apply перезаписывает переданные поля. Заметки заменяются целиком.
func (c *Case) Apply(p *CasePatch) {
	if p.CourtName != nil {
		c.CourtName = *p.CourtName
	}
	if p.FileNumber != nil {
		c.FileNumber = *p.FileNumber
	}
	if p.Parties != nil {
		c.Parties = *p.Parties
	}
	if p.TarafAdi != nil {
		c.TarafAdi = *p.TarafAdi
	}
	if p.CaseStatus != nil {
		c.CaseStatus = *p.CaseStatus
	}
	if p.Notes != nil {
		c.Notes = append([]Note{}, *p.Notes...)
	}
}

// OwnedBy сообщает, принадлежит ли дело пользователю.
func (c *Case) OwnedBy(userID string) bool {
	return c.UserID == userID
}

// InvalidCandidateError сообщает, какой элемент пакета не прошел проверку.
func InvalidCandidateError(index int, err error) error {
	msg, ok := apperr.Message(err)
	if !ok {
		msg = err.Error()
	}
	return apperr.Validation(fmt.Sprintf("candidate %d: %s", index, msg))
}
