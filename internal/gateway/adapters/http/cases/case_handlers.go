// Package cases содержит HTTP обработчики дел и заметок.
package cases

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"davazen/internal/cases/adapters/portal"
	"davazen/internal/cases/domain/entities"
	"davazen/internal/cases/ports/api"
	"davazen/internal/gateway/adapters/http/middleware"
	"davazen/internal/gateway/adapters/http/request"
	"davazen/internal/gateway/adapters/http/response"
	"davazen/internal/gateway/app/dto"
	"davazen/pkg/apperr"
	"davazen/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerList       = "case handler: list"
	LogHandlerCreate     = "case handler: create"
	LogHandlerBatch      = "case handler: batch"
	LogHandlerImportHTML = "case handler: import html"
	LogHandlerGet        = "case handler: get"
	LogHandlerUpdate     = "case handler: update"
	LogHandlerDelete     = "case handler: delete"
	LogHandlerAddNote    = "case handler: add note"
	LogHandlerListNotes  = "case handler: list notes"

	ErrorUnauthorized = "unauthorized"

	paramID = "id"

	errCtxList      = "list cases"
	errCtxCreate    = "create case"
	errCtxBatch     = "import cases"
	errCtxParseHTML = "parse portal page"
	errCtxGet       = "get case"
	errCtxUpdate    = "update case"
	errCtxDelete    = "delete case"
	errCtxAddNote   = "add note"
	errCtxListNotes = "list notes"
)

// ErrEmptyHTML - пустое тело импорта страницы портала.
var ErrEmptyHTML = apperr.Validation("request body must contain the portal HTML page")

// Handler содержит HTTP обработчики дел.
type Handler struct {
	cases api.CaseUseCase
}

// NewHandler создает новый экземпляр обработчика дел.
func NewHandler(cases api.CaseUseCase) *Handler {
	return &Handler{cases: cases}
}

// List возвращает дела пользователя с необязательными поиском и сортировкой.
func (h *Handler) List(ctx fiber.Ctx) error {
	requestCtx := response.Context(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerList)

	identity, ok := middleware.Identity(ctx)
	if !ok {
		return response.Fail(ctx, fiber.StatusUnauthorized, ErrorUnauthorized)
	}

	query, err := dto.ListCasesQuery{
		Q:     ctx.Query("q"),
		Sort:  ctx.Query("sort"),
		Order: ctx.Query("order"),
	}.ToListQuery()
	if err != nil {
		return err
	}

	items, err := h.cases.ListByOwner(requestCtx, identity.ID, query)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxList, err)
	}

	return response.OK(ctx, dto.ItemsResponse[*entities.Case]{Items: items})
}

// Create создает одно дело.
func (h *Handler) Create(ctx fiber.Ctx) error {
	requestCtx := response.Context(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerCreate)

	identity, ok := middleware.Identity(ctx)
	if !ok {
		return response.Fail(ctx, fiber.StatusUnauthorized, ErrorUnauthorized)
	}

	var req dto.CreateCaseRequest
	if err := request.BindAndValidate(ctx, &req); err != nil {
		return err
	}

	created, err := h.cases.Create(requestCtx, identity.ID, req.Draft())
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxCreate, err)
	}

	return response.OK(ctx, created)
}

// Batch импортирует массив дел без дублей по номеру дела.
func (h *Handler) Batch(ctx fiber.Ctx) error {
	requestCtx := response.Context(ctx)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerBatch)

	identity, ok := middleware.Identity(ctx)
	if !ok {
		return response.Fail(ctx, fiber.StatusUnauthorized, ErrorUnauthorized)
	}

	var batch []dto.CreateCaseRequest
	if err := request.BindJSON(ctx, &batch); err != nil {
		return err
	}

	drafts, err := dto.Drafts(batch)
	if err != nil {
		return err
	}

	return h.importDrafts(ctx, identity.ID, drafts)
}

// ImportHTML разбирает сохраненную страницу портала и импортирует найденные дела.
func (h *Handler) ImportHTML(ctx fiber.Ctx) error {
	requestCtx := response.Context(ctx)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerImportHTML)

	identity, ok := middleware.Identity(ctx)
	if !ok {
		return response.Fail(ctx, fiber.StatusUnauthorized, ErrorUnauthorized)
	}

	body := ctx.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return ErrEmptyHTML
	}

	drafts, err := portal.ParseTable(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxParseHTML, err)
	}
	log.Debug(requestCtx, LogHandlerImportHTML, zap.Int("rows", len(drafts)))

	return h.importDrafts(ctx, identity.ID, drafts)
}

func (h *Handler) importDrafts(ctx fiber.Ctx, userID string, drafts []entities.CaseDraft) error {
	created, err := h.cases.ImportBatch(response.Context(ctx), userID, drafts)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxBatch, err)
	}
	return response.OK(ctx, created)
}

// Get возвращает дело по id.
func (h *Handler) Get(ctx fiber.Ctx) error {
	requestCtx := response.Context(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerGet)

	identity, ok := middleware.Identity(ctx)
	if !ok {
		return response.Fail(ctx, fiber.StatusUnauthorized, ErrorUnauthorized)
	}

	c, err := h.cases.Get(requestCtx, ctx.Params(paramID), identity.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxGet, err)
	}

	return response.OK(ctx, c)
}

// Update применяет частичное обновление дела.
func (h *Handler) Update(ctx fiber.Ctx) error {
	requestCtx := response.Context(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerUpdate)

	identity, ok := middleware.Identity(ctx)
	if !ok {
		return response.Fail(ctx, fiber.StatusUnauthorized, ErrorUnauthorized)
	}

	var req dto.UpdateCaseRequest
	if err := request.BindJSON(ctx, &req); err != nil {
		return err
	}

	c, err := h.cases.Patch(requestCtx, ctx.Params(paramID), identity.ID, req.Patch())
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxUpdate, err)
	}

	return response.OK(ctx, c)
}

// Delete удаляет дело.
func (h *Handler) Delete(ctx fiber.Ctx) error {
	requestCtx := response.Context(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerDelete)

	identity, ok := middleware.Identity(ctx)
	if !ok {
		return response.Fail(ctx, fiber.StatusUnauthorized, ErrorUnauthorized)
	}

	id := ctx.Params(paramID)
	if err := h.cases.Delete(requestCtx, id, identity.ID); err != nil {
		return fmt.Errorf("%s: %w", errCtxDelete, err)
	}

	return response.OK(ctx, dto.DeleteResponse{ID: id, Deleted: true})
}

// AddNote добавляет заметку к делу.
func (h *Handler) AddNote(ctx fiber.Ctx) error {
	requestCtx := response.Context(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerAddNote)

	identity, ok := middleware.Identity(ctx)
	if !ok {
		return response.Fail(ctx, fiber.StatusUnauthorized, ErrorUnauthorized)
	}

	var req dto.AddNoteRequest
	if err := request.BindAndValidate(ctx, &req); err != nil {
		return err
	}

	c, err := h.cases.AppendNote(requestCtx, ctx.Params(paramID), identity.ID, req.Content)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxAddNote, err)
	}

	return response.OK(ctx, c)
}

// ListNotes возвращает заметки всех дел пользователя, новые первыми.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	requestCtx := response.Context(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerListNotes)

	identity, ok := middleware.Identity(ctx)
	if !ok {
		return response.Fail(ctx, fiber.StatusUnauthorized, ErrorUnauthorized)
	}

	notes, err := h.cases.ListNotes(requestCtx, identity.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxListNotes, err)
	}

	return response.OK(ctx, dto.ItemsResponse[entities.NoteView]{Items: notes})
}
