// Package client - клиент HTTP API davazen для утилит командной строки.
// Вызовы выполняются с повторами внутри Circuit Breaker; ответы 4xx не повторяются.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"

	"davazen/internal/cases/domain/entities"
	"davazen/internal/client/config"
	"davazen/internal/client/resilience"
	"davazen/pkg/logger"
)

// Константы для логирования.
const (
	LogLogin       = "logging in"
	LogLoggedIn    = "logged in"
	LogImporting   = "submitting cases"
	LogImported    = "cases submitted"
	LogRequestSent = "api request"

	errCtxEncoding = "encoding request"
	errCtxRequest  = "building request"
	errCtxSending  = "sending request"
	errCtxDecoding = "decoding response"

	pathLogin      = "/api/auth/login"
	pathBatch      = "/api/cases/batch"
	pathImportHTML = "/api/cases/import/html"
	pathCases      = "/api/cases"
	pathHealth     = "/health"

	resilienceName = "davazen-api"
)

// Ошибки клиента.
var (
	ErrNotAuthenticated = errors.New("client is not logged in")
	ErrMissingLogin     = errors.New("email and password are required to log in")
	ErrNothingToSubmit  = errors.New("no cases to submit")
)

// APIError - ответ API с success=false.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Temporary сообщает, что запрос имеет смысл повторить.
func (e *APIError) Temporary() bool {
	return e.Status >= http.StatusInternalServerError || e.Status == http.StatusTooManyRequests
}

// IsTemporary сообщает, что ошибка вызвана отказом сети или сервера, а не запросом.
func IsTemporary(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	return !errors.Is(err, ErrNotAuthenticated)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type session struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

type items[T any] struct {
	Items []T `json:"items"`
}

// Client - клиент HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	resilience *resilience.ServiceResilience

	mu    sync.RWMutex
	token string
}

// New создает клиента по конфигурации.
func New(cfg *config.Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		resilience: resilience.NewServiceResilience(resilienceName,
			cfg.Breaker.BreakerPolicy(IsTemporary),
			cfg.Retry.RetryPolicy(IsTemporary)),
	}
}

// SetToken задает токен, полученный ранее.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token возвращает текущий токен.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Login входит в систему и запоминает токен.
func (c *Client) Login(ctx context.Context, email, password string) error {
	log := logger.Log(ctx).With(zap.String("email", email))
	log.Debug(ctx, LogLogin)

	if email == "" || password == "" {
		return ErrMissingLogin
	}

	var s session
	err := c.call(ctx, http.MethodPost, pathLogin, false,
		jsonBody(map[string]string{"email": email, "password": password}), &s)
	if err != nil {
		return err
	}

	c.SetToken(s.Token)
	log.Info(ctx, LogLoggedIn, zap.String("userID", s.User.ID))
	return nil
}

// ImportBatch отправляет черновики дел. Сервер пропускает уже существующие номера дел,
// поэтому повтор запроса безопасен.
func (c *Client) ImportBatch(ctx context.Context, drafts []entities.CaseDraft) ([]entities.Case, error) {
	if len(drafts) == 0 {
		return nil, ErrNothingToSubmit
	}

	log := logger.Log(ctx)
	log.Info(ctx, LogImporting, zap.Int("candidates", len(drafts)))

	var created []entities.Case
	if err := c.call(ctx, http.MethodPost, pathBatch, true, jsonBody(drafts), &created); err != nil {
		return nil, err
	}

	log.Info(ctx, LogImported, zap.Int("created", len(created)))
	return created, nil
}

// ImportHTML отправляет сохраненную страницу портала на разбор сервером.
func (c *Client) ImportHTML(ctx context.Context, page []byte) ([]entities.Case, error) {
	var created []entities.Case
	body := func() (io.Reader, string, error) {
		return bytes.NewReader(page), "text/html; charset=utf-8", nil
	}
	if err := c.call(ctx, http.MethodPost, pathImportHTML, true, body, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// ListCases возвращает дела текущего пользователя.
func (c *Client) ListCases(ctx context.Context) ([]entities.Case, error) {
	var list items[entities.Case]
	if err := c.call(ctx, http.MethodGet, pathCases, true, nil, &list); err != nil {
		return nil, err
	}
	return list.Items, nil
}

// Health проверяет доступность сервера.
func (c *Client) Health(ctx context.Context) error {
	return c.call(ctx, http.MethodGet, pathHealth, false, nil, nil)
}

// bodyFunc создает тело запроса заново для каждой попытки.
type bodyFunc func() (io.Reader, string, error)

func jsonBody(v any) bodyFunc {
	return func() (io.Reader, string, error) {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", errCtxEncoding, err)
		}
		return bytes.NewReader(raw), "application/json", nil
	}
}

func (c *Client) call(ctx context.Context, method, path string, auth bool, body bodyFunc, out any) error {
	token := c.Token()
	if auth && token == "" {
		return ErrNotAuthenticated
	}

	return c.resilience.ExecuteWithResilience(ctx, method+" "+path, func() error {
		return c.do(ctx, method, path, token, body, out)
	})
}

func (c *Client) do(ctx context.Context, method, path, token string, body bodyFunc, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		var err error
		if reader, contentType, err = body(); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxRequest, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if id, ok := logger.GetRequestID(ctx); ok {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxSending, err)
	}
	defer func() { _ = resp.Body.Close() }()

	logger.Log(ctx).Debug(ctx, LogRequestSent,
		zap.String("http_method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode))

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("%s: %w", errCtxDecoding, err)
	}

	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		return &APIError{Status: resp.StatusCode, Message: env.Error}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%s: %w", errCtxDecoding, err)
	}
	return nil
}
