// Пакет apiclient — HTTP-клиент REST API платформы eduplatform.
// client.go — аутентифицированный fetch: подстановка bearer-токена и
// однократный refresh-and-retry при 401.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// TokenSource — источник access token для авторизации запросов.
// Refresh вызывается клиентом ровно один раз при получении 401 и обязан
// вернуть новый access token либо ошибку; реализация (session.Controller)
// коалесцирует конкурентные попытки refresh.
type TokenSource interface {
	// AccessToken возвращает текущий access token ("" — токен отсутствует).
	AccessToken() string
	// Refresh обновляет access token через refresh token и возвращает новый.
	Refresh(ctx context.Context) (string, error)
}

// Client — HTTP-клиент API платформы.
type Client struct {
	httpClient *http.Client
	endpoints  *Endpoints
	logger     *slog.Logger
}

// New создаёт клиент API платформы.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoints:  NewEndpoints(baseURL),
		logger:     logger.With(slog.String("component", "api_client")),
	}
}

// Endpoints возвращает реестр endpoint'ов клиента.
func (c *Client) Endpoints() *Endpoints {
	return c.endpoints
}

// Do выполняет аутентифицированный запрос к API платформы.
//
// Алгоритм:
//  1. Читается access token; при его отсутствии заголовок Authorization
//     не ставится — запрос упадёт на стороне сервера как неавторизованный.
//  2. К заголовкам вызывающего добавляются принудительные
//     Authorization: Bearer и Content-Type: application/json (заголовки
//     вызывающего выигрывают только там, где этот шаг их не ставит).
//  3. Запрос выполняется.
//  4. При 401 — ровно одна попытка refresh через TokenSource; при успехе
//     запрос повторяется один раз с новым токеном и возвращается ответ
//     повтора независимо от его статуса. При неудаче refresh возвращается
//     ErrSessionExpired — вызывающий обязан перенаправить на экран входа.
//
// Повторный 401 после успешного refresh возвращается вызывающему как есть.
func (c *Client) Do(ctx context.Context, ts TokenSource, method, rawURL string, body []byte, extra http.Header) (*http.Response, error) {
	resp, err := c.issue(ctx, method, rawURL, body, extra, ts.AccessToken())
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// 401 — однократный refresh-and-retry
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	newAccess, refreshErr := ts.Refresh(ctx)
	if refreshErr != nil {
		c.logger.Debug("Refresh не удался, сессия истекла",
			slog.String("url", rawURL),
			slog.String("error", refreshErr.Error()),
		)
		return nil, fmt.Errorf("повтор запроса %s: %w", rawURL, ErrSessionExpired)
	}

	return c.issue(ctx, method, rawURL, body, extra, newAccess)
}

// issue выполняет один HTTP-запрос с указанным access token.
func (c *Client) issue(ctx context.Context, method, rawURL string, body []byte, extra http.Header, access string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("создание запроса %s %s: %w", method, rawURL, err)
	}

	// Заголовки вызывающего — первыми, принудительные — поверх
	for k, vals := range extra {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("запрос %s %s: %w", method, rawURL, err)
	}
	return resp, nil
}

// doJSON выполняет аутентифицированный запрос, читает тело и отображает
// статусы в ошибки клиента: 403 → ErrForbidden, 404 → ErrNotFound, прочие
// не-2xx → *APIError с сообщением из error-документа backend'а.
func (c *Client) doJSON(ctx context.Context, ts TokenSource, method, rawURL string, payload any) ([]byte, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("сериализация payload для %s: %w", rawURL, err)
		}
	}

	resp, err := c.Do(ctx, ts, method, rawURL, body, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("чтение ответа %s: %w", rawURL, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return respBody, nil
	case resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%s: %w", rawURL, ErrForbidden)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", rawURL, ErrNotFound)
	default:
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    ExtractMessage(respBody, writeErrorRules, "Ошибка сервера"),
		}
	}
}

// getJSON выполняет GET и декодирует ответ в out.
func (c *Client) getJSON(ctx context.Context, ts TokenSource, rawURL string, out any) error {
	body, err := c.doJSON(ctx, ts, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("декодирование ответа %s: %w", rawURL, err)
	}
	return nil
}
