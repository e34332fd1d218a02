// auth.go — операции аутентификации.
// Login, RefreshToken и Me с явным токеном работают без TokenSource:
// они вызываются контроллером сессии, который сам владеет токенами.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// LoginResult — исход попытки входа.
// ErrorMessage заполнено при отклонении учётных данных backend'ом;
// это штатный исход формы входа, а не ошибка транспорта.
type LoginResult struct {
	OK           bool
	Response     *LoginResponse
	ErrorMessage string
}

// Login выполняет вход по логину/паролю.
// Ошибка возвращается только при сбое транспорта или декодирования;
// отказ backend'а (неверные учётные данные, неактивный аккаунт)
// приходит как LoginResult с ErrorMessage.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("сериализация учётных данных: %w", err)
	}

	resp, err := c.post(ctx, c.endpoints.Login(), payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("чтение ответа входа: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := ExtractMessage(body, loginErrorRules, "Ошибка входа")
		c.logger.Info("Вход отклонён backend'ом",
			slog.String("username", username),
			slog.Int("status", resp.StatusCode),
		)
		return &LoginResult{ErrorMessage: msg}, nil
	}

	var lr LoginResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return nil, fmt.Errorf("декодирование ответа входа: %w", err)
	}
	return &LoginResult{OK: true, Response: &lr}, nil
}

// Logout инвалидирует refresh token на сервере.
// Вызывающий трактует ошибку как best-effort: локальная сессия
// очищается независимо от исхода.
func (c *Client) Logout(ctx context.Context, access, refresh string) error {
	payload, err := json.Marshal(map[string]string{"refresh": refresh})
	if err != nil {
		return fmt.Errorf("сериализация payload выхода: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoints.Logout(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("создание запроса выхода: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("запрос выхода: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("выход: backend вернул статус %d", resp.StatusCode)
	}
	return nil
}

// RefreshToken обменивает refresh token на новый access token.
// Refresh token при этом не ротируется — backend возвращает только access.
func (c *Client) RefreshToken(ctx context.Context, refresh string) (string, error) {
	payload, err := json.Marshal(map[string]string{"refresh": refresh})
	if err != nil {
		return "", fmt.Errorf("сериализация payload refresh: %w", err)
	}

	resp, err := c.post(ctx, c.endpoints.Refresh(), payload)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("чтение ответа refresh: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("refresh отклонён: статус %d", resp.StatusCode)
	}

	var out struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("декодирование ответа refresh: %w", err)
	}
	if out.Access == "" {
		return "", fmt.Errorf("ответ refresh не содержит access token")
	}
	return out.Access, nil
}

// Me возвращает данные пользователя по явному access token.
// ErrSessionExpired при 401 — токен истёк или отозван.
func (c *Client) Me(ctx context.Context, access string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoints.Me(), nil)
	if err != nil {
		return nil, fmt.Errorf("создание запроса me: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+access)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("запрос me: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("чтение ответа me: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("me: %w", ErrSessionExpired)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    ExtractMessage(body, writeErrorRules, "Ошибка сервера"),
		}
	}

	var out struct {
		User User `json:"user"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("декодирование ответа me: %w", err)
	}
	return &out.User, nil
}

// Sessions возвращает активные сессии текущего пользователя.
func (c *Client) Sessions(ctx context.Context, ts TokenSource) ([]Session, error) {
	var out struct {
		Sessions []Session `json:"sessions"`
	}
	if err := c.getJSON(ctx, ts, c.endpoints.Sessions(), &out); err != nil {
		return nil, err
	}
	return out.Sessions, nil
}

// post выполняет неаутентифицированный POST с JSON-телом.
func (c *Client) post(ctx context.Context, rawURL string, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("создание запроса %s: %w", rawURL, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("запрос %s: %w", rawURL, err)
	}
	return resp, nil
}
