package apiclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"
)

// testLogger создаёт logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// setupMockAPI создаёт mock HTTP-сервер API платформы.
func setupMockAPI(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

// fakeTokenSource — TokenSource с фиксированным токеном и управляемым refresh.
type fakeTokenSource struct {
	access       string
	refreshed    string
	refreshErr   error
	refreshCalls atomic.Int32
}

func (f *fakeTokenSource) AccessToken() string {
	return f.access
}

func (f *fakeTokenSource) Refresh(ctx context.Context) (string, error) {
	f.refreshCalls.Add(1)
	if f.refreshErr != nil {
		return "", f.refreshErr
	}
	return f.refreshed, nil
}

// TestClient_Do_ForcedHeaders проверяет принудительные заголовки:
// Authorization и Content-Type ставятся поверх заголовков вызывающего.
func TestClient_Do_ForcedHeaders(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("ожидался Authorization=Bearer tok-1, получен %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("ожидался Content-Type=application/json, получен %q", got)
		}
		if got := r.Header.Get("X-Custom"); got != "custom-value" {
			t.Errorf("заголовок вызывающего X-Custom потерян, получен %q", got)
		}
		w.WriteHeader(http.StatusOK)
	})

	client := New(server.URL, 5*time.Second, testLogger())
	ts := &fakeTokenSource{access: "tok-1"}

	extra := http.Header{}
	extra.Set("X-Custom", "custom-value")
	extra.Set("Content-Type", "text/plain") // обязан быть перезаписан
	extra.Set("Authorization", "Bearer attacker")

	resp, err := client.Do(context.Background(), ts, http.MethodGet, server.URL+"/api/test/", nil, extra)
	if err != nil {
		t.Fatalf("Ошибка Do: %v", err)
	}
	resp.Body.Close()

	if n := ts.refreshCalls.Load(); n != 0 {
		t.Errorf("refresh не должен вызываться без 401, вызван %d раз", n)
	}
}

// TestClient_Do_NoTokenNoHeader проверяет, что при отсутствии access token
// заголовок Authorization не ставится вовсе.
func TestClient_Do_NoTokenNoHeader(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header["Authorization"]; ok {
			t.Error("Authorization не должен присутствовать при пустом токене")
		}
		w.WriteHeader(http.StatusOK)
	})

	client := New(server.URL, 5*time.Second, testLogger())
	ts := &fakeTokenSource{access: "", refreshErr: errors.New("нет refresh token")}

	resp, err := client.Do(context.Background(), ts, http.MethodGet, server.URL+"/api/test/", nil, nil)
	if err != nil {
		t.Fatalf("Ошибка Do: %v", err)
	}
	resp.Body.Close()
}

// TestClient_Do_RefreshRetry проверяет однократный refresh-and-retry:
// первый запрос получает 401, refresh вызывается ровно один раз,
// повтор идёт с новым токеном и его ответ возвращается вызывающему.
func TestClient_Do_RefreshRetry(t *testing.T) {
	var requests atomic.Int32
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		n := requests.Add(1)
		auth := r.Header.Get("Authorization")
		switch n {
		case 1:
			if auth != "Bearer stale" {
				t.Errorf("первый запрос: ожидался Bearer stale, получен %q", auth)
			}
			w.WriteHeader(http.StatusUnauthorized)
		case 2:
			if auth != "Bearer fresh" {
				t.Errorf("повтор: ожидался Bearer fresh, получен %q", auth)
			}
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, `{"ok":true}`)
		default:
			t.Errorf("лишний запрос #%d", n)
		}
	})

	client := New(server.URL, 5*time.Second, testLogger())
	ts := &fakeTokenSource{access: "stale", refreshed: "fresh"}

	resp, err := client.Do(context.Background(), ts, http.MethodGet, server.URL+"/api/test/", nil, nil)
	if err != nil {
		t.Fatalf("Ошибка Do: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("ожидался статус 200 после повтора, получен %d", resp.StatusCode)
	}
	if n := ts.refreshCalls.Load(); n != 1 {
		t.Errorf("ожидался ровно 1 вызов refresh, получено %d", n)
	}
}

// TestClient_Do_RetryResultReturned проверяет, что повторный 401 после
// успешного refresh возвращается вызывающему как есть, без второго refresh.
func TestClient_Do_RetryResultReturned(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client := New(server.URL, 5*time.Second, testLogger())
	ts := &fakeTokenSource{access: "stale", refreshed: "fresh"}

	resp, err := client.Do(context.Background(), ts, http.MethodGet, server.URL+"/api/test/", nil, nil)
	if err != nil {
		t.Fatalf("Ошибка Do: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("ожидался статус 401 повтора, получен %d", resp.StatusCode)
	}
	if n := ts.refreshCalls.Load(); n != 1 {
		t.Errorf("ожидался ровно 1 вызов refresh, получено %d", n)
	}
}

// TestClient_Do_RefreshFailed проверяет отображение неудачного refresh
// в ErrSessionExpired.
func TestClient_Do_RefreshFailed(t *testing.T) {
	var requests atomic.Int32
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	client := New(server.URL, 5*time.Second, testLogger())
	ts := &fakeTokenSource{access: "stale", refreshErr: errors.New("refresh отклонён")}

	_, err := client.Do(context.Background(), ts, http.MethodGet, server.URL+"/api/test/", nil, nil)
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("ожидалась ErrSessionExpired, получено %v", err)
	}
	if n := requests.Load(); n != 1 {
		t.Errorf("повтор не должен выполняться при неудачном refresh, запросов: %d", n)
	}
}

// TestClient_Do_Body проверяет, что тело запроса доходит до сервера
// и при повторе после refresh отправляется заново.
func TestClient_Do_Body(t *testing.T) {
	var requests atomic.Int32
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"name":"test"}` {
			t.Errorf("запрос #%d: тело %q", requests.Load()+1, body)
		}
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	client := New(server.URL, 5*time.Second, testLogger())
	ts := &fakeTokenSource{access: "stale", refreshed: "fresh"}

	resp, err := client.Do(context.Background(), ts, http.MethodPost, server.URL+"/api/test/", []byte(`{"name":"test"}`), nil)
	if err != nil {
		t.Fatalf("Ошибка Do: %v", err)
	}
	resp.Body.Close()

	if n := requests.Load(); n != 2 {
		t.Errorf("ожидалось 2 запроса (оригинал + повтор), получено %d", n)
	}
}

// TestClient_doJSON_StatusMapping проверяет отображение статусов в ошибки.
func TestClient_doJSON_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"403 в ErrForbidden", http.StatusForbidden, `{"error":"Accès refusé"}`, ErrForbidden},
		{"404 в ErrNotFound", http.StatusNotFound, `{"detail":"Not found."}`, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})

			client := New(server.URL, 5*time.Second, testLogger())
			ts := &fakeTokenSource{access: "tok"}

			_, err := client.doJSON(context.Background(), ts, http.MethodGet, server.URL+"/api/test/", nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ожидалась %v, получено %v", tt.wantErr, err)
			}
		})
	}
}

// TestClient_doJSON_APIError проверяет извлечение сообщения из тела
// непредвиденного ответа.
func TestClient_doJSON_APIError(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"Ce nom d'utilisateur existe déjà"}`)
	})

	client := New(server.URL, 5*time.Second, testLogger())
	ts := &fakeTokenSource{access: "tok"}

	_, err := client.doJSON(context.Background(), ts, http.MethodPost, server.URL+"/api/test/", map[string]string{"username": "dup"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("ожидалась *APIError, получено %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("ожидался StatusCode=400, получен %d", apiErr.StatusCode)
	}
	if apiErr.Message != "Ce nom d'utilisateur existe déjà" {
		t.Errorf("неожиданное сообщение: %q", apiErr.Message)
	}
}
