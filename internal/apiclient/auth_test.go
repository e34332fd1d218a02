package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"
)

// TestClient_Login_Success проверяет успешный вход.
func TestClient_Login_Success(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login/" {
			t.Errorf("неожиданный путь %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("ожидался POST, получен %s", r.Method)
		}

		var creds map[string]string
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &creds); err != nil {
			t.Errorf("тело запроса не JSON: %v", err)
		}
		if creds["username"] != "student" || creds["password"] != "secret" {
			t.Errorf("неожиданные учётные данные: %v", creds)
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"access": "acc-token",
			"refresh": "ref-token",
			"user": {"id": 7, "username": "student", "is_staff": false},
			"message": "Connexion réussie",
			"sessions_invalidated": 1
		}`)
	})

	client := New(server.URL, 5*time.Second, testLogger())

	result, err := client.Login(context.Background(), "student", "secret")
	if err != nil {
		t.Fatalf("Ошибка Login: %v", err)
	}

	if !result.OK {
		t.Fatalf("ожидался успешный вход, получено сообщение %q", result.ErrorMessage)
	}
	if result.Response.Access != "acc-token" {
		t.Errorf("ожидался access=acc-token, получен %s", result.Response.Access)
	}
	if result.Response.Refresh != "ref-token" {
		t.Errorf("ожидался refresh=ref-token, получен %s", result.Response.Refresh)
	}
	if result.Response.User.ID != 7 {
		t.Errorf("ожидался user.id=7, получен %d", result.Response.User.ID)
	}
	if result.Response.SessionsInvalidated != 1 {
		t.Errorf("ожидалось sessions_invalidated=1, получено %d", result.Response.SessionsInvalidated)
	}
}

// TestClient_Login_Rejected проверяет отказ backend'а: это штатный
// LoginResult с сообщением, а не ошибка.
func TestClient_Login_Rejected(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"non_field_errors":["Identifiants invalides"]}`)
	})

	client := New(server.URL, 5*time.Second, testLogger())

	result, err := client.Login(context.Background(), "student", "wrong")
	if err != nil {
		t.Fatalf("отказ входа не должен быть ошибкой: %v", err)
	}
	if result.OK {
		t.Fatal("вход не должен быть успешным")
	}
	if result.ErrorMessage != "Identifiants invalides" {
		t.Errorf("неожиданное сообщение: %q", result.ErrorMessage)
	}
}

// TestClient_RefreshToken проверяет обмен refresh token на access token.
func TestClient_RefreshToken(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/refresh/" {
			t.Errorf("неожиданный путь %s", r.URL.Path)
		}

		var payload map[string]string
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &payload)
		if payload["refresh"] != "ref-token" {
			t.Errorf("ожидался refresh=ref-token, получен %q", payload["refresh"])
		}

		fmt.Fprint(w, `{"access":"new-access"}`)
	})

	client := New(server.URL, 5*time.Second, testLogger())

	access, err := client.RefreshToken(context.Background(), "ref-token")
	if err != nil {
		t.Fatalf("Ошибка RefreshToken: %v", err)
	}
	if access != "new-access" {
		t.Errorf("ожидался new-access, получен %s", access)
	}
}

// TestClient_RefreshToken_Rejected проверяет отказ refresh.
func TestClient_RefreshToken_Rejected(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"detail":"Token is invalid or expired"}`)
	})

	client := New(server.URL, 5*time.Second, testLogger())

	if _, err := client.RefreshToken(context.Background(), "stale"); err == nil {
		t.Fatal("ожидалась ошибка при отклонённом refresh")
	}
}

// TestClient_Me проверяет получение данных пользователя по access token.
func TestClient_Me(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer acc" {
			t.Errorf("ожидался Bearer acc, получен %q", got)
		}
		fmt.Fprint(w, `{"user":{"id":3,"username":"admin","is_staff":true}}`)
	})

	client := New(server.URL, 5*time.Second, testLogger())

	user, err := client.Me(context.Background(), "acc")
	if err != nil {
		t.Fatalf("Ошибка Me: %v", err)
	}
	if user.ID != 3 || user.Username != "admin" || !user.IsStaff {
		t.Errorf("неожиданный пользователь: %+v", user)
	}
}

// TestClient_Me_Expired проверяет отображение 401 в ErrSessionExpired.
func TestClient_Me_Expired(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client := New(server.URL, 5*time.Second, testLogger())

	_, err := client.Me(context.Background(), "stale")
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("ожидалась ErrSessionExpired, получено %v", err)
	}
}

// TestClient_Logout проверяет payload выхода.
func TestClient_Logout(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer acc" {
			t.Errorf("ожидался Bearer acc, получен %q", got)
		}

		var payload map[string]string
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &payload)
		if payload["refresh"] != "ref" {
			t.Errorf("ожидался refresh=ref, получен %q", payload["refresh"])
		}

		fmt.Fprint(w, `{"message":"Déconnexion réussie"}`)
	})

	client := New(server.URL, 5*time.Second, testLogger())

	if err := client.Logout(context.Background(), "acc", "ref"); err != nil {
		t.Fatalf("Ошибка Logout: %v", err)
	}
}

// TestClient_Logout_ServerError проверяет, что сбой backend'а при выходе
// возвращается как ошибка (вызывающий трактует её как best-effort).
func TestClient_Logout_ServerError(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client := New(server.URL, 5*time.Second, testLogger())

	if err := client.Logout(context.Background(), "acc", "ref"); err == nil {
		t.Fatal("ожидалась ошибка при статусе 500")
	}
}
