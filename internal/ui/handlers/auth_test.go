package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/eduplatform/frontend-module/internal/middleware"
)

// testLimiter — лимитер, пропускающий всё.
type allowAll struct{}

func (allowAll) Allow(string) bool { return true }

// TestAuthHandler_LoginPage проверяет рендеринг формы входа.
func TestAuthHandler_LoginPage(t *testing.T) {
	_, controller := testEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("запросов к API без cookie быть не должно")
	})

	h := NewAuthHandler(controller, allowAll{}, testLogger())

	rec := httptest.NewRecorder()
	h.HandleLoginPage(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался статус 200, получен %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `action="/login"`) {
		t.Error("форма входа отсутствует")
	}
}

// TestAuthHandler_LoginSubmit_Success проверяет вход: cookie сессии,
// flash-приветствие, redirect на /dashboard.
func TestAuthHandler_LoginSubmit_Success(t *testing.T) {
	_, controller := testEnv(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"access":"acc","refresh":"ref",
			"user":{"id":1,"username":"student"},
			"message":"Добро пожаловать","sessions_invalidated":0
		}`)
	})

	h := NewAuthHandler(controller, allowAll{}, testLogger())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(url.Values{
		"username": {"student"},
		"password": {"secret"},
	}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	h.HandleLoginSubmit(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("ожидался redirect 302, получен %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("ожидался redirect на /dashboard, получен %s", loc)
	}

	var hasSession, hasFlash bool
	for _, c := range rec.Result().Cookies() {
		switch c.Name {
		case "eduplatform_session":
			hasSession = true
		case flashCookieName:
			hasFlash = true
		}
	}
	if !hasSession {
		t.Error("cookie сессии не записан")
	}
	if !hasFlash {
		t.Error("flash-cookie приветствия не записан")
	}
}

// TestAuthHandler_LoginSubmit_Rejected проверяет показ сообщения backend'а
// на форме входа.
func TestAuthHandler_LoginSubmit_Rejected(t *testing.T) {
	_, controller := testEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"non_field_errors":["Identifiants invalides"]}`)
	})

	h := NewAuthHandler(controller, allowAll{}, testLogger())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("username=a&password=b"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	h.HandleLoginSubmit(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("ожидался статус 401, получен %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Identifiants invalides") {
		t.Error("сообщение об ошибке отсутствует на форме")
	}
}

// TestAuthHandler_LoginSubmit_RateLimited проверяет отказ при превышении
// лимита попыток входа.
func TestAuthHandler_LoginSubmit_RateLimited(t *testing.T) {
	_, controller := testEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("запрос не должен дойти до API при превышении лимита")
	})

	limiter := middleware.NewIPRateLimiter(1, time.Hour, 1, time.Hour)
	h := NewAuthHandler(controller, limiter, testLogger())

	send := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("username=&password="))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.RemoteAddr = "10.0.0.1:5000"
		h.HandleLoginSubmit(rec, req)
		return rec
	}

	send() // первая попытка исчерпывает лимит (пустые поля не доходят до API)
	rec := send()

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("ожидался статус 429, получен %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Слишком много попыток") {
		t.Error("сообщение о лимите отсутствует")
	}
}

// TestAuthHandler_Logout проверяет очистку сессии и redirect на /login.
func TestAuthHandler_Logout(t *testing.T) {
	_, controller := testEnv(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"message":"ok"}`)
	})

	h := NewAuthHandler(controller, allowAll{}, testLogger())

	rec := httptest.NewRecorder()
	h.HandleLogout(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))

	if rec.Code != http.StatusFound {
		t.Fatalf("ожидался redirect 302, получен %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("ожидался redirect на /login, получен %s", loc)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 || cookies[len(cookies)-1].MaxAge != -1 {
		t.Error("cookie сессии обязан быть очищен")
	}
}
