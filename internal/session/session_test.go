package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eduplatform/frontend-module/internal/apiclient"
)

// testManager создаёт менеджер сессий с фиксированным ключом.
func testManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager("test-session-key", false)
	if err != nil {
		t.Fatalf("Ошибка создания менеджера: %v", err)
	}
	return m
}

// testData — полная сессия для тестов.
func testData() *Data {
	return &Data{
		AccessToken:  "acc-token",
		RefreshToken: "ref-token",
		User: &apiclient.User{
			ID:       1,
			Username: "student",
			IsStaff:  false,
		},
	}
}

// TestManager_EncryptDecrypt проверяет roundtrip шифрования сессии.
func TestManager_EncryptDecrypt(t *testing.T) {
	m := testManager(t)
	data := testData()

	encrypted, err := m.Encrypt(data)
	if err != nil {
		t.Fatalf("Ошибка Encrypt: %v", err)
	}

	decrypted, err := m.Decrypt(encrypted)
	if err != nil {
		t.Fatalf("Ошибка Decrypt: %v", err)
	}

	if decrypted.AccessToken != "acc-token" {
		t.Errorf("ожидался access=acc-token, получен %s", decrypted.AccessToken)
	}
	if decrypted.RefreshToken != "ref-token" {
		t.Errorf("ожидался refresh=ref-token, получен %s", decrypted.RefreshToken)
	}
	if decrypted.User == nil || decrypted.User.Username != "student" {
		t.Errorf("неожиданный пользователь: %+v", decrypted.User)
	}
}

// TestManager_DecryptWrongKey проверяет, что cookie, зашифрованный другим
// ключом, не дешифруется.
func TestManager_DecryptWrongKey(t *testing.T) {
	m1 := testManager(t)
	m2, err := NewManager("другой-ключ", false)
	if err != nil {
		t.Fatal(err)
	}

	encrypted, err := m1.Encrypt(testData())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m2.Decrypt(encrypted); err == nil {
		t.Error("ожидалась ошибка дешифрования чужим ключом")
	}
}

// TestManager_DecryptGarbage проверяет обработку повреждённых данных.
func TestManager_DecryptGarbage(t *testing.T) {
	m := testManager(t)

	for _, input := range []string{"", "abc", "не base64!!!", "YWJjZGVm"} {
		if _, err := m.Decrypt(input); err == nil {
			t.Errorf("ожидалась ошибка для входа %q", input)
		}
	}
}

// TestManager_SetFromRequest проверяет полный цикл cookie: запись в ответ,
// чтение из запроса.
func TestManager_SetFromRequest(t *testing.T) {
	m := testManager(t)

	rec := httptest.NewRecorder()
	if err := m.Set(rec, testData()); err != nil {
		t.Fatalf("Ошибка Set: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("ожидался 1 cookie, получено %d", len(cookies))
	}

	cookie := cookies[0]
	if cookie.Name != CookieName {
		t.Errorf("ожидалось имя %s, получено %s", CookieName, cookie.Name)
	}
	if !cookie.HttpOnly {
		t.Error("cookie обязан быть HttpOnly")
	}
	if cookie.Path != "/" {
		t.Errorf("ожидался Path=/, получен %s", cookie.Path)
	}

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)

	data, err := m.FromRequest(req)
	if err != nil {
		t.Fatalf("Ошибка FromRequest: %v", err)
	}
	if data == nil {
		t.Fatal("сессия не прочитана")
	}
	if data.AccessToken != "acc-token" || data.RefreshToken != "ref-token" {
		t.Errorf("неожиданные токены: %+v", data)
	}
}

// TestManager_FromRequest_NoCookie проверяет, что отсутствие cookie —
// не ошибка, а nil-сессия.
func TestManager_FromRequest_NoCookie(t *testing.T) {
	m := testManager(t)
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)

	data, err := m.FromRequest(req)
	if err != nil {
		t.Fatalf("отсутствие cookie не должно быть ошибкой: %v", err)
	}
	if data != nil {
		t.Errorf("ожидалась nil-сессия, получено %+v", data)
	}
}

// TestManager_FromRequest_PartialPair проверяет, что неполная пара токенов
// трактуется как отсутствие сессии.
func TestManager_FromRequest_PartialPair(t *testing.T) {
	m := testManager(t)

	tests := []struct {
		name string
		data *Data
	}{
		{"нет access", &Data{RefreshToken: "ref"}},
		{"нет refresh", &Data{AccessToken: "acc"}},
		{"пустая пара", &Data{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := m.Set(rec, tt.data); err != nil {
				t.Fatal(err)
			}

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(rec.Result().Cookies()[0])

			data, err := m.FromRequest(req)
			if err != nil {
				t.Fatalf("неполная пара не должна быть ошибкой: %v", err)
			}
			if data != nil {
				t.Errorf("ожидалась nil-сессия, получено %+v", data)
			}
		})
	}
}

// TestManager_Clear проверяет удаление cookie.
func TestManager_Clear(t *testing.T) {
	m := testManager(t)

	rec := httptest.NewRecorder()
	m.Clear(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("ожидался 1 cookie, получено %d", len(cookies))
	}
	if cookies[0].MaxAge != -1 {
		t.Errorf("ожидался MaxAge=-1, получен %d", cookies[0].MaxAge)
	}
	if cookies[0].Value != "" {
		t.Errorf("ожидалось пустое значение, получено %q", cookies[0].Value)
	}
}

// TestNewManager_Base64Key проверяет приём 32-байтового base64-ключа.
func TestNewManager_Base64Key(t *testing.T) {
	// 32 байта нулей в base64
	key := "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="
	if _, err := NewManager(key, true); err != nil {
		t.Fatalf("Ошибка создания менеджера с base64-ключом: %v", err)
	}
}

// TestNewManager_EmptyKey проверяет автогенерацию ключа.
func TestNewManager_EmptyKey(t *testing.T) {
	if _, err := NewManager("", false); err != nil {
		t.Fatalf("Ошибка создания менеджера с пустым ключом: %v", err)
	}
}
