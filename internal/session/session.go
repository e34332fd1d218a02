// Пакет session — сессии пользователей frontend-module.
// Пара токенов и снимок пользователя хранятся в зашифрованном cookie
// (AES-256-GCM); контроллер разрешает статус сессии и выполняет refresh.
package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/eduplatform/frontend-module/internal/apiclient"
)

// Имя cookie для зашифрованной сессии.
const CookieName = "eduplatform_session"

// Максимальный возраст cookie сессии (7 дней — время жизни refresh token).
const CookieMaxAge = 7 * 24 * 60 * 60

// Data — данные сессии, хранящиеся в зашифрованном cookie.
// Токены непрозрачны: их содержимое и срок жизни известны только backend'у,
// истечение обнаруживается по 401 при обращении к API.
type Data struct {
	// AccessToken — короткоживущий токен для заголовка Authorization.
	AccessToken string `json:"access_token"`
	// RefreshToken — долгоживущий токен для обновления access token.
	RefreshToken string `json:"refresh_token"`
	// User — снимок данных пользователя на момент входа или последнего refresh.
	User *apiclient.User `json:"user,omitempty"`
}

// Complete проверяет, что сессия содержит полную пару токенов.
// Неполная пара (поврежденный или устаревший cookie) эквивалентна отсутствию сессии.
func (d *Data) Complete() bool {
	return d != nil && d.AccessToken != "" && d.RefreshToken != ""
}

// Manager — менеджер сессионных cookie.
// Шифрует/дешифрует Data через AES-256-GCM.
type Manager struct {
	// gcm — AEAD cipher для шифрования/дешифрования.
	gcm cipher.AEAD
	// secure — использовать Secure flag для cookie (true для HTTPS).
	secure bool
}

// NewManager создаёт менеджер сессий.
// key — 32-байтовый ключ для AES-256-GCM (base64 или произвольная строка,
// хешируемая до 32 bytes). Пустой key — случайный ключ, непостоянный между
// рестартами: все сессии инвалидируются при перезапуске.
func NewManager(key string, secure bool) (*Manager, error) {
	var keyBytes []byte

	if key == "" {
		keyBytes = make([]byte, 32)
		if _, err := io.ReadFull(rand.Reader, keyBytes); err != nil {
			return nil, fmt.Errorf("ошибка генерации ключа сессии: %w", err)
		}
	} else {
		var err error
		keyBytes, err = base64.StdEncoding.DecodeString(key)
		if err != nil || len(keyBytes) != 32 {
			// Не base64 — хешируем строку до 32 bytes через SHA-256
			keyBytes = sha256Key(key)
		}
	}

	block, err := aes.NewCipher(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания GCM: %w", err)
	}

	return &Manager{gcm: gcm, secure: secure}, nil
}

// Encrypt шифрует Data и возвращает base64-строку.
func (m *Manager) Encrypt(data *Data) (string, error) {
	plaintext, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации сессии: %w", err)
	}

	// Уникальный nonce для каждого шифрования
	nonce := make([]byte, m.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("ошибка генерации nonce: %w", err)
	}

	ciphertext := m.gcm.Seal(nonce, nonce, plaintext, nil)

	return base64.URLEncoding.EncodeToString(ciphertext), nil
}

// Decrypt дешифрует base64-строку обратно в Data.
func (m *Manager) Decrypt(encrypted string) (*Data, error) {
	ciphertext, err := base64.URLEncoding.DecodeString(encrypted)
	if err != nil {
		return nil, fmt.Errorf("ошибка декодирования base64: %w", err)
	}

	nonceSize := m.gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, errors.New("зашифрованные данные слишком короткие")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := m.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка дешифрования сессии: %w", err)
	}

	var data Data
	if err := json.Unmarshal(plaintext, &data); err != nil {
		return nil, fmt.Errorf("ошибка десериализации сессии: %w", err)
	}

	return &data, nil
}

// Set устанавливает зашифрованный session cookie в ответ.
// Пара токенов записывается атомарно: либо cookie содержит оба токена,
// либо не записывается вовсе.
func (m *Manager) Set(w http.ResponseWriter, data *Data) error {
	encrypted, err := m.Encrypt(data)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encrypted,
		Path:     "/",
		MaxAge:   CookieMaxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// FromRequest извлекает и дешифрует Data из cookie запроса.
// Возвращает nil, nil если cookie отсутствует; повреждённый или неполный
// cookie также трактуется как отсутствие сессии.
func (m *Manager) FromRequest(r *http.Request) (*Data, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, nil
		}
		return nil, err
	}

	data, err := m.Decrypt(cookie.Value)
	if err != nil {
		return nil, err
	}
	if !data.Complete() {
		return nil, nil
	}
	return data, nil
}

// Clear удаляет session cookie из ответа (выход).
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// sha256Key хеширует строковый ключ в 32 bytes через SHA-256.
func sha256Key(key string) []byte {
	h := sha256.Sum256([]byte(key))
	return h[:]
}
