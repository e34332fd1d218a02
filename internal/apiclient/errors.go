// errors.go — ошибки клиента API и разбор error-документов backend'а.
//
// Backend возвращает ошибки в нескольких формах:
//   - {"error": "сообщение"} — ошибки записи admin API;
//   - {"detail": "сообщение"} — ошибки авторизации DRF;
//   - {"non_field_errors": ["..."], "username": ["..."], ...} — валидация форм.
//
// Извлечение сообщения описывается упорядоченным списком правил, применяемых
// к обобщённому документу; новые формы добавляются декларативно.
package apiclient

import (
	"encoding/json"
	"errors"
)

// Ошибки уровня клиента API, различаемые обработчиками экранов через errors.Is.
var (
	// ErrSessionExpired — refresh не удался; сессия пользователя истекла.
	ErrSessionExpired = errors.New("сессия истекла")
	// ErrForbidden — backend вернул 403 (endpoint только для администраторов).
	ErrForbidden = errors.New("доступ запрещён")
	// ErrNotFound — запрошенный ресурс не существует (404).
	ErrNotFound = errors.New("ресурс не найден")
)

// APIError — непредвиденный ответ backend'а с извлечённым сообщением.
type APIError struct {
	// StatusCode — HTTP-статус ответа.
	StatusCode int
	// Message — сообщение, извлечённое из тела ответа (или fallback).
	Message string
}

// Error реализует интерфейс error.
func (e *APIError) Error() string {
	return e.Message
}

// ExtractionRule — одно правило извлечения сообщения из error-документа.
type ExtractionRule struct {
	// Key — ключ верхнего уровня в JSON-документе ошибки.
	Key string
}

// Правила извлечения сообщения ошибки входа: приоритет от общей ошибки формы
// к ошибкам конкретных полей. Порядок значим — первое совпавшее правило
// даёт наиболее специфичное сообщение валидации backend'а.
var loginErrorRules = []ExtractionRule{
	{Key: "non_field_errors"},
	{Key: "username"},
	{Key: "password"},
}

// Правила извлечения сообщения ошибок записи (create/update/delete).
var writeErrorRules = []ExtractionRule{
	{Key: "error"},
	{Key: "detail"},
}

// ExtractMessage применяет правила по порядку к телу error-документа и
// возвращает первое найденное сообщение; если ни одно правило не сработало
// (или тело не является JSON-объектом) — возвращает fallback.
// Значение по ключу может быть строкой или массивом строк (DRF-стиль);
// из массива берётся первый элемент.
func ExtractMessage(body []byte, rules []ExtractionRule, fallback string) string {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return fallback
	}

	for _, rule := range rules {
		raw, ok := doc[rule.Key]
		if !ok {
			continue
		}

		// Строка
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}

		// Массив строк
		var list []string
		if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 && list[0] != "" {
			return list[0]
		}
	}

	return fallback
}
