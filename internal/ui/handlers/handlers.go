// Пакет handlers — HTTP-обработчики экранов frontend-module.
// handlers.go — общая обвязка: доступ к состоянию сессии, flash-cookie
// приветствия и единое отображение ошибок API в экраны.
package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/eduplatform/frontend-module/internal/apiclient"
	"github.com/eduplatform/frontend-module/internal/middleware"
	"github.com/eduplatform/frontend-module/internal/session"
	uimiddleware "github.com/eduplatform/frontend-module/internal/ui/middleware"
	"github.com/eduplatform/frontend-module/internal/ui/pages"
)

// Имя flash-cookie приветствия после входа.
const flashCookieName = "eduplatform_flash"

// flashData — содержимое flash-cookie (несекретные данные приветствия).
type flashData struct {
	Message             string `json:"message"`
	SessionsInvalidated int    `json:"sessions_invalidated"`
}

// setFlash записывает одноразовый flash-cookie приветствия.
func setFlash(w http.ResponseWriter, data *flashData) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.URLEncoding.EncodeToString(payload),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeFlash читает flash-cookie и сразу очищает его.
func takeFlash(w http.ResponseWriter, r *http.Request) *flashData {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	payload, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var data flashData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil
	}
	return &data
}

// sessionState возвращает состояние сессии, положенное route guard'ом.
func sessionState(r *http.Request) *session.State {
	return uimiddleware.StateFromContext(r.Context())
}

// clientIP — IP вызывающего для rate limiting.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// pathID — числовой параметр {id} из пути chi.
func pathID(r *http.Request, param string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, param))
}

// renderPage рендерит компонент экрана со статусом status.
func renderPage(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, page templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	if err := page.Render(r.Context(), w); err != nil {
		logger.Error("Ошибка рендеринга страницы",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Ошибка рендеринга страницы", http.StatusInternalServerError)
	}
}

// renderAPIError отображает ошибку API в экран.
// Истёкшая сессия — redirect на /login; 403 — экран «доступ запрещён»;
// 404 — экран «не найдено»; прочее — экран сбоя с сообщением backend'а.
func renderAPIError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	state := sessionState(r)
	var user *apiclient.User
	if state != nil {
		user = state.User
	}

	switch {
	case errors.Is(err, apiclient.ErrSessionExpired):
		http.Redirect(w, r, "/login", http.StatusFound)
	case errors.Is(err, apiclient.ErrForbidden):
		renderPage(w, r, logger, http.StatusForbidden, pages.AccessDenied(user))
	case errors.Is(err, apiclient.ErrNotFound):
		renderPage(w, r, logger, http.StatusNotFound, pages.NotFound(user))
	default:
		logger.Error("Ошибка запроса к API платформы",
			slog.String("request_id", middleware.RequestIDFromContext(r.Context())),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		message := ""
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) {
			message = apiErr.Message
		}
		renderPage(w, r, logger, http.StatusInternalServerError, pages.ServerError(user, message))
	}
}
