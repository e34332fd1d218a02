// auth.go — экран входа и выход.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/eduplatform/frontend-module/internal/middleware"
	"github.com/eduplatform/frontend-module/internal/session"
	"github.com/eduplatform/frontend-module/internal/ui/pages"
)

// AuthHandler — обработчики входа и выхода.
type AuthHandler struct {
	controller *session.Controller
	limiter    middleware.RateLimiter
	logger     *slog.Logger
}

// NewAuthHandler создаёт обработчики аутентификации.
func NewAuthHandler(controller *session.Controller, limiter middleware.RateLimiter, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		controller: controller,
		limiter:    limiter,
		logger:     logger.With(slog.String("component", "ui_auth")),
	}
}

// HandleLoginPage — GET /login
// Уже аутентифицированный пользователь перенаправляется на /dashboard.
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	state := h.controller.Resolve(r.Context(), w, r)
	if state.Authenticated() {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}

	renderPage(w, r, h.logger, http.StatusOK, pages.Login(""))
}

// HandleLoginSubmit — POST /login
// Проверяет rate limit, выполняет вход и при успехе перенаправляет на
// /dashboard с flash-приветствием.
func (h *AuthHandler) HandleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)
	if !h.limiter.Allow(ip) {
		h.logger.Warn("Превышен лимит попыток входа", slog.String("remote_addr", ip))
		renderPage(w, r, h.logger, http.StatusTooManyRequests, pages.Login("Слишком много попыток входа. Попробуйте позже."))
		return
	}

	if err := r.ParseForm(); err != nil {
		renderPage(w, r, h.logger, http.StatusBadRequest, pages.Login("Некорректный запрос"))
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		renderPage(w, r, h.logger, http.StatusOK, pages.Login("Укажите имя пользователя и пароль"))
		return
	}

	outcome, err := h.controller.Login(r.Context(), w, username, password)
	if err != nil {
		h.logger.Error("Сбой входа", slog.String("error", err.Error()))
		renderPage(w, r, h.logger, http.StatusBadGateway, pages.Login("Сервис временно недоступен. Попробуйте позже."))
		return
	}

	if !outcome.OK {
		renderPage(w, r, h.logger, http.StatusUnauthorized, pages.Login(outcome.ErrorMessage))
		return
	}

	setFlash(w, &flashData{
		Message:             outcome.Message,
		SessionsInvalidated: outcome.SessionsInvalidated,
	})
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// HandleLogout — POST /logout
// Best-effort инвалидация на сервере, безусловная очистка сессии.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.controller.Logout(r.Context(), w, r)
	http.Redirect(w, r, "/login", http.StatusFound)
}
