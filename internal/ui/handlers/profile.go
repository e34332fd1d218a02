// profile.go — экран профиля пользователя.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/eduplatform/frontend-module/internal/apiclient"
	"github.com/eduplatform/frontend-module/internal/session"
	"github.com/eduplatform/frontend-module/internal/ui/pages"
)

// ProfileHandler — обработчик экрана профиля.
type ProfileHandler struct {
	api        *apiclient.Client
	controller *session.Controller
	logger     *slog.Logger
}

// NewProfileHandler создаёт обработчик экрана профиля.
func NewProfileHandler(api *apiclient.Client, controller *session.Controller, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		api:        api,
		controller: controller,
		logger:     logger.With(slog.String("component", "ui_profile")),
	}
}

// HandleProfile — GET /profile
// Список сессий дополняет экран; его недоступность не прячет профиль.
func (h *ProfileHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)
	ts := h.controller.TokenSource(w, state.Data)

	sessions, err := h.api.Sessions(r.Context(), ts)
	if err != nil {
		if errors.Is(err, apiclient.ErrSessionExpired) {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		h.logger.Warn("Список сессий недоступен", slog.String("error", err.Error()))
		sessions = nil
	}

	renderPage(w, r, h.logger, http.StatusOK, pages.Profile(state.User, sessions))
}
