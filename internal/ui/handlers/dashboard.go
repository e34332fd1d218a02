// dashboard.go — главный экран пользователя.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/eduplatform/frontend-module/internal/apiclient"
	"github.com/eduplatform/frontend-module/internal/session"
	"github.com/eduplatform/frontend-module/internal/ui/pages"
)

// DashboardHandler — обработчик главного экрана.
type DashboardHandler struct {
	api        *apiclient.Client
	controller *session.Controller
	logger     *slog.Logger
}

// NewDashboardHandler создаёт обработчик главного экрана.
func NewDashboardHandler(api *apiclient.Client, controller *session.Controller, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		api:        api,
		controller: controller,
		logger:     logger.With(slog.String("component", "ui_dashboard")),
	}
}

// HandleDashboard — GET /dashboard
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)
	ts := h.controller.TokenSource(w, state.Data)

	data, err := h.api.Dashboard(r.Context(), ts)
	if err != nil {
		renderAPIError(w, r, h.logger, err)
		return
	}

	var banner *pages.WelcomeBanner
	if flash := takeFlash(w, r); flash != nil {
		banner = &pages.WelcomeBanner{
			Message:             flash.Message,
			SessionsInvalidated: flash.SessionsInvalidated,
		}
	}

	renderPage(w, r, h.logger, http.StatusOK, pages.Dashboard(state.User, data, banner))
}
