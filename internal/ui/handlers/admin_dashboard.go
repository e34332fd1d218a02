// admin_dashboard.go — admin dashboard со статистикой платформы.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/eduplatform/frontend-module/internal/apiclient"
	"github.com/eduplatform/frontend-module/internal/session"
	"github.com/eduplatform/frontend-module/internal/ui/pages"
)

// AdminDashboardHandler — обработчик admin dashboard.
type AdminDashboardHandler struct {
	api        *apiclient.Client
	controller *session.Controller
	logger     *slog.Logger
}

// NewAdminDashboardHandler создаёт обработчик admin dashboard.
func NewAdminDashboardHandler(api *apiclient.Client, controller *session.Controller, logger *slog.Logger) *AdminDashboardHandler {
	return &AdminDashboardHandler{
		api:        api,
		controller: controller,
		logger:     logger.With(slog.String("component", "ui_admin_dashboard")),
	}
}

// HandleDashboard — GET /admin
func (h *AdminDashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)
	ts := h.controller.TokenSource(w, state.Data)

	data, err := h.api.AdminDashboard(r.Context(), ts)
	if err != nil {
		renderAPIError(w, r, h.logger, err)
		return
	}

	renderPage(w, r, h.logger, http.StatusOK, pages.AdminDashboard(state.User, data))
}
