// admin_users.go — управление пользователями.
package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/eduplatform/frontend-module/internal/apiclient"
	"github.com/eduplatform/frontend-module/internal/session"
	"github.com/eduplatform/frontend-module/internal/ui/pages"
)

// AdminUsersHandler — обработчики CRUD пользователей.
type AdminUsersHandler struct {
	api        *apiclient.Client
	controller *session.Controller
	logger     *slog.Logger
}

// NewAdminUsersHandler создаёт обработчики управления пользователями.
func NewAdminUsersHandler(api *apiclient.Client, controller *session.Controller, logger *slog.Logger) *AdminUsersHandler {
	return &AdminUsersHandler{
		api:        api,
		controller: controller,
		logger:     logger.With(slog.String("component", "ui_admin_users")),
	}
}

// HandleList — GET /admin/users
// ?new=1 — форма создания, ?edit={id} — форма редактирования.
func (h *AdminUsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, "")
}

// renderList рендерит список пользователей; errorMsg — сообщение
// об ошибке предыдущей операции записи.
func (h *AdminUsersHandler) renderList(w http.ResponseWriter, r *http.Request, errorMsg string) {
	state := sessionState(r)
	ts := h.controller.TokenSource(w, state.Data)

	users, err := h.api.AdminUsers(r.Context(), ts)
	if err != nil {
		renderAPIError(w, r, h.logger, err)
		return
	}

	view := &pages.AdminUsersView{
		Users:          users,
		ShowCreateForm: r.URL.Query().Get("new") == "1",
		ErrorMessage:   errorMsg,
	}

	if raw := r.URL.Query().Get("edit"); raw != "" {
		for i := range users {
			if fmt.Sprintf("%d", users[i].ID) == raw {
				view.EditUser = &users[i]
				break
			}
		}
	}

	renderPage(w, r, h.logger, http.StatusOK, pages.AdminUsers(state.User, view))
}

// userFormFromRequest собирает UserForm из данных HTML-формы.
// selfEdit — редактирование собственного аккаунта: is_staff не отправляется.
func userFormFromRequest(r *http.Request, selfEdit bool) apiclient.UserForm {
	form := apiclient.UserForm{
		Username:  r.PostFormValue("username"),
		Email:     r.PostFormValue("email"),
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Password:  r.PostFormValue("password"),
		IsActive:  r.PostFormValue("is_active") == "1",
	}
	if !selfEdit {
		isStaff := r.PostFormValue("is_staff") == "1"
		form.IsStaff = &isStaff
	}
	return form
}

// HandleCreate — POST /admin/users
func (h *AdminUsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)
	ts := h.controller.TokenSource(w, state.Data)

	if err := r.ParseForm(); err != nil {
		h.renderList(w, r, "Некорректные данные формы")
		return
	}

	form := userFormFromRequest(r, false)
	if err := h.api.AdminCreateUser(r.Context(), ts, form); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info("Пользователь создан",
		slog.String("username", form.Username),
		slog.String("by", state.User.Username),
	)
	http.Redirect(w, r, "/admin/users", http.StatusFound)
}

// HandleUpdate — POST /admin/users/{id}
func (h *AdminUsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)

	id, err := pathID(r, "id")
	if err != nil {
		http.Redirect(w, r, "/admin/users", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderList(w, r, "Некорректные данные формы")
		return
	}

	ts := h.controller.TokenSource(w, state.Data)
	selfEdit := state.User != nil && state.User.ID == id

	form := userFormFromRequest(r, selfEdit)
	if err := h.api.AdminUpdateUser(r.Context(), ts, id, form); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info("Пользователь изменён",
		slog.Int("user_id", id),
		slog.String("by", state.User.Username),
	)
	http.Redirect(w, r, "/admin/users", http.StatusFound)
}

// HandleDeleteConfirm — GET /admin/users/{id}/delete
// Подтверждение удаления; собственный аккаунт удалить нельзя.
func (h *AdminUsersHandler) HandleDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)

	id, err := pathID(r, "id")
	if err != nil {
		http.Redirect(w, r, "/admin/users", http.StatusFound)
		return
	}

	if state.User != nil && state.User.ID == id {
		h.renderList(w, r, "Вы не можете удалить собственный аккаунт")
		return
	}

	ts := h.controller.TokenSource(w, state.Data)
	target, err := h.api.AdminUser(r.Context(), ts, id)
	if err != nil {
		renderAPIError(w, r, h.logger, err)
		return
	}

	renderPage(w, r, h.logger, http.StatusOK, pages.AdminUserDelete(state.User, target))
}

// HandleDelete — POST /admin/users/{id}/delete
func (h *AdminUsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)

	id, err := pathID(r, "id")
	if err != nil {
		http.Redirect(w, r, "/admin/users", http.StatusFound)
		return
	}

	ts := h.controller.TokenSource(w, state.Data)
	if err := h.api.AdminDeleteUser(r.Context(), ts, id); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info("Пользователь удалён",
		slog.Int("user_id", id),
		slog.String("by", state.User.Username),
	)
	http.Redirect(w, r, "/admin/users", http.StatusFound)
}

// HandleInvalidateSessions — POST /admin/users/{id}/invalidate-sessions
func (h *AdminUsersHandler) HandleInvalidateSessions(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)

	id, err := pathID(r, "id")
	if err != nil {
		http.Redirect(w, r, "/admin/users", http.StatusFound)
		return
	}

	ts := h.controller.TokenSource(w, state.Data)
	count, err := h.api.AdminInvalidateUserSessions(r.Context(), ts, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info("Сессии пользователя завершены",
		slog.Int("user_id", id),
		slog.Int("sessions_invalidated", count),
		slog.String("by", state.User.Username),
	)
	http.Redirect(w, r, "/admin/users", http.StatusFound)
}

// writeError отображает ошибку операции записи: сообщение backend'а
// показывается на списке, прочие ошибки идут в общий рендер.
func (h *AdminUsersHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		h.renderList(w, r, apiErr.Message)
		return
	}
	renderAPIError(w, r, h.logger, err)
}
