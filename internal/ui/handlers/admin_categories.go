// admin_categories.go — управление категориями.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/eduplatform/frontend-module/internal/apiclient"
	"github.com/eduplatform/frontend-module/internal/session"
	"github.com/eduplatform/frontend-module/internal/ui/pages"
)

// AdminCategoriesHandler — обработчики CRUD категорий.
type AdminCategoriesHandler struct {
	api        *apiclient.Client
	controller *session.Controller
	logger     *slog.Logger
}

// NewAdminCategoriesHandler создаёт обработчики управления категориями.
func NewAdminCategoriesHandler(api *apiclient.Client, controller *session.Controller, logger *slog.Logger) *AdminCategoriesHandler {
	return &AdminCategoriesHandler{
		api:        api,
		controller: controller,
		logger:     logger.With(slog.String("component", "ui_admin_categories")),
	}
}

// HandleList — GET /admin/categories
// ?new=1 — форма создания, ?edit={id} — форма редактирования.
func (h *AdminCategoriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, "")
}

func (h *AdminCategoriesHandler) renderList(w http.ResponseWriter, r *http.Request, errorMsg string) {
	state := sessionState(r)
	ts := h.controller.TokenSource(w, state.Data)

	categories, err := h.api.AdminCategories(r.Context(), ts)
	if err != nil {
		renderAPIError(w, r, h.logger, err)
		return
	}

	view := &pages.AdminCategoriesView{
		Categories:     categories,
		ShowCreateForm: r.URL.Query().Get("new") == "1",
		ErrorMessage:   errorMsg,
	}

	if raw := r.URL.Query().Get("edit"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			for i := range categories {
				if categories[i].ID == id {
					view.EditCategory = &categories[i]
					break
				}
			}
		}
	}

	renderPage(w, r, h.logger, http.StatusOK, pages.AdminCategories(state.User, view))
}

// categoryFormFromRequest собирает CategoryForm из данных HTML-формы.
func categoryFormFromRequest(r *http.Request) apiclient.CategoryForm {
	order, _ := strconv.Atoi(r.PostFormValue("order"))
	return apiclient.CategoryForm{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		Order:       order,
	}
}

// HandleCreate — POST /admin/categories
func (h *AdminCategoriesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)
	ts := h.controller.TokenSource(w, state.Data)

	if err := r.ParseForm(); err != nil {
		h.renderList(w, r, "Некорректные данные формы")
		return
	}

	form := categoryFormFromRequest(r)
	if err := h.api.AdminCreateCategory(r.Context(), ts, form); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info("Категория создана",
		slog.String("name", form.Name),
		slog.String("by", state.User.Username),
	)
	http.Redirect(w, r, "/admin/categories", http.StatusFound)
}

// HandleUpdate — POST /admin/categories/{id}
func (h *AdminCategoriesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)

	id, err := pathID(r, "id")
	if err != nil {
		http.Redirect(w, r, "/admin/categories", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderList(w, r, "Некорректные данные формы")
		return
	}

	ts := h.controller.TokenSource(w, state.Data)
	if err := h.api.AdminUpdateCategory(r.Context(), ts, id, categoryFormFromRequest(r)); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info("Категория изменена",
		slog.Int("category_id", id),
		slog.String("by", state.User.Username),
	)
	http.Redirect(w, r, "/admin/categories", http.StatusFound)
}

// HandleDeleteConfirm — GET /admin/categories/{id}/delete
func (h *AdminCategoriesHandler) HandleDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)

	id, err := pathID(r, "id")
	if err != nil {
		http.Redirect(w, r, "/admin/categories", http.StatusFound)
		return
	}

	ts := h.controller.TokenSource(w, state.Data)
	target, err := h.api.AdminCategory(r.Context(), ts, id)
	if err != nil {
		renderAPIError(w, r, h.logger, err)
		return
	}

	renderPage(w, r, h.logger, http.StatusOK, pages.AdminCategoryDelete(state.User, target))
}

// HandleDelete — POST /admin/categories/{id}/delete
func (h *AdminCategoriesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)

	id, err := pathID(r, "id")
	if err != nil {
		http.Redirect(w, r, "/admin/categories", http.StatusFound)
		return
	}

	ts := h.controller.TokenSource(w, state.Data)
	if err := h.api.AdminDeleteCategory(r.Context(), ts, id); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info("Категория удалена",
		slog.Int("category_id", id),
		slog.String("by", state.User.Username),
	)
	http.Redirect(w, r, "/admin/categories", http.StatusFound)
}

func (h *AdminCategoriesHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		h.renderList(w, r, apiErr.Message)
		return
	}
	renderAPIError(w, r, h.logger, err)
}
