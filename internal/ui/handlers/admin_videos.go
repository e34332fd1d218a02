// admin_videos.go — управление видео.
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

// AdminVideosHandler — обработчики CRUD видео.
type AdminVideosHandler struct {
	api        *apiclient.Client
	controller *session.Controller
	logger     *slog.Logger
}

// NewAdminVideosHandler создаёт обработчики управления видео.
func NewAdminVideosHandler(api *apiclient.Client, controller *session.Controller, logger *slog.Logger) *AdminVideosHandler {
	return &AdminVideosHandler{
		api:        api,
		controller: controller,
		logger:     logger.With(slog.String("component", "ui_admin_videos")),
	}
}

// HandleList — GET /admin/videos
// ?new=1 — форма создания, ?edit={id} — форма редактирования.
func (h *AdminVideosHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, "")
}

func (h *AdminVideosHandler) renderList(w http.ResponseWriter, r *http.Request, errorMsg string) {
	state := sessionState(r)
	ts := h.controller.TokenSource(w, state.Data)

	videos, err := h.api.AdminVideos(r.Context(), ts)
	if err != nil {
		renderAPIError(w, r, h.logger, err)
		return
	}

	categories, err := h.api.AdminCategories(r.Context(), ts)
	if err != nil {
		renderAPIError(w, r, h.logger, err)
		return
	}

	view := &pages.AdminVideosView{
		Videos:         videos,
		Categories:     categories,
		ShowCreateForm: r.URL.Query().Get("new") == "1",
		ErrorMessage:   errorMsg,
	}

	if raw := r.URL.Query().Get("edit"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			for i := range videos {
				if videos[i].ID == id {
					view.EditVideo = &videos[i]
					break
				}
			}
		}
	}

	renderPage(w, r, h.logger, http.StatusOK, pages.AdminVideos(state.User, view))
}

// videoFormFromRequest собирает VideoForm из данных HTML-формы.
// Пустая категория — nil (null в JSON, «без категории»).
func videoFormFromRequest(r *http.Request) apiclient.VideoForm {
	order, _ := strconv.Atoi(r.PostFormValue("order"))

	var category *int
	if raw := r.PostFormValue("category"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			category = &id
		}
	}

	return apiclient.VideoForm{
		Title:       r.PostFormValue("title"),
		YoutubeURL:  r.PostFormValue("youtube_url"),
		Description: r.PostFormValue("description"),
		Category:    category,
		Order:       order,
		IsPublished: r.PostFormValue("is_published") == "1",
	}
}

// HandleCreate — POST /admin/videos
func (h *AdminVideosHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)
	ts := h.controller.TokenSource(w, state.Data)

	if err := r.ParseForm(); err != nil {
		h.renderList(w, r, "Некорректные данные формы")
		return
	}

	form := videoFormFromRequest(r)
	if err := h.api.AdminCreateVideo(r.Context(), ts, form); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info("Видео добавлено",
		slog.String("title", form.Title),
		slog.String("by", state.User.Username),
	)
	http.Redirect(w, r, "/admin/videos", http.StatusFound)
}

// HandleUpdate — POST /admin/videos/{id}
func (h *AdminVideosHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)

	id, err := pathID(r, "id")
	if err != nil {
		http.Redirect(w, r, "/admin/videos", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderList(w, r, "Некорректные данные формы")
		return
	}

	ts := h.controller.TokenSource(w, state.Data)
	if err := h.api.AdminUpdateVideo(r.Context(), ts, id, videoFormFromRequest(r)); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info("Видео изменено",
		slog.Int("video_id", id),
		slog.String("by", state.User.Username),
	)
	http.Redirect(w, r, "/admin/videos", http.StatusFound)
}

// HandleDeleteConfirm — GET /admin/videos/{id}/delete
func (h *AdminVideosHandler) HandleDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)

	id, err := pathID(r, "id")
	if err != nil {
		http.Redirect(w, r, "/admin/videos", http.StatusFound)
		return
	}

	ts := h.controller.TokenSource(w, state.Data)
	target, err := h.api.AdminVideo(r.Context(), ts, id)
	if err != nil {
		renderAPIError(w, r, h.logger, err)
		return
	}

	renderPage(w, r, h.logger, http.StatusOK, pages.AdminVideoDelete(state.User, target))
}

// HandleDelete — POST /admin/videos/{id}/delete
func (h *AdminVideosHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)

	id, err := pathID(r, "id")
	if err != nil {
		http.Redirect(w, r, "/admin/videos", http.StatusFound)
		return
	}

	ts := h.controller.TokenSource(w, state.Data)
	if err := h.api.AdminDeleteVideo(r.Context(), ts, id); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info("Видео удалено",
		slog.Int("video_id", id),
		slog.String("by", state.User.Username),
	)
	http.Redirect(w, r, "/admin/videos", http.StatusFound)
}

func (h *AdminVideosHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		h.renderList(w, r, apiErr.Message)
		return
	}
	renderAPIError(w, r, h.logger, err)
}
