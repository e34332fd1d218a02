// videos.go — каталог видео и детальная страница.
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/eduplatform/frontend-module/internal/apiclient"
	"github.com/eduplatform/frontend-module/internal/session"
	"github.com/eduplatform/frontend-module/internal/ui/pages"
)

// VideosHandler — обработчики каталога видео.
type VideosHandler struct {
	api        *apiclient.Client
	controller *session.Controller
	logger     *slog.Logger
}

// NewVideosHandler создаёт обработчики каталога видео.
func NewVideosHandler(api *apiclient.Client, controller *session.Controller, logger *slog.Logger) *VideosHandler {
	return &VideosHandler{
		api:        api,
		controller: controller,
		logger:     logger.With(slog.String("component", "ui_videos")),
	}
}

// HandleList — GET /videos?category={id}
// Некорректное значение category игнорируется (показываются все видео).
func (h *VideosHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)
	ts := h.controller.TokenSource(w, state.Data)

	var categoryID *int
	if raw := r.URL.Query().Get("category"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			categoryID = &id
		}
	}

	videos, err := h.api.Videos(r.Context(), ts, categoryID)
	if err != nil {
		renderAPIError(w, r, h.logger, err)
		return
	}

	categories, err := h.api.Categories(r.Context(), ts)
	if err != nil {
		renderAPIError(w, r, h.logger, err)
		return
	}

	renderPage(w, r, h.logger, http.StatusOK, pages.Videos(state.User, videos, categories, categoryID))
}

// HandleDetail — GET /videos/{id}
func (h *VideosHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	state := sessionState(r)

	id, err := pathID(r, "id")
	if err != nil {
		renderPage(w, r, h.logger, http.StatusNotFound, pages.NotFound(state.User))
		return
	}

	ts := h.controller.TokenSource(w, state.Data)
	detail, err := h.api.Video(r.Context(), ts, id)
	if err != nil {
		renderAPIError(w, r, h.logger, err)
		return
	}

	renderPage(w, r, h.logger, http.StatusOK, pages.VideoDetail(state.User, detail))
}
