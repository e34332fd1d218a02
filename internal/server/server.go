// Пакет server — HTTP-сервер Frontend Module с graceful shutdown.
// Без TLS — HTTP внутри кластера, TLS termination на Ingress.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eduplatform/frontend-module/internal/config"
	"github.com/eduplatform/frontend-module/internal/middleware"
	"github.com/eduplatform/frontend-module/internal/service"
	"github.com/eduplatform/frontend-module/internal/ui/handlers"
	uimiddleware "github.com/eduplatform/frontend-module/internal/ui/middleware"
	"github.com/eduplatform/frontend-module/internal/ui/pages"
)

// Handlers — обработчики экранов, монтируемые сервером.
type Handlers struct {
	Auth            *handlers.AuthHandler
	Dashboard       *handlers.DashboardHandler
	Videos          *handlers.VideosHandler
	Profile         *handlers.ProfileHandler
	AdminDashboard  *handlers.AdminDashboardHandler
	AdminUsers      *handlers.AdminUsersHandler
	AdminVideos     *handlers.AdminVideosHandler
	AdminCategories *handlers.AdminCategoriesHandler
}

// Server — HTTP-сервер Frontend Module.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New создаёт HTTP-сервер с настроенными routes и middleware.
// dephealthSvc может быть nil (readiness тогда не учитывает зависимости).
func New(
	cfg *config.Config,
	logger *slog.Logger,
	guard *uimiddleware.Guard,
	h *Handlers,
	dephealthSvc *service.DephealthService,
) *Server {
	router := chi.NewRouter()

	// Глобальные middleware (применяются ко ВСЕМ маршрутам)
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger(logger))

	// Публичные endpoints: health, metrics, вход
	router.Get("/health/live", handleLiveness)
	router.Get("/health/ready", handleReadiness(dephealthSvc))
	router.Handle("/metrics", promhttp.Handler())

	router.Get("/login", h.Auth.HandleLoginPage)
	router.Post("/login", h.Auth.HandleLoginSubmit)
	router.Post("/logout", h.Auth.HandleLogout)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	})

	// Защищённые экраны
	router.Group(func(r chi.Router) {
		r.Use(guard.RequireSession())

		r.Get("/dashboard", h.Dashboard.HandleDashboard)
		r.Get("/videos", h.Videos.HandleList)
		r.Get("/videos/{id}", h.Videos.HandleDetail)
		r.Get("/profile", h.Profile.HandleProfile)

		// Admin-экраны — дополнительно staff guard
		r.Group(func(r chi.Router) {
			r.Use(guard.RequireStaff())

			r.Get("/admin", h.AdminDashboard.HandleDashboard)

			r.Get("/admin/users", h.AdminUsers.HandleList)
			r.Post("/admin/users", h.AdminUsers.HandleCreate)
			r.Post("/admin/users/{id}", h.AdminUsers.HandleUpdate)
			r.Get("/admin/users/{id}/delete", h.AdminUsers.HandleDeleteConfirm)
			r.Post("/admin/users/{id}/delete", h.AdminUsers.HandleDelete)
			r.Post("/admin/users/{id}/invalidate-sessions", h.AdminUsers.HandleInvalidateSessions)

			r.Get("/admin/videos", h.AdminVideos.HandleList)
			r.Post("/admin/videos", h.AdminVideos.HandleCreate)
			r.Post("/admin/videos/{id}", h.AdminVideos.HandleUpdate)
			r.Get("/admin/videos/{id}/delete", h.AdminVideos.HandleDeleteConfirm)
			r.Post("/admin/videos/{id}/delete", h.AdminVideos.HandleDelete)

			r.Get("/admin/categories", h.AdminCategories.HandleList)
			r.Post("/admin/categories", h.AdminCategories.HandleCreate)
			r.Post("/admin/categories/{id}", h.AdminCategories.HandleUpdate)
			r.Get("/admin/categories/{id}/delete", h.AdminCategories.HandleDeleteConfirm)
			r.Post("/admin/categories/{id}/delete", h.AdminCategories.HandleDelete)
		})
	})

	// Неизвестные пути — экран 404
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		if err := pages.NotFound(nil).Render(r.Context(), w); err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Ошибка рендеринга страницы 404",
				slog.String("error", err.Error()),
			)
		}
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// handleLiveness — GET /health/live
func handleLiveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"version": config.Version,
	})
}

// handleReadiness — GET /health/ready
// Readiness учитывает состояние критичных зависимостей (REST API платформы).
func handleReadiness(dephealthSvc *service.DephealthService) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if dephealthSvc != nil {
			for name, ok := range dephealthSvc.Health() {
				if !ok {
					w.WriteHeader(http.StatusServiceUnavailable)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"status": "unavailable",
						"reason": name,
					})
					return
				}
			}
		}

		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

// Run запускает сервер и ожидает сигнала завершения (SIGINT, SIGTERM).
// При получении сигнала выполняется graceful shutdown.
func (s *Server) Run() error {
	// Канал для ошибок сервера
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
