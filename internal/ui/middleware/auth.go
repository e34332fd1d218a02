// Пакет middleware — HTTP middleware для UI frontend-module.
// auth.go — route guards: проверка сессии перед рендером защищённых
// экранов и проверка staff-статуса для admin-экранов.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/eduplatform/frontend-module/internal/session"
	"github.com/eduplatform/frontend-module/internal/ui/pages"
)

// contextKey — тип для ключей контекста UI.
type contextKey string

const (
	// ContextKeySessionState — разрешённое состояние сессии в контексте запроса.
	ContextKeySessionState contextKey = "session_state"
)

// StateFromContext возвращает состояние сессии запроса.
// nil — guard не отработал (незащищённый маршрут).
func StateFromContext(ctx context.Context) *session.State {
	if state, ok := ctx.Value(ContextKeySessionState).(*session.State); ok {
		return state
	}
	return nil
}

// Guard — route guards защищённых экранов.
// Защищённый контент не отправляется клиенту, пока сессия не подтверждена.
type Guard struct {
	controller *session.Controller
	logger     *slog.Logger
}

// NewGuard создаёт route guards.
func NewGuard(controller *session.Controller, logger *slog.Logger) *Guard {
	return &Guard{
		controller: controller,
		logger:     logger.With(slog.String("component", "route_guard")),
	}
}

// RequireSession возвращает middleware для защищённых маршрутов.
// Анонимный запрос перенаправляется на /login; подтверждённое состояние
// сессии кладётся в контекст запроса.
func (g *Guard) RequireSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := g.controller.Resolve(r.Context(), w, r)
			if !state.Authenticated() {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySessionState, state)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireStaff возвращает middleware для admin-маршрутов.
// Применяется после RequireSession; не-staff пользователь получает
// страницу «доступ запрещён» со статусом 403.
func (g *Guard) RequireStaff() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := StateFromContext(r.Context())
			if state == nil || !state.Authenticated() {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			if state.User == nil || !state.User.IsStaff {
				username := ""
				if state.User != nil {
					username = state.User.Username
				}
				g.logger.Warn("Попытка доступа к admin-экрану без staff-статуса",
					slog.String("username", username),
					slog.String("path", r.URL.Path),
				)
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.WriteHeader(http.StatusForbidden)
				if err := pages.AccessDenied(state.User).Render(r.Context(), w); err != nil {
					g.logger.Error("Ошибка рендеринга страницы", slog.String("error", err.Error()))
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
