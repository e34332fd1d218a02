package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/eduplatform/frontend-module/internal/apiclient"
	"github.com/eduplatform/frontend-module/internal/session"
	uimiddleware "github.com/eduplatform/frontend-module/internal/ui/middleware"
)

// testLogger создаёт logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// testEnv — клиент API и контроллер сессий поверх mock-сервера платформы.
func testEnv(t *testing.T, handler http.HandlerFunc) (*apiclient.Client, *session.Controller) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := testLogger()
	api := apiclient.New(server.URL, 5*time.Second, logger)

	manager, err := session.NewManager("test-key", false)
	if err != nil {
		t.Fatal(err)
	}
	return api, session.NewController(manager, api, logger)
}

// testUser — вошедший пользователь для тестов.
func testUser(staff bool) *apiclient.User {
	return &apiclient.User{
		ID:       1,
		Username: "admin",
		IsStaff:  staff,
		IsActive: true,
	}
}

// injectState — middleware, подменяющий route guard: кладёт готовое
// состояние сессии в контекст запроса.
func injectState(user *apiclient.User) func(http.Handler) http.Handler {
	state := &session.State{
		Status: session.StatusAuthenticated,
		User:   user,
		Data: &session.Data{
			AccessToken:  "acc",
			RefreshToken: "ref",
			User:         user,
		},
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), uimiddleware.ContextKeySessionState, state)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// testRouter создаёт chi-роутер с подменённым состоянием сессии.
func testRouter(user *apiclient.User, register func(chi.Router)) *chi.Mux {
	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(injectState(user))
		register(r)
	})
	return router
}
