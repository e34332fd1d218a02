// Точка входа Frontend Module — веб-клиент платформы EduPlatform.
// Загружает конфигурацию, создаёт клиент REST API платформы, контроллер
// сессий с шифрованными cookie, обработчики экранов и route guards,
// запускает мониторинг зависимостей (topologymetrics) и HTTP-сервер
// с graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/eduplatform/frontend-module/internal/apiclient"
	"github.com/eduplatform/frontend-module/internal/config"
	"github.com/eduplatform/frontend-module/internal/middleware"
	"github.com/eduplatform/frontend-module/internal/server"
	"github.com/eduplatform/frontend-module/internal/service"
	"github.com/eduplatform/frontend-module/internal/session"
	"github.com/eduplatform/frontend-module/internal/ui/handlers"
	uimiddleware "github.com/eduplatform/frontend-module/internal/ui/middleware"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("Frontend Module запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("api_url", cfg.APIURL),
	)

	// Предупреждения о дефолтных значениях topologymetrics
	if os.Getenv("FM_DEPHEALTH_GROUP") == "" {
		logger.Warn("FM_DEPHEALTH_GROUP не задана, используется значение по умолчанию",
			slog.String("default", cfg.DephealthGroup),
		)
	}

	// 3. Клиент REST API платформы
	api := apiclient.New(cfg.APIURL, cfg.APITimeout, logger)

	// 4. Менеджер сессий (AES-256-GCM cookie)
	if cfg.SessionSecret == "" {
		logger.Warn("FM_SESSION_SECRET не задан, сессии не переживут рестарт модуля")
	}
	manager, err := session.NewManager(cfg.SessionSecret, cfg.SecureCookies)
	if err != nil {
		logger.Error("Ошибка создания менеджера сессий", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 5. Контроллер сессий и route guards
	controller := session.NewController(manager, api, logger)
	guard := uimiddleware.NewGuard(controller, logger)

	// 6. Rate limiter попыток входа
	loginLimiter := middleware.NewIPRateLimiter(
		cfg.LoginRateLimit,
		cfg.LoginRateWindow,
		cfg.LoginRateLimit,
		10*time.Minute,
	)

	// 7. Обработчики экранов
	h := &server.Handlers{
		Auth:            handlers.NewAuthHandler(controller, loginLimiter, logger),
		Dashboard:       handlers.NewDashboardHandler(api, controller, logger),
		Videos:          handlers.NewVideosHandler(api, controller, logger),
		Profile:         handlers.NewProfileHandler(api, controller, logger),
		AdminDashboard:  handlers.NewAdminDashboardHandler(api, controller, logger),
		AdminUsers:      handlers.NewAdminUsersHandler(api, controller, logger),
		AdminVideos:     handlers.NewAdminVideosHandler(api, controller, logger),
		AdminCategories: handlers.NewAdminCategoriesHandler(api, controller, logger),
	}

	// 8. Мониторинг зависимостей (topologymetrics)
	dephealthSvc, err := service.NewDephealthService(
		"frontend-module",
		cfg.DephealthGroup,
		cfg.APIURL,
		cfg.APIHealthPath,
		cfg.DephealthCheckInterval,
		logger,
	)
	if err != nil {
		logger.Error("Ошибка создания dephealth-сервиса", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := dephealthSvc.Start(ctx); err != nil {
		logger.Error("Ошибка запуска мониторинга зависимостей", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dephealthSvc.Stop()

	// 9. HTTP-сервер с graceful shutdown
	srv := server.New(cfg, logger, guard, h, dephealthSvc)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
