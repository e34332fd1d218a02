// Пакет config — загрузка и валидация конфигурации Frontend Module
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации Frontend Module.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера (диапазон 8000-8009)
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- Platform API ---

	// Базовый URL REST API платформы (например, https://api.eduplatform.lan)
	APIURL string
	// Таймаут HTTP-запросов к API платформы
	APITimeout time.Duration

	// --- Сессии ---

	// Секрет для шифрования session cookie (AES-256-GCM).
	// Пустая строка — случайный ключ, сессии не переживают рестарт.
	SessionSecret string
	// Secure flag для cookie (true при работе за HTTPS-терминатором)
	SecureCookies bool

	// --- Rate limiting ---

	// Количество попыток входа с одного IP за окно
	LoginRateLimit int
	// Окно rate limit для попыток входа
	LoginRateWindow time.Duration

	// --- topologymetrics ---

	// Имя группы в метриках dephealth
	DephealthGroup string
	// Интервал проверки зависимостей topologymetrics
	DephealthCheckInterval time.Duration
	// Путь health-check endpoint'а API платформы
	APIHealthPath string

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown HTTP-сервера
	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения, валидирует
// обязательные поля и возвращает Config или ошибку.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// FM_PORT — порт HTTP-сервера (по умолчанию 8000)
	cfg.Port, err = getEnvInt("FM_PORT", 8000)
	if err != nil {
		return nil, fmt.Errorf("FM_PORT: %w", err)
	}
	if cfg.Port < 8000 || cfg.Port > 8009 {
		return nil, fmt.Errorf("FM_PORT: значение %d вне допустимого диапазона 8000-8009", cfg.Port)
	}

	// FM_LOG_LEVEL — уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("FM_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("FM_LOG_LEVEL: %w", err)
	}

	// FM_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("FM_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("FM_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- Platform API ---

	// FM_API_URL — обязательный
	cfg.APIURL, err = getEnvRequired("FM_API_URL")
	if err != nil {
		return nil, err
	}
	// Убираем trailing slash
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	// FM_API_TIMEOUT — таймаут запросов к API (по умолчанию 30s)
	cfg.APITimeout, err = getEnvDuration("FM_API_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("FM_API_TIMEOUT: %w", err)
	}

	// --- Сессии ---

	// FM_SESSION_SECRET — секрет шифрования cookie (опционально)
	cfg.SessionSecret = getEnvDefault("FM_SESSION_SECRET", "")

	// FM_SECURE_COOKIES — Secure flag для cookie (по умолчанию false)
	cfg.SecureCookies = getEnvDefault("FM_SECURE_COOKIES", "false") == "true"

	// --- Rate limiting ---

	// FM_LOGIN_RATE_LIMIT — попыток входа за окно (по умолчанию 10)
	cfg.LoginRateLimit, err = getEnvInt("FM_LOGIN_RATE_LIMIT", 10)
	if err != nil {
		return nil, fmt.Errorf("FM_LOGIN_RATE_LIMIT: %w", err)
	}
	if cfg.LoginRateLimit < 1 {
		return nil, fmt.Errorf("FM_LOGIN_RATE_LIMIT: значение %d должно быть положительным", cfg.LoginRateLimit)
	}

	// FM_LOGIN_RATE_WINDOW — окно rate limit (по умолчанию 1m)
	cfg.LoginRateWindow, err = getEnvDuration("FM_LOGIN_RATE_WINDOW", time.Minute)
	if err != nil {
		return nil, fmt.Errorf("FM_LOGIN_RATE_WINDOW: %w", err)
	}

	// --- topologymetrics ---

	// FM_DEPHEALTH_GROUP — имя группы (по умолчанию "eduplatform")
	cfg.DephealthGroup = getEnvDefault("FM_DEPHEALTH_GROUP", "eduplatform")

	// FM_DEPHEALTH_CHECK_INTERVAL — интервал проверки зависимостей (по умолчанию 15s)
	cfg.DephealthCheckInterval, err = getEnvDuration("FM_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("FM_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// FM_API_HEALTH_PATH — health-check endpoint API (по умолчанию /api/health/)
	cfg.APIHealthPath = getEnvDefault("FM_API_HEALTH_PATH", "/api/health/")

	// --- Graceful shutdown ---

	// FM_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("FM_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("FM_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
