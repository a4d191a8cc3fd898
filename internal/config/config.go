// Пакет config — загрузка и валидация конфигурации Admin Backend
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

// Config содержит все параметры конфигурации Admin Backend.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера (диапазон 8000-8009)
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string
	// Разрешённые Origin для CORS (через запятую)
	CORSAllowedOrigins []string

	// --- PostgreSQL ---

	// Хост PostgreSQL
	DBHost string
	// Порт PostgreSQL
	DBPort int
	// Имя базы данных
	DBName string
	// Имя пользователя PostgreSQL
	DBUser string
	// Пароль пользователя PostgreSQL
	DBPassword string
	// Режим SSL: disable, require, verify-ca, verify-full
	DBSSLMode string
	// Максимальный размер пула подключений
	DBMaxConns int
	// Минимальное число подключений, которое пул держит открытыми
	DBMinConns int
	// Максимальное время жизни подключения в пуле
	DBConnLifetime time.Duration

	// --- Доменные значения по умолчанию ---

	// Маркер «агент не назначен» для новых заявок POA.
	// Задаётся конфигурацией, а не строковым литералом в коде.
	UnassignedAgent string

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

	// AB_PORT — порт HTTP-сервера (по умолчанию 8000)
	cfg.Port, err = getEnvInt("AB_PORT", 8000)
	if err != nil {
		return nil, fmt.Errorf("AB_PORT: %w", err)
	}
	if cfg.Port < 8000 || cfg.Port > 8009 {
		return nil, fmt.Errorf("AB_PORT: значение %d вне допустимого диапазона 8000-8009", cfg.Port)
	}

	// AB_LOG_LEVEL — уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("AB_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("AB_LOG_LEVEL: %w", err)
	}

	// AB_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("AB_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("AB_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// AB_CORS_ALLOWED_ORIGINS — разрешённые Origin (по умолчанию "*")
	cfg.CORSAllowedOrigins = parseCSV(getEnvDefault("AB_CORS_ALLOWED_ORIGINS", "*"))

	// --- PostgreSQL ---

	// AB_DB_HOST — обязательный
	cfg.DBHost, err = getEnvRequired("AB_DB_HOST")
	if err != nil {
		return nil, err
	}

	// AB_DB_PORT — порт PostgreSQL (по умолчанию 5432)
	cfg.DBPort, err = getEnvInt("AB_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("AB_DB_PORT: %w", err)
	}

	// AB_DB_NAME — обязательный
	cfg.DBName, err = getEnvRequired("AB_DB_NAME")
	if err != nil {
		return nil, err
	}

	// AB_DB_USER — обязательный
	cfg.DBUser, err = getEnvRequired("AB_DB_USER")
	if err != nil {
		return nil, err
	}

	// AB_DB_PASSWORD — обязательный
	cfg.DBPassword, err = getEnvRequired("AB_DB_PASSWORD")
	if err != nil {
		return nil, err
	}

	// AB_DB_SSL_MODE — режим SSL (по умолчанию disable)
	cfg.DBSSLMode = getEnvDefault("AB_DB_SSL_MODE", "disable")
	validSSLModes := map[string]bool{
		"disable": true, "require": true, "verify-ca": true, "verify-full": true,
	}
	if !validSSLModes[cfg.DBSSLMode] {
		return nil, fmt.Errorf("AB_DB_SSL_MODE: недопустимое значение %q, допустимые: disable, require, verify-ca, verify-full", cfg.DBSSLMode)
	}

	// AB_DB_MAX_CONNS — максимальный размер пула (по умолчанию 10)
	cfg.DBMaxConns, err = getEnvInt("AB_DB_MAX_CONNS", 10)
	if err != nil {
		return nil, fmt.Errorf("AB_DB_MAX_CONNS: %w", err)
	}
	if cfg.DBMaxConns < 1 {
		return nil, fmt.Errorf("AB_DB_MAX_CONNS: значение %d должно быть не меньше 1", cfg.DBMaxConns)
	}

	// AB_DB_MIN_CONNS — минимум открытых подключений (по умолчанию 2)
	cfg.DBMinConns, err = getEnvInt("AB_DB_MIN_CONNS", 2)
	if err != nil {
		return nil, fmt.Errorf("AB_DB_MIN_CONNS: %w", err)
	}
	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		return nil, fmt.Errorf("AB_DB_MIN_CONNS: значение %d вне диапазона 0-%d", cfg.DBMinConns, cfg.DBMaxConns)
	}

	// AB_DB_CONN_LIFETIME — время жизни подключения (по умолчанию 30m)
	cfg.DBConnLifetime, err = getEnvDuration("AB_DB_CONN_LIFETIME", 30*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("AB_DB_CONN_LIFETIME: %w", err)
	}

	// --- Доменные значения по умолчанию ---

	// AB_UNASSIGNED_AGENT — маркер неназначенного агента (по умолчанию "Unassigned")
	cfg.UnassignedAgent = getEnvDefault("AB_UNASSIGNED_AGENT", "Unassigned")

	// --- Graceful shutdown ---

	// AB_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("AB_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("AB_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// DatabaseDSN возвращает строку подключения к PostgreSQL.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, c.DBSSLMode,
	)
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

// parseCSV разбирает строку, разделённую запятыми, на срез строк.
// Пробелы вокруг элементов убираются, пустые элементы игнорируются.
func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
