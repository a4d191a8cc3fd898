// Точка входа Admin Backend — бэкенд админ-портала LEGATORA.
// Загружает конфигурацию, применяет миграции, подключается к PostgreSQL,
// создаёт репозитории, сервисный слой и API handlers,
// запускает HTTP-сервер с метриками, логированием и graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/legatora/admin-backend/internal/api/handlers"
	"github.com/legatora/admin-backend/internal/api/middleware"
	"github.com/legatora/admin-backend/internal/config"
	"github.com/legatora/admin-backend/internal/database"
	"github.com/legatora/admin-backend/internal/repository"
	"github.com/legatora/admin-backend/internal/server"
	"github.com/legatora/admin-backend/internal/service"
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
	logger.Info("Admin Backend запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	// 3. Применение миграций БД
	logger.Info("Применение миграций БД...")
	if err := database.Migrate(cfg, logger); err != nil {
		logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Подключение к PostgreSQL (pgxpool)
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// 5. Repositories
	poaRepo := repository.NewPOARequestRepository(pool)
	externalDocRepo := repository.NewExternalDocRepository(pool)

	// 6. Services
	poaSvc := service.NewPOARequestService(poaRepo, cfg.UnassignedAgent, logger)
	externalDocSvc := service.NewExternalDocService(externalDocRepo, logger)
	dashboardSvc := service.NewDashboardService(logger)

	// 7. API handlers
	healthHandler := handlers.NewHealthHandler(database.NewReadinessChecker(pool))
	apiHandler := handlers.NewAPIHandler(healthHandler, poaSvc, externalDocSvc, dashboardSvc, logger)

	// 8. HTTP-сервер: метрики и логирование запросов
	srv := server.New(cfg, logger, apiHandler,
		middleware.MetricsMiddleware(),
		middleware.RequestLogger(logger),
	)

	if err := srv.Run(); err != nil {
		logger.Error("Ошибка HTTP-сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
