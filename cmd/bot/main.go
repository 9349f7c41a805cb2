package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schedulr/schedulr-bot/internal/api"
	"github.com/schedulr/schedulr-bot/internal/app"
	"github.com/schedulr/schedulr-bot/internal/config"
	"github.com/schedulr/schedulr-bot/internal/controller"
	"github.com/schedulr/schedulr-bot/internal/repository"
	"github.com/schedulr/schedulr-bot/internal/service"
	"github.com/schedulr/schedulr-bot/internal/session"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Sugar().Infow("Starting schedulr bot",
		"environment", cfg.Environment,
		"api_base_url", cfg.APIBaseURL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключаемся к базе
	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("✅ Connected to database")

	// Применяем миграции
	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	migrator.Close()

	// Клиент API планировщика
	apiClient := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, logger)

	// Репозитории и сервисы
	sessionRepo := repository.NewSessionRepository(pool)
	sessions := session.NewStore(apiClient, sessionRepo, logger)
	schedulerService := service.NewSchedulerService(apiClient, logger)
	catalogService := service.NewCatalogService(apiClient, logger)
	chatService := service.NewChatService(logger)

	// Telegram бот
	botInstance, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(
		botInstance,
		sessions,
		schedulerService,
		catalogService,
		chatService,
		logger,
	)

	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	// Фоновый прогрев каталога курсов
	refresher := app.NewRefresher(catalogService, time.Hour, logger)
	refresher.Start(ctx)
	defer refresher.Stop()

	logger.Info("🚀 Bot is up")
	if err := botController.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot shut down gracefully")
}
