package app

import (
	"context"
	"time"

	"github.com/schedulr/schedulr-bot/internal/service"
	"go.uber.org/zap"
)

// Refresher управляет фоновыми задачами
type Refresher struct {
	catalogService *service.CatalogService
	interval       time.Duration
	logger         *zap.Logger
	stopChan       chan struct{}
}

// NewRefresher создаёт новый фоновый обновлятор каталога
func NewRefresher(catalogService *service.CatalogService, interval time.Duration, logger *zap.Logger) *Refresher {
	return &Refresher{
		catalogService: catalogService,
		interval:       interval,
		logger:         logger,
		stopChan:       make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (r *Refresher) Start(ctx context.Context) {
	r.logger.Info("Starting background catalog refresher")

	go r.runCatalogRefreshTask(ctx)
}

// Stop останавливает фоновые задачи
func (r *Refresher) Stop() {
	r.logger.Info("Stopping background catalog refresher")
	close(r.stopChan)
}

// runCatalogRefreshTask периодически прогревает кэш каталога курсов
func (r *Refresher) runCatalogRefreshTask(ctx context.Context) {
	// Первый запуск сразу при старте, чтобы /courses отвечал без задержки
	r.refreshCatalog(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.refreshCatalog(ctx)
		case <-r.stopChan:
			r.logger.Info("Catalog refresh task stopped")
			return
		case <-ctx.Done():
			r.logger.Info("Catalog refresh task cancelled")
			return
		}
	}
}

// refreshCatalog загружает свежий список курсов из API
func (r *Refresher) refreshCatalog(ctx context.Context) {
	r.logger.Info("Refreshing course catalog cache")

	if _, err := r.catalogService.Refresh(ctx); err != nil {
		r.logger.Error("Failed to refresh course catalog", zap.Error(err))
		return
	}

	r.logger.Info("Course catalog cache refreshed")
}
