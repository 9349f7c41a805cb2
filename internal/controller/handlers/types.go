package handlers

import (
	"github.com/schedulr/schedulr-bot/internal/controller/state"
	"github.com/schedulr/schedulr-bot/internal/service"
	"github.com/schedulr/schedulr-bot/internal/session"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	sessions     *session.Store
	scheduler    *service.SchedulerService
	catalog      *service.CatalogService
	chat         *service.ChatService
	stateManager *state.Manager
	logger       *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	sessions *session.Store,
	scheduler *service.SchedulerService,
	catalog *service.CatalogService,
	chat *service.ChatService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		sessions:     sessions,
		scheduler:    scheduler,
		catalog:      catalog,
		chat:         chat,
		stateManager: stateManager,
		logger:       logger,
	}
}
