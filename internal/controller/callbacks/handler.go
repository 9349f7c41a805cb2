package callbacks

import (
	"github.com/schedulr/schedulr-bot/internal/controller/state"
	"github.com/schedulr/schedulr-bot/internal/service"
	"github.com/schedulr/schedulr-bot/internal/session"
	"go.uber.org/zap"
)

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	Sessions     *session.Store
	Scheduler    *service.SchedulerService
	Catalog      *service.CatalogService
	StateManager *state.Manager
	Logger       *zap.Logger
}

// NewHandler создаёт callback handler с зависимостями
func NewHandler(
	sessions *session.Store,
	scheduler *service.SchedulerService,
	catalog *service.CatalogService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Sessions:     sessions,
		Scheduler:    scheduler,
		Catalog:      catalog,
		StateManager: stateManager,
		Logger:       logger,
	}
}
