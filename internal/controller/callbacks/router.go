package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/schedulr/schedulr-bot/internal/controller/callbacks/common"
	"go.uber.org/zap"
)

// ========================
// Callback Data Patterns
// ========================

// Редактор сетки доступности
const (
	AvailabilityToggle = "av:" // av:<day>:<slot>
	AvailabilityAll    = "av_all"
	AvailabilityNone   = "av_none"
	AvailabilityDone   = "av_done"
	AvailabilityCancel = "av_cancel"
)

// Каталог курсов
const (
	CoursesPage = "courses_page:" // courses_page:2
	ViewCourse  = "view_course:"  // view_course:CS2110
	BackToList  = "back_to_courses:"
)

// HandleCallbackQuery точка входа для всех callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	h.Route(ctx, b, update.CallbackQuery)
}

// Route распределяет callback query по соответствующим обработчикам
func (h *Handler) Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	data := callback.Data

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	switch {
	case data == "noop":
		// No operation - просто подтверждаем callback
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Сетка доступности =====
	case strings.HasPrefix(data, AvailabilityToggle):
		h.HandleAvailabilityToggle(ctx, b, callback)
	case data == AvailabilityAll:
		h.HandleAvailabilitySetAll(ctx, b, callback, true)
	case data == AvailabilityNone:
		h.HandleAvailabilitySetAll(ctx, b, callback, false)
	case data == AvailabilityDone:
		h.HandleAvailabilityDone(ctx, b, callback)
	case data == AvailabilityCancel:
		h.HandleAvailabilityCancel(ctx, b, callback)

	// ===== Каталог курсов =====
	case strings.HasPrefix(data, CoursesPage):
		h.HandleCoursesPage(ctx, b, callback)
	case strings.HasPrefix(data, BackToList):
		h.HandleCoursesPage(ctx, b, callback)
	case strings.HasPrefix(data, ViewCourse):
		h.HandleViewCourse(ctx, b, callback)

	default:
		h.Logger.Warn("Unknown callback", zap.String("data", data))
		common.AnswerCallback(ctx, b, callback.ID, "")
	}
}
