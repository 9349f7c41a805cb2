package handlers

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/schedulr/schedulr-bot/internal/controller/callbacks"
	"github.com/schedulr/schedulr-bot/internal/controller/callbacks/common"
	"github.com/schedulr/schedulr-bot/internal/controller/callbacks/common/formatting"
	"github.com/schedulr/schedulr-bot/internal/controller/callbacks/common/keyboard"
	"github.com/schedulr/schedulr-bot/internal/controller/state"
	"github.com/schedulr/schedulr-bot/internal/model"
	"go.uber.org/zap"
)

// HandleSchedule начинает анкету генерации расписания.
// Черновик заполняется текущими данными профиля, каждый шаг можно
// пропустить, оставив прежнее значение.
func (h *Handlers) HandleSchedule(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	sess, ok := h.requireSession(ctx, b, chatID)
	if !ok {
		return
	}

	draft := h.stateManager.Draft(chatID)
	draft.Purpose = state.DraftPurposeSchedule
	draft.GraduationYear = sess.User.GraduationYear
	if sess.User.Interests != nil {
		draft.Interests = *sess.User.Interests
	}
	draft.PreviousCourses = strings.Join(sess.Completions, ", ")
	draft.Availability = availabilityFromProfile(sess.User.Availability, h.logger)

	h.stateManager.SetState(chatID, state.StateEnteringGradYear)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf(
			"📝 Let's build your schedule.\n\n"+
				"Step 1 of 4: What is your graduation year?\n"+
				"Current: %s. Send %s to keep it.\n\n"+
				"Use /cancel to abort.",
			draft.GraduationYear, KeepCurrentValue),
	})
}

// HandleAvailability открывает автономный редактор сетки доступности
func (h *Handlers) HandleAvailability(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	sess, ok := h.requireSession(ctx, b, chatID)
	if !ok {
		return
	}

	draft := h.stateManager.Draft(chatID)
	draft.Purpose = state.DraftPurposeAvailability
	draft.Availability = availabilityFromProfile(sess.User.Availability, h.logger)

	h.stateManager.SetState(chatID, state.StateEditingAvailability)
	h.sendAvailabilityGrid(ctx, b, chatID,
		"🕐 Tap the slots you are available (08:00–20:00), then press Done.")
}

// HandleProfile обрабатывает команду /profile
func (h *Handlers) HandleProfile(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	sess, ok := h.requireSession(ctx, b, chatID)
	if !ok {
		return
	}

	grid := availabilityFromProfile(sess.User.Availability, h.logger)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      formatting.FormatProfile(&sess.User, sess.Completions, grid),
		ParseMode: models.ParseModeHTML,
	})

	// Сетка доступности отдельной картинкой
	png, err := common.RenderAvailability(grid)
	if err != nil {
		h.logger.Error("Failed to render availability image",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return
	}

	b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: chatID,
		Photo: &models.InputFileUpload{
			Filename: "availability.png",
			Data:     bytes.NewReader(png),
		},
	})
}

// HandleHistory обрабатывает команду /history
func (h *Handlers) HandleHistory(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	sess, ok := h.requireSession(ctx, b, chatID)
	if !ok {
		return
	}

	// Список перечитывается с сервера: после каждой генерации он растёт
	schedules, err := h.scheduler.ListPastSchedules(ctx, sess.User.ID)
	if err != nil {
		h.logger.Error("Failed to load past schedules",
			zap.Int64("user_id", sess.User.ID),
			zap.Error(err))
		schedules = sess.PastSchedules
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      formatting.FormatPastSchedules(schedules),
		ParseMode: models.ParseModeHTML,
	})
}

// HandleCourses показывает первую страницу каталога
func (h *Handlers) HandleCourses(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	courses, err := h.catalog.ListCourses(ctx)
	if err != nil {
		h.logger.Error("Failed to load catalog", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ The course catalog is unavailable right now.")
		return
	}

	text, markup := callbacks.CourseListPage(courses, 0)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
}

// HandleCourse начинает диалог поиска курса по номеру
func (h *Handlers) HandleCourse(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	h.stateManager.SetState(chatID, state.StateEnteringCourseNumber)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "🔎 Enter a course number (e.g. CS 2110). Use /cancel to abort.",
	})
}

// HandleCore показывает core-набор с прогрессом пользователя
func (h *Handlers) HandleCore(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	sess, ok := h.requireSession(ctx, b, chatID)
	if !ok {
		return
	}

	statuses, err := h.catalog.CoreCourses(ctx, sess.Completions)
	if err != nil {
		h.logger.Error("Failed to load core courses", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ The core course set is unavailable right now.")
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      formatting.FormatCoreCourses(statuses),
		ParseMode: models.ParseModeHTML,
	})
}

// sendAvailabilityGrid отправляет клавиатуру сетки и запоминает
// ID сообщения для перерисовки на месте
func (h *Handlers) sendAvailabilityGrid(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	draft := h.stateManager.Draft(chatID)

	message, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: keyboardForDraft(draft),
	})
	if err != nil {
		h.logger.Error("Failed to send availability grid",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return
	}

	draft.GridMessageID = message.ID
}

func keyboardForDraft(draft *state.Draft) *models.InlineKeyboardMarkup {
	return keyboard.AvailabilityGrid(draft.Availability)
}

// availabilityFromProfile разбирает битстроку профиля, при мусоре в ней
// откатываясь на полную доступность
func availabilityFromProfile(bits string, logger *zap.Logger) model.AvailabilityGrid {
	grid, err := model.ParseAvailability(bits)
	if err != nil {
		logger.Warn("Profile has malformed availability, assuming full",
			zap.Error(err))
		return model.FullAvailability()
	}
	return grid
}
