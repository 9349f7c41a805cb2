package callbacks

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/schedulr/schedulr-bot/internal/controller/callbacks/common"
	"github.com/schedulr/schedulr-bot/internal/controller/callbacks/common/formatting"
	"github.com/schedulr/schedulr-bot/internal/controller/callbacks/common/keyboard"
	"github.com/schedulr/schedulr-bot/internal/controller/state"
	"github.com/schedulr/schedulr-bot/internal/model"
	"github.com/schedulr/schedulr-bot/internal/service"
	"github.com/schedulr/schedulr-bot/internal/session"
	"go.uber.org/zap"
)

// HandleAvailabilityToggle переключает один слот и перерисовывает клавиатуру
func (h *Handler) HandleAvailabilityToggle(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	message := common.GetMessageFromCallback(callback)
	if message == nil {
		return
	}
	chatID := message.Chat.ID

	day, slot, err := common.ParseGridCallback(callback.Data)
	if err != nil {
		h.Logger.Error("Failed to parse grid callback", zap.Error(err), zap.String("data", callback.Data))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Bad button")
		return
	}

	draft := h.StateManager.Draft(chatID)
	draft.Availability.Toggle(day, slot)

	h.redrawGrid(ctx, b, chatID, message.ID, draft)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleAvailabilitySetAll отмечает или снимает все слоты разом
func (h *Handler) HandleAvailabilitySetAll(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, value bool) {
	message := common.GetMessageFromCallback(callback)
	if message == nil {
		return
	}
	chatID := message.Chat.ID

	draft := h.StateManager.Draft(chatID)
	draft.Availability.SetAll(value)

	h.redrawGrid(ctx, b, chatID, message.ID, draft)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleAvailabilityCancel прерывает редактирование сетки
func (h *Handler) HandleAvailabilityCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	message := common.GetMessageFromCallback(callback)
	if message == nil {
		return
	}
	chatID := message.Chat.ID

	h.StateManager.ClearState(chatID)

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: message.ID,
		Text:      "❌ Cancelled. Use /help to see available commands.",
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleAvailabilityDone завершает редактирование сетки.
// Из анкеты /schedule запускается весь конвейер генерации;
// из /availability сетка просто сохраняется PATCH-ом.
func (h *Handler) HandleAvailabilityDone(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	message := common.GetMessageFromCallback(callback)
	if message == nil {
		return
	}
	chatID := message.Chat.ID

	sess, ok := h.Sessions.Get(chatID)
	if !ok {
		h.StateManager.ClearState(chatID)
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ You are not logged in. Use /login first.")
		return
	}

	draft := h.StateManager.Draft(chatID)
	purpose := draft.Purpose
	common.AnswerCallback(ctx, b, callback.ID, "")

	// Проверенную сессию передаём в хелперы напрямую: параллельный
	// /logout между Get и хелпером не должен ронять обработчик
	switch purpose {
	case state.DraftPurposeAvailability:
		h.saveAvailability(ctx, b, chatID, message.ID, sess, draft)
	default:
		h.submitSchedule(ctx, b, chatID, message.ID, sess, draft)
	}
}

// saveAvailability сохраняет отредактированную сетку PATCH-ом профиля,
// не трогая остальные поля.
func (h *Handler) saveAvailability(ctx context.Context, b *bot.Bot, chatID int64, messageID int, sess *session.Session, draft *state.Draft) {
	user, err := h.Scheduler.UpdateAvailability(ctx, sess.User.ID, sess.User.GraduationYear, sess.User.Interests, draft.Availability)
	if err != nil {
		h.Logger.Error("Failed to save availability",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    chatID,
			MessageID: messageID,
			Text:      "❌ Failed to save availability. Please try again later.",
		})
		h.StateManager.ClearState(chatID)
		return
	}

	h.Sessions.SetUser(chatID, *user)
	h.StateManager.ClearState(chatID)

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text: fmt.Sprintf("💾 Availability saved: %d of %d slots marked.",
			draft.Availability.Count(), model.AvailabilityDays*model.AvailabilitySlots),
	})
}

// submitSchedule запускает конвейер генерации и публикует результат
func (h *Handler) submitSchedule(ctx context.Context, b *bot.Bot, chatID int64, messageID int, sess *session.Session, draft *state.Draft) {
	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      "⏳ Generating your schedule...",
	})

	input := service.SubmitInput{
		GraduationYear:  draft.GraduationYear,
		Interests:       draft.Interests,
		PreviousCourses: draft.PreviousCourses,
		Availability:    draft.Availability,
	}

	result, err := h.Scheduler.Submit(ctx, sess.User.ID, sess.Completions, input)
	h.StateManager.ClearState(chatID)

	if err != nil {
		h.Logger.Error("Schedule generation failed",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    chatID,
			MessageID: messageID,
			Text:      "❌ Could not generate a schedule. Please try again later.",
		})
		return
	}

	// Обновляем кэш сессии авторитетными данными
	if result.User != nil {
		h.Sessions.SetUser(chatID, *result.User)
	}
	h.Sessions.SetCompletions(chatID, result.Completions)

	text := formatting.FormatRecommendedSchedule(result.Schedule)
	if len(result.AddFailures) > 0 {
		text += fmt.Sprintf("\n⚠️ %d course completion(s) could not be recorded.", len(result.AddFailures))
	}
	if len(result.SkippedRemovals) > 0 {
		text += "\n⚠️ Removing completed courses is not supported yet."
	}

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})

	h.sendScheduleImage(ctx, b, chatID, result)
}

// sendScheduleImage отправляет недельную картинку расписания.
// Отказ рендера не мешает текстовой карточке.
func (h *Handler) sendScheduleImage(ctx context.Context, b *bot.Bot, chatID int64, result *service.SubmitResult) {
	png, err := common.RenderSchedule(result.Schedule)
	if err != nil {
		h.Logger.Error("Failed to render schedule image",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return
	}

	b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: chatID,
		Photo: &models.InputFileUpload{
			Filename: "schedule.png",
			Data:     bytes.NewReader(png),
		},
		Caption: result.Schedule.Term,
	})
}

// redrawGrid перерисовывает клавиатуру сетки на месте
func (h *Handler) redrawGrid(ctx context.Context, b *bot.Bot, chatID int64, messageID int, draft *state.Draft) {
	b.EditMessageReplyMarkup(ctx, &bot.EditMessageReplyMarkupParams{
		ChatID:      chatID,
		MessageID:   messageID,
		ReplyMarkup: keyboard.AvailabilityGrid(draft.Availability),
	})
}
