package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/schedulr/schedulr-bot/internal/controller/callbacks/common/formatting"
	"github.com/schedulr/schedulr-bot/internal/controller/state"
	"go.uber.org/zap"
)

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от
// состояния диалога чата
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	chatID := update.Message.Chat.ID
	currentState := h.stateManager.GetState(chatID)

	if currentState == state.StateNone {
		return
	}

	h.logger.Debug("Handling dialog message",
		zap.Int64("chat_id", chatID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateEnteringNetid:
		h.handleNetidStep(ctx, b, update)
	case state.StateEnteringGradYear:
		h.handleGradYearStep(ctx, b, update)
	case state.StateEnteringInterests:
		h.handleInterestsStep(ctx, b, update)
	case state.StateEnteringPrevCourses:
		h.handlePrevCoursesStep(ctx, b, update)
	case state.StateEnteringCourseNumber:
		h.handleCourseNumberStep(ctx, b, update)
	case state.StateChatting:
		h.handleChatMessage(ctx, b, update)
	case state.StateEditingAvailability:
		// Сетка редактируется кнопками, текст здесь не нужен
		h.sendError(ctx, b, chatID, "Use the grid buttons above, or /cancel.")
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
	}
}

// handleNetidStep завершает диалог логина
func (h *Handlers) handleNetidStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	netid := strings.TrimSpace(update.Message.Text)

	if netid == "" || len(netid) > NetidMaxLength {
		h.sendError(ctx, b, chatID, "❌ That does not look like a NetID. Try again:")
		return
	}

	sess, err := h.sessions.Login(ctx, chatID, netid)
	if err != nil {
		h.logger.Error("Login failed",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		h.sendError(ctx, b, chatID,
			"❌ Login failed. The scheduling service may be down, try again later.")
		// Состояние не очищаем: можно сразу повторить ввод
		return
	}

	h.stateManager.ClearState(chatID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf(
			"✅ Logged in as %s (class of %s).\n\n"+
				"📚 Completed courses: %s\n"+
				"🗂 Past schedules: %d\n\n"+
				"Use /schedule to generate a course schedule.",
			strings.ToUpper(sess.User.Netid),
			sess.User.GraduationYear,
			formatting.FormatCompletions(sess.Completions),
			len(sess.PastSchedules)),
	})
}

// handleGradYearStep обрабатывает шаг 1 анкеты: год выпуска
func (h *Handlers) handleGradYearStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)
	draft := h.stateManager.Draft(chatID)

	if text != KeepCurrentValue {
		year, err := strconv.Atoi(text)
		if err != nil || year < GradYearMin || year > GradYearMax {
			h.sendError(ctx, b, chatID,
				fmt.Sprintf("❌ Enter a year between %d and %d, or %s to keep the current one:",
					GradYearMin, GradYearMax, KeepCurrentValue))
			return
		}
		draft.GraduationYear = text
	}

	h.stateManager.SetState(chatID, state.StateEnteringInterests)

	current := draft.Interests
	if current == "" {
		current = "none"
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf(
			"Step 2 of 4: What are you interested in? (e.g. ML, PL)\n"+
				"Current: %s. Send %s to keep it.",
			current, KeepCurrentValue),
	})
}

// handleInterestsStep обрабатывает шаг 2 анкеты: интересы
func (h *Handlers) handleInterestsStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)
	draft := h.stateManager.Draft(chatID)

	if text != KeepCurrentValue {
		if len(text) > InterestsMaxLength {
			h.sendError(ctx, b, chatID,
				fmt.Sprintf("❌ Keep it under %d characters. Try again:", InterestsMaxLength))
			return
		}
		draft.Interests = text
	}

	h.stateManager.SetState(chatID, state.StateEnteringPrevCourses)

	current := draft.PreviousCourses
	if current == "" {
		current = "none"
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf(
			"Step 3 of 4: Which courses have you already completed?\n"+
				"Comma-separated numbers, e.g. CS 1110, CS 2110.\n"+
				"Current: %s. Send %s to keep the list.",
			current, KeepCurrentValue),
	})
}

// handlePrevCoursesStep обрабатывает шаг 3 анкеты: завершённые курсы
func (h *Handlers) handlePrevCoursesStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)
	draft := h.stateManager.Draft(chatID)

	if text != KeepCurrentValue {
		if len(text) > PrevCoursesMaxLength {
			h.sendError(ctx, b, chatID,
				fmt.Sprintf("❌ Keep it under %d characters. Try again:", PrevCoursesMaxLength))
			return
		}
		draft.PreviousCourses = text
	}

	h.stateManager.SetState(chatID, state.StateEditingAvailability)
	h.sendAvailabilityGrid(ctx, b, chatID,
		"Step 4 of 4: Tap the slots you are available (08:00–20:00), then press Done.")
}

// handleCourseNumberStep показывает карточку найденного курса
func (h *Handlers) handleCourseNumberStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	number := strings.TrimSpace(update.Message.Text)

	course, err := h.catalog.GetCourse(ctx, number)
	if err != nil {
		h.logger.Warn("Course lookup failed",
			zap.String("number", number),
			zap.Error(err))
		h.sendError(ctx, b, chatID,
			"❌ Course not found. Check the number and try again, or /cancel.")
		return
	}

	h.stateManager.ClearState(chatID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      formatting.FormatCourseInfo(course),
		ParseMode: models.ParseModeHTML,
	})
}

// handleChatMessage отражает сообщение echo-ответом
func (h *Handlers) handleChatMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	reply, ok := h.chat.Send(chatID, update.Message.Text)
	if !ok {
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   reply.Content,
	})
}
