package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/schedulr/schedulr-bot/internal/controller/state"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	greeting := "👋 Welcome to Schedulr!\n\n" +
		"I build personalized CS course schedules from your grad year, " +
		"availability, completed courses and interests.\n\n" +
		"Commands:\n" +
		"/login - Log in with your NetID\n" +
		"/schedule - Generate a course schedule\n" +
		"/profile - Your profile\n" +
		"/availability - Edit weekly availability\n" +
		"/courses - Browse the course catalog\n" +
		"/course - Look up a course by number\n" +
		"/core - Core courses progress\n" +
		"/history - Past generated schedules\n" +
		"/chat - Chat (echo preview)\n" +
		"/help - Help"

	// Если чат уже был привязан к netid, здороваемся по имени
	sess, err := h.sessions.Resume(ctx, chatID)
	if err != nil {
		h.logger.Error("Failed to resume session on start",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
	if sess != nil {
		greeting = fmt.Sprintf("👋 Welcome back, %s!\n\n", strings.ToUpper(sess.User.Netid)) + greeting
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   greeting,
	})
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Schedulr commands:\n\n" +
		"/login - Log in with your NetID (created on first login)\n" +
		"/logout - Log out and forget this chat\n" +
		"/schedule - Update your profile and generate a schedule\n" +
		"/availability - Edit the weekly availability grid\n" +
		"/profile - Show your profile\n" +
		"/courses - Browse the full catalog\n" +
		"/course - Look up one course\n" +
		"/core - Core set with your progress\n" +
		"/history - Past generated schedules\n" +
		"/chat - Echo chat preview\n" +
		"/cancel - Abort the current dialog"

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   helpText,
	})
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if h.stateManager.GetState(chatID) == state.StateNone {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Nothing to cancel.",
		})
		return
	}

	h.stateManager.ClearState(chatID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "✅ Cancelled. Use /help to see available commands.",
	})
}

// HandleLogin начинает диалог логина
func (h *Handlers) HandleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if sess, ok := h.sessions.Get(chatID); ok {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text: fmt.Sprintf("You are already logged in as %s. Use /logout first.",
				strings.ToUpper(sess.User.Netid)),
		})
		return
	}

	h.stateManager.SetState(chatID, state.StateEnteringNetid)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: "🔑 Enter your NetID (e.g. rm834).\n\n" +
			"A profile is created automatically on first login.\n" +
			"Use /cancel to abort.",
	})
}

// HandleLogout обрабатывает команду /logout
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if _, ok := h.sessions.Get(chatID); !ok {
		// Привязка могла остаться в базе с прошлого запуска
		sess, err := h.sessions.Resume(ctx, chatID)
		if err != nil {
			h.logger.Error("Failed to resume session on logout",
				zap.Int64("chat_id", chatID),
				zap.Error(err))
		}
		if sess == nil {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "You are not logged in.",
			})
			return
		}
	}

	h.sessions.Logout(ctx, chatID)
	h.chat.Clear(chatID)
	h.stateManager.ClearState(chatID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "👋 Logged out. All cached data for this chat is gone.",
	})
}

// HandleChat переводит чат в режим echo-переписки
func (h *Handlers) HandleChat(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	h.stateManager.SetState(chatID, state.StateChatting)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: "💬 Chat preview: I will simply echo what you send.\n" +
			"A real assistant is coming later. Use /cancel to leave.",
	})
}
