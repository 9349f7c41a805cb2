package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/schedulr/schedulr-bot/internal/session"
	"go.uber.org/zap"
)

// sendError отправляет сообщение об ошибке в чат
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
}

// requireSession восстанавливает сессию чата или просит залогиниться.
// Возвращает (nil, false), если чат не залогинен.
func (h *Handlers) requireSession(ctx context.Context, b *bot.Bot, chatID int64) (*session.Session, bool) {
	sess, err := h.sessions.Resume(ctx, chatID)
	if err != nil {
		h.logger.Error("Failed to resume session",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}

	if sess == nil {
		h.sendError(ctx, b, chatID, "🔑 You are not logged in. Use /login to start.")
		return nil, false
	}

	return sess, true
}
