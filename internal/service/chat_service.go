package service

import (
	"strings"
	"sync"
	"time"

	"github.com/schedulr/schedulr-bot/internal/model"
	"go.uber.org/zap"
)

// ChatService чат-заглушка: никакой сети, каждое сообщение
// локально отражается ответом "Echo: ...". История живёт в памяти
// по ID чата.
type ChatService struct {
	mu        sync.RWMutex
	histories map[int64][]model.ChatMessage
	logger    *zap.Logger
}

func NewChatService(logger *zap.Logger) *ChatService {
	return &ChatService{
		histories: make(map[int64][]model.ChatMessage),
		logger:    logger,
	}
}

// Send записывает сообщение пользователя и возвращает echo-ответ.
// Пустой ввод игнорируется.
func (s *ChatService) Send(chatID int64, text string) (*model.ChatMessage, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, false
	}

	now := time.Now()
	userMessage := model.ChatMessage{Role: model.ChatRoleUser, Content: trimmed, SentAt: now}
	reply := model.ChatMessage{Role: model.ChatRoleAssistant, Content: "Echo: " + trimmed, SentAt: now}

	s.mu.Lock()
	s.histories[chatID] = append(s.histories[chatID], userMessage, reply)
	s.mu.Unlock()

	s.logger.Debug("Chat message echoed", zap.Int64("chat_id", chatID))

	return &reply, true
}

// History возвращает копию истории чата
func (s *ChatService) History(chatID int64) []model.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.histories[chatID]
	out := make([]model.ChatMessage, len(history))
	copy(out, history)
	return out
}

// Clear очищает историю чата
func (s *ChatService) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.histories, chatID)
}
