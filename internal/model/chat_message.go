package model

import "time"

// Роли сообщений в чате-заглушке
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage одно сообщение локального echo-чата
type ChatMessage struct {
	Role    string
	Content string
	SentAt  time.Time
}
