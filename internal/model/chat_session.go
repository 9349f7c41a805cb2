package model

import "time"

// ChatSession привязка Telegram чата к пользователю Schedulr API.
// Хранится в базе, чтобы логин переживал перезапуск бота.
type ChatSession struct {
	ChatID    int64     `json:"chat_id"`
	UserID    int64     `json:"user_id"`
	Netid     string    `json:"netid"`
	CreatedAt time.Time `json:"created_at"`
}
