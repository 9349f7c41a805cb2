package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schedulr/schedulr-bot/internal/model"
)

type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Upsert сохраняет привязку чата к пользователю (перезаписывает старую)
func (r *SessionRepository) Upsert(ctx context.Context, session *model.ChatSession) error {
	query := `
		INSERT INTO chat_sessions (chat_id, user_id, netid)
		VALUES ($1, $2, $3)
		ON CONFLICT (chat_id) DO UPDATE
		SET user_id = EXCLUDED.user_id, netid = EXCLUDED.netid
		RETURNING created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		session.ChatID,
		session.UserID,
		session.Netid,
	).Scan(&session.CreatedAt)

	if err != nil {
		return fmt.Errorf("upsert chat session: %w", err)
	}

	return nil
}

// GetByChatID получает привязку по ID чата
func (r *SessionRepository) GetByChatID(ctx context.Context, chatID int64) (*model.ChatSession, error) {
	query := `
		SELECT chat_id, user_id, netid, created_at
		FROM chat_sessions
		WHERE chat_id = $1
	`

	var session model.ChatSession
	err := r.pool.QueryRow(ctx, query, chatID).Scan(
		&session.ChatID,
		&session.UserID,
		&session.Netid,
		&session.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // Чат не залогинен
		}
		return nil, fmt.Errorf("get chat session: %w", err)
	}

	return &session, nil
}

// Delete удаляет привязку чата (logout)
func (r *SessionRepository) Delete(ctx context.Context, chatID int64) error {
	query := `
		DELETE FROM chat_sessions
		WHERE chat_id = $1
	`

	_, err := r.pool.Exec(ctx, query, chatID)
	if err != nil {
		return fmt.Errorf("delete chat session: %w", err)
	}

	return nil
}
