package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/schedulr/schedulr-bot/internal/api"
	"github.com/schedulr/schedulr-bot/internal/model"
	"github.com/schedulr/schedulr-bot/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Session кэш данных залогиненного пользователя для одного чата.
// Живёт от логина до логаута, на логауте выбрасывается целиком.
type Session struct {
	User          api.User
	Completions   []string
	PastSchedules []api.ScheduleInfo
}

// Store держит сессии по ID чата. Привязка чата к netid дополнительно
// сохраняется в базе, чтобы логин переживал перезапуск процесса.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session

	client *api.Client
	repo   *repository.SessionRepository
	logger *zap.Logger

	now func() time.Time
}

// NewStore создаёт новое хранилище сессий
func NewStore(client *api.Client, repo *repository.SessionRepository, logger *zap.Logger) *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		client:   client,
		repo:     repo,
		logger:   logger,
		now:      time.Now,
	}
}

// Normalize приводит netid к каноническому виду: без пробелов, нижний регистр
func Normalize(netid string) string {
	return strings.ToLower(strings.TrimSpace(netid))
}

// Login находит или создаёт пользователя по netid (без учёта регистра)
// и кэширует его сессию для чата.
func (s *Store) Login(ctx context.Context, chatID int64, netid string) (*Session, error) {
	normalized := Normalize(netid)
	if normalized == "" {
		return nil, fmt.Errorf("login: empty netid")
	}

	users, err := s.client.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	var user *api.User
	for i := range users {
		if strings.ToLower(users[i].Netid) == normalized {
			user = &users[i]
			break
		}
	}

	if user == nil {
		// Первый логин: создаём профиль с текущим годом выпуска
		// и полной доступностью.
		year := strconv.Itoa(s.now().Year())
		availability := model.FullAvailability().Bitstring()

		user, err = s.client.CreateUser(ctx, normalized, year, nil, availability)
		if err != nil {
			return nil, fmt.Errorf("login: %w", err)
		}

		s.logger.Info("New user created",
			zap.Int64("user_id", user.ID),
			zap.String("netid", user.Netid))
	}

	sess := &Session{User: *user}
	s.loadPastData(ctx, sess)

	s.mu.Lock()
	s.sessions[chatID] = sess
	s.mu.Unlock()

	s.persistBinding(ctx, chatID, user)

	s.logger.Info("User logged in",
		zap.Int64("chat_id", chatID),
		zap.Int64("user_id", user.ID),
		zap.String("netid", user.Netid))

	return sess, nil
}

// Resume восстанавливает сессию чата: сперва из памяти, затем из базы.
// Возвращает (nil, nil), если чат не залогинен.
func (s *Store) Resume(ctx context.Context, chatID int64) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[chatID]
	s.mu.RUnlock()
	if ok {
		return sess, nil
	}

	if s.repo == nil {
		return nil, nil
	}

	binding, err := s.repo.GetByChatID(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("resume session: %w", err)
	}
	if binding == nil {
		return nil, nil
	}

	user, err := s.client.GetUser(ctx, binding.UserID)
	if err != nil {
		return nil, fmt.Errorf("resume session: %w", err)
	}

	sess = &Session{User: *user}
	s.loadPastData(ctx, sess)

	s.mu.Lock()
	s.sessions[chatID] = sess
	s.mu.Unlock()

	s.logger.Info("Session resumed from storage",
		zap.Int64("chat_id", chatID),
		zap.Int64("user_id", user.ID))

	return sess, nil
}

// Get возвращает сессию чата из памяти, без похода в базу
func (s *Store) Get(chatID int64) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[chatID]
	return sess, ok
}

// Logout выбрасывает всё закэшированное состояние чата
func (s *Store) Logout(ctx context.Context, chatID int64) {
	s.mu.Lock()
	delete(s.sessions, chatID)
	s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.Delete(ctx, chatID); err != nil {
			s.logger.Warn("Failed to delete session binding",
				zap.Int64("chat_id", chatID),
				zap.Error(err))
		}
	}

	s.logger.Info("User logged out", zap.Int64("chat_id", chatID))
}

// SetUser обновляет закэшированный профиль после PATCH
func (s *Store) SetUser(chatID int64, user api.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[chatID]; ok {
		sess.User = user
	}
}

// SetCompletions обновляет закэшированный список завершённых курсов
func (s *Store) SetCompletions(chatID int64, completions []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[chatID]; ok {
		sess.Completions = completions
	}
}

// loadPastData загружает завершённые курсы и прошлые расписания.
// Запросы независимы и выполняются параллельно без общей отмены:
// отказ одного не прерывает другой и не мешает логину, у отказавшего
// остаётся пустой список.
func (s *Store) loadPastData(ctx context.Context, sess *Session) {
	userID := sess.User.ID

	var g errgroup.Group

	g.Go(func() error {
		completions, err := s.client.ListCompletions(ctx, userID)
		if err != nil {
			return fmt.Errorf("load completions: %w", err)
		}
		sess.Completions = completions
		return nil
	})

	g.Go(func() error {
		schedules, err := s.client.ListSchedules(ctx, userID)
		if err != nil {
			return fmt.Errorf("load past schedules: %w", err)
		}
		sess.PastSchedules = schedules
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Warn("Failed to load past data",
			zap.Int64("user_id", userID),
			zap.Error(err))
	}
}

// persistBinding сохраняет привязку чата к пользователю в базе.
// Отказ записи не валит логин, сессия остаётся в памяти.
func (s *Store) persistBinding(ctx context.Context, chatID int64, user *api.User) {
	if s.repo == nil {
		return
	}

	binding := &model.ChatSession{
		ChatID: chatID,
		UserID: user.ID,
		Netid:  user.Netid,
	}

	if err := s.repo.Upsert(ctx, binding); err != nil {
		s.logger.Warn("Failed to persist session binding",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}
