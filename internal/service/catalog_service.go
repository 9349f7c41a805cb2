package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/schedulr/schedulr-bot/internal/api"
	"github.com/schedulr/schedulr-bot/internal/model"
	"go.uber.org/zap"
)

// CatalogService отдаёт каталог курсов для просмотра в боте.
// Полный список кэшируется в памяти, чтобы пагинация по /courses
// не ходила в API на каждую страницу.
type CatalogService struct {
	client *api.Client
	logger *zap.Logger

	mu        sync.RWMutex
	cached    []api.Course
	fetchedAt time.Time
	ttl       time.Duration
}

func NewCatalogService(client *api.Client, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		client: client,
		logger: logger,
		ttl:    time.Hour,
	}
}

// ListCourses возвращает полный каталог, по возможности из кэша
func (s *CatalogService) ListCourses(ctx context.Context) ([]api.Course, error) {
	s.mu.RLock()
	if s.cached != nil && time.Since(s.fetchedAt) < s.ttl {
		courses := s.cached
		s.mu.RUnlock()
		return courses, nil
	}
	s.mu.RUnlock()

	return s.Refresh(ctx)
}

// Refresh перечитывает каталог из API и обновляет кэш
func (s *CatalogService) Refresh(ctx context.Context) ([]api.Course, error) {
	courses, err := s.client.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh catalog: %w", err)
	}

	s.mu.Lock()
	s.cached = courses
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	s.logger.Info("Catalog refreshed", zap.Int("courses", len(courses)))

	return courses, nil
}

// GetCourse получает один курс по номеру (без кэша, всегда свежий)
func (s *CatalogService) GetCourse(ctx context.Context, number string) (*api.Course, error) {
	course, err := s.client.GetCourse(ctx, model.NormalizeCourseNumber(number))
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	return course, nil
}

// CoreCourseStatus core-курс с признаком, закрыт ли он пользователем
type CoreCourseStatus struct {
	Number    string
	Completed bool
}

// CoreCourses получает core-набор и помечает закрытые курсы
// по списку завершённых (сравнение по нормализованному номеру)
func (s *CatalogService) CoreCourses(ctx context.Context, completed []string) ([]CoreCourseStatus, error) {
	numbers, err := s.client.CoreCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("core courses: %w", err)
	}

	have := make(map[string]struct{}, len(completed))
	for _, number := range completed {
		have[model.NormalizeCourseNumber(number)] = struct{}{}
	}

	statuses := make([]CoreCourseStatus, 0, len(numbers))
	for _, number := range numbers {
		_, done := have[model.NormalizeCourseNumber(number)]
		statuses = append(statuses, CoreCourseStatus{Number: number, Completed: done})
	}

	return statuses, nil
}
