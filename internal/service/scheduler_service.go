package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/schedulr/schedulr-bot/internal/api"
	"github.com/schedulr/schedulr-bot/internal/model"
	"go.uber.org/zap"
)

// SchedulerService гоняет цепочку вызовов "обновить профиль →
// синхронизировать завершённые курсы → сгенерировать расписание →
// сопоставить с каталогом". Стадии именованные и последовательные,
// параллелен только fan-out добавления курсов.
type SchedulerService struct {
	client *api.Client
	logger *zap.Logger

	now func() time.Time
}

func NewSchedulerService(client *api.Client, logger *zap.Logger) *SchedulerService {
	return &SchedulerService{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// SubmitInput собранное в диалоге состояние профиля и предпочтений
type SubmitInput struct {
	GraduationYear  string
	Interests       string
	PreviousCourses string // свободный текст, номера через запятую
	Availability    model.AvailabilityGrid
}

// SubmitResult итог конвейера. AddFailures собирает отказы отдельных
// добавлений, а не глотает их.
type SubmitResult struct {
	Schedule        *model.RecommendedSchedule
	User            *api.User
	Completions     []string // авторитетный список после синхронизации
	ProfileUpdated  bool
	AddFailures     map[string]error
	SkippedRemovals []string
}

// Submit прогоняет весь конвейер для пользователя.
// Отказ PATCH не фатален: стадии 3-4 пропускаются, генерация идёт
// по известному user id. Отказ генерации или каталога — фатален,
// ранее опубликованное расписание остаётся как было.
func (s *SchedulerService) Submit(ctx context.Context, userID int64, existing []string, in SubmitInput) (*SubmitResult, error) {
	result := &SubmitResult{
		Completions: existing,
		AddFailures: make(map[string]error),
	}

	// Стадия 1-2: битстрока доступности и PATCH профиля
	var interests *string
	if trimmed := strings.TrimSpace(in.Interests); trimmed != "" {
		interests = &trimmed
	}

	user, err := s.client.UpdateUser(ctx, userID, in.GraduationYear, interests, in.Availability.Bitstring())
	if err != nil {
		s.logger.Error("Profile update failed, proceeding to generation",
			zap.Int64("user_id", userID),
			zap.Error(err))
	} else {
		result.ProfileUpdated = true
		result.User = user

		// Стадии 3-4: только после успешного PATCH
		s.syncCompletions(ctx, userID, existing, in.PreviousCourses, result)
	}

	// Стадия 5: генерация расписания
	generated, err := s.client.GenerateSchedule(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}

	// Стадия 6: каталог и сопоставление секций
	schedule, err := s.resolveSchedule(ctx, generated)
	if err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}

	// Стадия 7: публикация
	result.Schedule = schedule

	s.logger.Info("Schedule generated",
		zap.Int64("user_id", userID),
		zap.Int64("schedule_id", schedule.ID),
		zap.Float64("score", schedule.Score),
		zap.Int("courses", len(schedule.Courses)))

	return result, nil
}

// ListPastSchedules получает прошлые генерации пользователя
func (s *SchedulerService) ListPastSchedules(ctx context.Context, userID int64) ([]api.ScheduleInfo, error) {
	schedules, err := s.client.ListSchedules(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list past schedules: %w", err)
	}
	return schedules, nil
}

// UpdateAvailability сохраняет одну лишь сетку доступности, не трогая
// остальные поля профиля (PATCH шлёт их прежние значения)
func (s *SchedulerService) UpdateAvailability(ctx context.Context, userID int64, graduationYear string, interests *string, grid model.AvailabilityGrid) (*api.User, error) {
	user, err := s.client.UpdateUser(ctx, userID, graduationYear, interests, grid.Bitstring())
	if err != nil {
		return nil, fmt.Errorf("update availability: %w", err)
	}
	return user, nil
}

// syncCompletions разбирает свободный текст прошлых курсов и досылает
// на сервер недостающие записи. Добавления уходят параллельно;
// после join список перечитывается с сервера.
//
// Вычисленные удаления не применяются: у API нет delete-эндпоинта.
func (s *SchedulerService) syncCompletions(ctx context.Context, userID int64, existing []string, freeText string, result *SubmitResult) {
	parsed := ParseCourseList(freeText)

	have := make(map[string]struct{}, len(existing))
	for _, number := range existing {
		have[model.NormalizeCourseNumber(number)] = struct{}{}
	}

	wanted := make(map[string]struct{}, len(parsed))
	var toAdd []string
	for _, number := range parsed {
		key := model.NormalizeCourseNumber(number)
		wanted[key] = struct{}{}
		if _, ok := have[key]; !ok {
			toAdd = append(toAdd, number)
		}
	}

	for _, number := range existing {
		if _, ok := wanted[model.NormalizeCourseNumber(number)]; !ok {
			result.SkippedRemovals = append(result.SkippedRemovals, number)
		}
	}
	if len(result.SkippedRemovals) > 0 {
		s.logger.Warn("Completion removals are not supported by the API, skipping",
			zap.Int64("user_id", userID),
			zap.Strings("course_numbers", result.SkippedRemovals))
	}

	if len(toAdd) > 0 {
		var mu sync.Mutex
		var wg sync.WaitGroup

		for _, number := range toAdd {
			wg.Add(1)
			go func(number string) {
				defer wg.Done()

				if _, err := s.client.AddCompletion(ctx, userID, number); err != nil {
					mu.Lock()
					result.AddFailures[number] = err
					mu.Unlock()

					s.logger.Error("Failed to add completion",
						zap.Int64("user_id", userID),
						zap.String("course_number", number),
						zap.Error(err))
				}
			}(number)
		}

		wg.Wait()
	}

	// Отображаемый список берём только с сервера, после того как
	// улеглись все добавления.
	refreshed, err := s.client.ListCompletions(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to refresh completions",
			zap.Int64("user_id", userID),
			zap.Error(err))
		return
	}

	result.Completions = refreshed
}

// resolveSchedule джойнит секции сгенерированного расписания с каталогом
// по нормализованному номеру курса.
func (s *SchedulerService) resolveSchedule(ctx context.Context, generated *api.Schedule) (*model.RecommendedSchedule, error) {
	catalog, err := s.client.ListCourses(ctx)
	if err != nil {
		return nil, err
	}

	byNumber := make(map[string]*api.Course, len(catalog))
	for i := range catalog {
		byNumber[model.NormalizeCourseNumber(catalog[i].Number)] = &catalog[i]
	}

	courses := make([]model.ResolvedCourse, 0, len(generated.Sections))
	for _, section := range generated.Sections {
		courses = append(courses, resolveSection(section, byNumber))
	}

	return &model.RecommendedSchedule{
		ID:        generated.ID,
		Term:      TermLabel(s.now()),
		Score:     generated.Score,
		Rationale: generated.Rationale,
		Courses:   courses,
	}, nil
}

// resolveSection ищет секцию в каталоге; при промахе синтезирует запись
// с сырым номером вместо названия и временем встреч вместо описания.
func resolveSection(section api.Section, byNumber map[string]*api.Course) model.ResolvedCourse {
	resolved := model.ResolvedCourse{
		Number:   section.CourseNumber,
		Section:  section.Section,
		Days:     section.Days,
		StartMin: section.StartMin,
		EndMin:   section.EndMin,
	}

	if course, ok := byNumber[model.NormalizeCourseNumber(section.CourseNumber)]; ok {
		resolved.Name = course.Name
		resolved.Credits = course.Credits
		if course.Description != nil {
			resolved.Description = *course.Description
		}
		return resolved
	}

	resolved.Name = section.CourseNumber
	resolved.Description = MeetingDescription(section.Days, section.StartMin, section.EndMin)
	return resolved
}

// MeetingDescription описание времени встреч вида "MWF 540–595"
func MeetingDescription(days string, startMin, endMin *int) string {
	start, end := 0, 0
	if startMin != nil {
		start = *startMin
	}
	if endMin != nil {
		end = *endMin
	}
	return fmt.Sprintf("%s %d–%d", days, start, end)
}

// ParseCourseList разбирает свободный текст: номера через запятую,
// пробелы обрезаются, пустые и повторные записи выбрасываются.
func ParseCourseList(freeText string) []string {
	seen := make(map[string]struct{})
	var numbers []string

	for _, part := range strings.Split(freeText, ",") {
		number := strings.TrimSpace(part)
		if number == "" {
			continue
		}
		key := model.NormalizeCourseNumber(number)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		numbers = append(numbers, number)
	}

	return numbers
}

// TermLabel выводит название семестра из даты
func TermLabel(t time.Time) string {
	switch {
	case t.Month() <= time.May:
		return fmt.Sprintf("Spring %d", t.Year())
	case t.Month() <= time.July:
		return fmt.Sprintf("Summer %d", t.Year())
	default:
		return fmt.Sprintf("Fall %d", t.Year())
	}
}
