package state

import "github.com/schedulr/schedulr-bot/internal/model"

// UserState представляет текущее состояние чата в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Логин
	StateEnteringNetid UserState = "entering_netid"

	// Шаги анкеты перед генерацией расписания
	StateEnteringGradYear    UserState = "entering_grad_year"
	StateEnteringInterests   UserState = "entering_interests"
	StateEnteringPrevCourses UserState = "entering_prev_courses"
	StateEditingAvailability UserState = "editing_availability"

	// Поиск курса по номеру
	StateEnteringCourseNumber UserState = "entering_course_number"

	// Echo-чат
	StateChatting UserState = "chatting"
)

// Назначение редактора сетки доступности: шаг анкеты /schedule
// или автономное редактирование из /availability
const (
	DraftPurposeSchedule     = "schedule"
	DraftPurposeAvailability = "availability"
)

// Draft черновик анкеты, накапливаемый по шагам диалога
type Draft struct {
	Purpose         string
	GraduationYear  string
	Interests       string
	PreviousCourses string
	Availability    model.AvailabilityGrid

	// ID сообщения с клавиатурой сетки, чтобы редактировать его на месте
	GridMessageID int
}

// UserData состояние чата вместе с черновиком текущего диалога
type UserData struct {
	State UserState
	Draft *Draft
}
