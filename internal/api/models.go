package api

// Модели Schedulr API. Сервер отдаёт ключи в snake_case.

type User struct {
	ID             int64   `json:"id"`
	Netid          string  `json:"netid"`
	GraduationYear string  `json:"graduation_year"`
	Interests      *string `json:"interests"`
	Availability   string  `json:"availability"`
}

type Course struct {
	Number      string       `json:"number"`
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	Credits     int          `json:"credits"`
	Sections    []Section    `json:"sections"`
	Prereqs     []Prereq     `json:"prereqs"`
	RequiredBy  []RequiredBy `json:"required_by"`
}

type Section struct {
	ID           int64  `json:"id"`
	CourseNumber string `json:"course_number"`
	Section      string `json:"section"`
	Days         string `json:"days"`
	StartMin     *int   `json:"start_min"`
	EndMin       *int   `json:"end_min"`
}

type Prereq struct {
	PrereqNumber string `json:"prereq_number"`
}

type RequiredBy struct {
	CourseNumber string `json:"course_number"`
}

type Schedule struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Score     float64   `json:"score"`
	Rationale string    `json:"rationale"`
	Sections  []Section `json:"sections"`
}

type ScheduleInfo struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Rationale string `json:"rationale"`
}

type AddCompletionResponse struct {
	CourseNumber string `json:"course_number"`
	UserID       int64  `json:"user_id"`
}

// Запросы

type createUserRequest struct {
	Netid          string  `json:"netid"`
	GraduationYear string  `json:"graduation_year"`
	Interests      *string `json:"interests"`
	Availability   string  `json:"availability"`
}

type addCompletionRequest struct {
	CourseNumber string `json:"course_number"`
}

type generateScheduleRequest struct {
	UserID int64 `json:"user_id"`
}

// Обёртки списков

type usersListResponse struct {
	Users []User `json:"users"`
}

type coursesListResponse struct {
	Courses []Course `json:"courses"`
}

type coreCoursesResponse struct {
	Courses []string `json:"courses"`
}

type completionsResponse struct {
	CompletedCourses []string `json:"completed_courses"`
}

type schedulesListResponse struct {
	Schedules []ScheduleInfo `json:"schedules"`
}
