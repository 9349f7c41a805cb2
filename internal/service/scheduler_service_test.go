package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/schedulr/schedulr-bot/internal/api"
	"github.com/schedulr/schedulr-bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSchedulerAPI сервер Schedulr API для тестов конвейера генерации
type fakeSchedulerAPI struct {
	mu          sync.Mutex
	patchCount  int
	failPatch   bool
	completions []string
	adds        []string
	failAdds    map[string]bool
	catalog     []api.Course
	schedule    api.Schedule
}

func (f *fakeSchedulerAPI) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		switch {
		case r.Method == http.MethodPatch && strings.HasPrefix(r.URL.Path, "/users/"):
			f.patchCount++
			if f.failPatch {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error": "database busy"}`))
				return
			}
			var body struct {
				GraduationYear string  `json:"graduation_year"`
				Interests      *string `json:"interests"`
				Availability   string  `json:"availability"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			json.NewEncoder(w).Encode(api.User{
				ID:             7,
				Netid:          "abc123",
				GraduationYear: body.GraduationYear,
				Interests:      body.Interests,
				Availability:   body.Availability,
			})

		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/completions/"):
			var body struct {
				CourseNumber string `json:"course_number"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			if f.failAdds[body.CourseNumber] {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error": "unknown course"}`))
				return
			}
			f.adds = append(f.adds, body.CourseNumber)
			f.completions = append(f.completions, body.CourseNumber)
			json.NewEncoder(w).Encode(api.AddCompletionResponse{CourseNumber: body.CourseNumber, UserID: 7})

		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/completions/"):
			json.NewEncoder(w).Encode(map[string]interface{}{
				"completed_courses": f.completions,
			})

		case r.Method == http.MethodPost && r.URL.Path == "/schedules/generate/":
			json.NewEncoder(w).Encode(f.schedule)

		case r.Method == http.MethodGet && r.URL.Path == "/courses/":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"courses": f.catalog,
			})

		default:
			http.NotFound(w, r)
		}
	}
}

func newTestSchedulerService(t *testing.T, f *fakeSchedulerAPI) *SchedulerService {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL, 5*time.Second, zap.NewNop())
	svc := NewSchedulerService(client, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC) }
	return svc
}

func intPtr(i int) *int {
	return &i
}

func sampleSchedule() api.Schedule {
	return api.Schedule{
		ID:        3,
		UserID:    7,
		Score:     0.9,
		Rationale: "fits availability",
		Sections: []api.Section{
			{ID: 1, CourseNumber: "CS 2110", Section: "A", Days: "MWF", StartMin: intPtr(545), EndMin: intPtr(595)},
		},
	}
}

func TestSubmit_ResolvesCoursesFromCatalog(t *testing.T) {
	desc := "Intermediate programming"
	f := &fakeSchedulerAPI{
		schedule: sampleSchedule(),
		catalog: []api.Course{
			// Номер в каталоге без пробела, секция приходит с пробелом
			{Number: "CS2110", Name: "OO Programming", Description: &desc, Credits: 4},
		},
	}
	svc := newTestSchedulerService(t, f)

	result, err := svc.Submit(context.Background(), 7, nil, SubmitInput{
		GraduationYear: "2027",
		Availability:   model.FullAvailability(),
	})
	require.NoError(t, err)
	require.NotNil(t, result.Schedule)

	require.Len(t, result.Schedule.Courses, 1)
	course := result.Schedule.Courses[0]
	assert.Equal(t, "CS 2110", course.Number)
	assert.Equal(t, "OO Programming", course.Name, "джойн по нормализованному номеру")
	assert.Equal(t, 4, course.Credits)
	assert.Equal(t, "Intermediate programming", course.Description)
	assert.Equal(t, "CS 2110-A", course.SectionID())
	assert.Equal(t, "Fall 2026", result.Schedule.Term)
	assert.True(t, result.ProfileUpdated)
}

func TestSubmit_SynthesizesFallbackOnCatalogMiss(t *testing.T) {
	f := &fakeSchedulerAPI{
		schedule: sampleSchedule(),
		catalog:  []api.Course{}, // каталог пуст, курса нет
	}
	svc := newTestSchedulerService(t, f)

	result, err := svc.Submit(context.Background(), 7, nil, SubmitInput{
		GraduationYear: "2027",
		Availability:   model.FullAvailability(),
	})
	require.NoError(t, err)

	require.Len(t, result.Schedule.Courses, 1)
	course := result.Schedule.Courses[0]
	assert.Equal(t, "CS 2110", course.Name, "имя подменяется сырым номером")
	assert.Equal(t, "MWF 545–595", course.Description)
	assert.Equal(t, 0, course.Credits)
}

func TestSubmit_FanOutAddsMissingCompletions(t *testing.T) {
	f := &fakeSchedulerAPI{
		schedule:    sampleSchedule(),
		completions: []string{"CS 1110"},
	}
	svc := newTestSchedulerService(t, f)

	result, err := svc.Submit(context.Background(), 7, []string{"CS 1110"}, SubmitInput{
		GraduationYear:  "2027",
		PreviousCourses: "CS 1110, CS 2800, MATH 1920",
		Availability:    model.FullAvailability(),
	})
	require.NoError(t, err)

	// Уже имеющийся CS 1110 не досылается, два новых уходят параллельно
	assert.ElementsMatch(t, []string{"CS 2800", "MATH 1920"}, f.adds)
	assert.Empty(t, result.AddFailures)
	assert.Empty(t, result.SkippedRemovals)

	// Список после синхронизации перечитан с сервера
	assert.ElementsMatch(t, []string{"CS 1110", "CS 2800", "MATH 1920"}, result.Completions)
}

func TestSubmit_CollectsAddFailures(t *testing.T) {
	f := &fakeSchedulerAPI{
		schedule: sampleSchedule(),
		failAdds: map[string]bool{"FAKE 9999": true},
	}
	svc := newTestSchedulerService(t, f)

	result, err := svc.Submit(context.Background(), 7, nil, SubmitInput{
		GraduationYear:  "2027",
		PreviousCourses: "CS 2800, FAKE 9999",
		Availability:    model.FullAvailability(),
	})
	require.NoError(t, err, "отказ одного добавления не валит конвейер")

	assert.Equal(t, []string{"CS 2800"}, f.adds)
	require.Len(t, result.AddFailures, 1)
	assert.Contains(t, result.AddFailures, "FAKE 9999")
	require.NotNil(t, result.Schedule, "расписание всё равно сгенерировано")
}

func TestSubmit_ReportsSkippedRemovals(t *testing.T) {
	f := &fakeSchedulerAPI{
		schedule:    sampleSchedule(),
		completions: []string{"CS 1110", "CS 2110"},
	}
	svc := newTestSchedulerService(t, f)

	// Пользователь убрал CS 2110 из списка: API удалений не умеет
	result, err := svc.Submit(context.Background(), 7, []string{"CS 1110", "CS 2110"}, SubmitInput{
		GraduationYear:  "2027",
		PreviousCourses: "CS 1110",
		Availability:    model.FullAvailability(),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"CS 2110"}, result.SkippedRemovals)
	assert.Empty(t, f.adds)
	assert.Equal(t, []string{"CS 1110", "CS 2110"}, result.Completions, "серверный список не уменьшился")
}

func TestSubmit_FailedPatchSkipsSyncButStillGenerates(t *testing.T) {
	f := &fakeSchedulerAPI{
		schedule:  sampleSchedule(),
		failPatch: true,
	}
	svc := newTestSchedulerService(t, f)

	result, err := svc.Submit(context.Background(), 7, nil, SubmitInput{
		GraduationYear:  "2027",
		PreviousCourses: "CS 2800",
		Availability:    model.FullAvailability(),
	})
	require.NoError(t, err)

	assert.False(t, result.ProfileUpdated)
	assert.Empty(t, f.adds, "после неудачного PATCH добавления не отправляются")
	require.NotNil(t, result.Schedule, "генерация идёт по известному user id")
	assert.Equal(t, int64(3), result.Schedule.ID)
}

func TestParseCourseList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "basic", in: "CS 1110, CS 2110", want: []string{"CS 1110", "CS 2110"}},
		{name: "extra whitespace", in: "  CS 1110 ,  CS 2110  ", want: []string{"CS 1110", "CS 2110"}},
		{name: "empty entries dropped", in: "CS 1110,,, ,CS 2110", want: []string{"CS 1110", "CS 2110"}},
		{name: "duplicates by normalized key", in: "CS 1110, cs1110, CS  1110", want: []string{"CS 1110"}},
		{name: "empty input", in: "", want: nil},
		{name: "only separators", in: " , , ", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCourseList(tt.in))
		})
	}
}

func TestTermLabel(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), "Spring 2026"},
		{time.Date(2026, time.May, 31, 0, 0, 0, 0, time.UTC), "Spring 2026"},
		{time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC), "Summer 2026"},
		{time.Date(2026, time.July, 31, 0, 0, 0, 0, time.UTC), "Summer 2026"},
		{time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), "Fall 2026"},
		{time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC), "Fall 2026"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TermLabel(tt.date))
	}
}

func TestMeetingDescription(t *testing.T) {
	assert.Equal(t, "MWF 545–595", MeetingDescription("MWF", intPtr(545), intPtr(595)))
	assert.Equal(t, "TR 0–0", MeetingDescription("TR", nil, nil))
}
