package callbacks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/schedulr/schedulr-bot/internal/api"
	"github.com/schedulr/schedulr-bot/internal/controller/state"
	"github.com/schedulr/schedulr-bot/internal/service"
	"github.com/schedulr/schedulr-bot/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// telegramRecorder фиксирует методы Bot API, вызванные обработчиком
type telegramRecorder struct {
	mu      sync.Mutex
	methods []string
}

func (r *telegramRecorder) record(method string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.methods = append(r.methods, method)
}

func (r *telegramRecorder) called(method string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.methods {
		if m == method {
			return true
		}
	}
	return false
}

func newTestBot(t *testing.T) (*bot.Bot, *telegramRecorder) {
	t.Helper()

	recorder := &telegramRecorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		method := parts[len(parts)-1]
		recorder.record(method)

		w.Header().Set("Content-Type", "application/json")
		if method == "answerCallbackQuery" {
			w.Write([]byte(`{"ok":true,"result":true}`))
			return
		}
		w.Write([]byte(`{"ok":true,"result":{"message_id":5,"chat":{"id":100}}}`))
	}))
	t.Cleanup(srv.Close)

	b, err := bot.New("test-token",
		bot.WithSkipGetMe(),
		bot.WithServerURL(srv.URL))
	require.NoError(t, err)

	return b, recorder
}

// fakeSchedulrAPI минимальный API для логина и PATCH профиля
type fakeSchedulrAPI struct {
	mu         sync.Mutex
	patchCount int
}

func (f *fakeSchedulrAPI) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/users/":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"users": []api.User{{ID: 7, Netid: "abc123", GraduationYear: "2027", Availability: strings.Repeat("1", 84)}},
			})
		case r.Method == http.MethodPatch && strings.HasPrefix(r.URL.Path, "/users/"):
			f.patchCount++
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
		case strings.HasSuffix(r.URL.Path, "/completions/"):
			json.NewEncoder(w).Encode(map[string]interface{}{"completed_courses": []string{}})
		case strings.HasPrefix(r.URL.Path, "/schedules/"):
			json.NewEncoder(w).Encode(map[string]interface{}{"schedules": []api.ScheduleInfo{}})
		default:
			http.NotFound(w, r)
		}
	}
}

func availabilityDoneCallback() *models.CallbackQuery {
	return &models.CallbackQuery{
		ID:   "cb1",
		From: models.User{ID: 1},
		Message: models.MaybeInaccessibleMessage{
			Message: &models.Message{ID: 5, Chat: models.Chat{ID: 100}},
		},
		Data: AvailabilityDone,
	}
}

func TestHandleAvailabilityDone_LoggedOutChat(t *testing.T) {
	b, telegram := newTestBot(t)

	// Чат не залогинен: сессии в хранилище нет
	sessions := session.NewStore(nil, nil, zap.NewNop())
	stateManager := state.NewManager()
	stateManager.SetState(100, state.StateEditingAvailability)
	stateManager.Draft(100).Purpose = state.DraftPurposeAvailability

	h := NewHandler(sessions, nil, nil, stateManager, zap.NewNop())

	// Не должно паниковать, только alert и сброс состояния
	h.HandleAvailabilityDone(context.Background(), b, availabilityDoneCallback())

	assert.True(t, telegram.called("answerCallbackQuery"))
	assert.Equal(t, state.StateNone, stateManager.GetState(100))
}

func TestHandleAvailabilityDone_SavesGrid(t *testing.T) {
	b, telegram := newTestBot(t)

	f := &fakeSchedulrAPI{}
	apiSrv := httptest.NewServer(f.handler())
	t.Cleanup(apiSrv.Close)

	client := api.NewClient(apiSrv.URL, 5*time.Second, zap.NewNop())
	sessions := session.NewStore(client, nil, zap.NewNop())
	_, err := sessions.Login(context.Background(), 100, "abc123")
	require.NoError(t, err)

	stateManager := state.NewManager()
	stateManager.SetState(100, state.StateEditingAvailability)
	draft := stateManager.Draft(100)
	draft.Purpose = state.DraftPurposeAvailability
	draft.Availability.Toggle(0, 0)

	scheduler := service.NewSchedulerService(client, zap.NewNop())
	h := NewHandler(sessions, scheduler, nil, stateManager, zap.NewNop())

	h.HandleAvailabilityDone(context.Background(), b, availabilityDoneCallback())

	assert.Equal(t, 1, f.patchCount, "сетка сохраняется одним PATCH")
	assert.True(t, telegram.called("editMessageText"))
	assert.Equal(t, state.StateNone, stateManager.GetState(100))

	// Кэш сессии обновлён сохранённой сеткой
	sess, ok := sessions.Get(100)
	require.True(t, ok)
	assert.Equal(t, byte('1'), sess.User.Availability[0])
}
