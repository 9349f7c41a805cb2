package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/schedulr/schedulr-bot/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCatalogService(t *testing.T, handler http.HandlerFunc) *CatalogService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL, 5*time.Second, zap.NewNop())
	return NewCatalogService(client, zap.NewNop())
}

func TestCatalogService_ListCoursesUsesCache(t *testing.T) {
	var mu sync.Mutex
	listCalls := 0

	svc := newTestCatalogService(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		listCalls++
		mu.Unlock()
		json.NewEncoder(w).Encode(map[string]interface{}{
			"courses": []api.Course{{Number: "CS 2110", Name: "OO Programming"}},
		})
	})

	first, err := svc.ListCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Второй вызов идёт из кэша, не в API
	second, err := svc.ListCourses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, listCalls)

	// Refresh перечитывает принудительно
	_, err = svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, listCalls)
}

func TestCatalogService_GetCourseNormalizesNumber(t *testing.T) {
	var gotPath string
	svc := newTestCatalogService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(api.Course{Number: "CS 2110", Name: "OO Programming"})
	})

	course, err := svc.GetCourse(context.Background(), "  CS 2110 ")
	require.NoError(t, err)
	assert.Equal(t, "/courses/cs2110/", gotPath)
	assert.Equal(t, "CS 2110", course.Number)
}

func TestCatalogService_CoreCoursesMarksCompleted(t *testing.T) {
	svc := newTestCatalogService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/core-sets/", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"courses": []string{"CS 1110", "CS 2110", "CS 2800"},
		})
	})

	statuses, err := svc.CoreCourses(context.Background(), []string{"cs1110", "CS  2800"})
	require.NoError(t, err)

	require.Len(t, statuses, 3)
	assert.True(t, statuses[0].Completed, "совпадение по нормализованному номеру")
	assert.False(t, statuses[1].Completed)
	assert.True(t, statuses[2].Completed)
}
