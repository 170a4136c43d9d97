package rest_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sanLimbu/todo-tracker/internal/events"
	"github.com/sanLimbu/todo-tracker/internal/memory"
	"github.com/sanLimbu/todo-tracker/internal/rest"
	"github.com/sanLimbu/todo-tracker/internal/service"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	var mu sync.Mutex

	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()

		now = now.Add(time.Second)

		return now
	}

	svc := service.NewTodo(zap.NewNop(), memory.NewTodo(), events.Noop{}, service.WithClock(clock))

	r := chi.NewRouter()
	rest.NewTodoHandler(svc).Register(r)
	rest.RegisterOpenAPI(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string, target interface{}) int {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if target != nil {
		require.NoError(t, json.NewDecoder(bytes.NewReader(b)).Decode(target), string(b))
	}

	return resp.StatusCode
}

func TestTodoHandler_Lifecycle(t *testing.T) {
	srv := newServer(t)

	var created rest.Todo

	status := do(t, srv, http.MethodPost, "/api/todos",
		`{"title":" A ","due_date":"2024-03-11","priority":"high","id":"ignored"}`, &created)
	require.Equal(t, http.StatusCreated, status)
	require.NotEqual(t, "ignored", created.ID)
	require.Equal(t, "A", created.Title)
	require.Equal(t, "", created.Description)
	require.False(t, created.IsCompleted)
	require.NotNil(t, created.DueDate)

	var found rest.Todo

	status = do(t, srv, http.MethodGet, "/api/todos/"+created.ID, "", &found)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, created.ID, found.ID)
	require.True(t, created.UpdatedAt.Equal(found.UpdatedAt))

	var updated rest.Todo

	status = do(t, srv, http.MethodPut, "/api/todos/"+created.ID,
		`{"title":"B","created_at":"2000-01-01T00:00:00Z"}`, &updated)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "B", updated.Title)
	require.Equal(t, "high", string(updated.Priority))
	require.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	require.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	var toggled rest.Todo

	status = do(t, srv, http.MethodPut, "/api/todos/"+created.ID+"/toggle", "", &toggled)
	require.Equal(t, http.StatusOK, status)
	require.True(t, toggled.IsCompleted)

	var stats rest.StatsResponse

	status = do(t, srv, http.MethodGet, "/api/todos/stats", "", &stats)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, rest.StatsResponse{Total: 1, Completed: 1, Percent: 100}, stats)

	var deleted rest.DeleteTodoResponse

	status = do(t, srv, http.MethodDelete, "/api/todos/"+created.ID, "", &deleted)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Todo deleted successfully", deleted.Message)

	var errResp rest.ErrorResponse

	status = do(t, srv, http.MethodGet, "/api/todos/"+created.ID, "", &errResp)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "todo not found", errResp.Error)
}

func TestTodoHandler_List(t *testing.T) {
	srv := newServer(t)

	for _, body := range []string{
		`{"title":"Buy groceries","due_date":"2024-03-12","priority":"low"}`,
		`{"title":"Write report","due_date":"2024-03-15","priority":"high"}`,
		`{"title":"Call plumber","due_date":"2024-03-11"}`,
	} {
		require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/todos", body, nil))
	}

	titles := func(path string) []string {
		var todos []rest.Todo

		require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, path, "", &todos))

		res := []string{}
		for _, todo := range todos {
			res = append(res, todo.Title)
		}

		return res
	}

	require.Equal(t, []string{"Call plumber", "Buy groceries", "Write report"}, titles("/api/todos"))
	require.Equal(t, []string{"Write report", "Call plumber", "Buy groceries"}, titles("/api/todos?sort=priority&order=desc"))
	require.Equal(t, []string{"Write report"}, titles("/api/todos?q=REPORT"))
	require.Equal(t, []string{"Buy groceries"}, titles("/api/todos?priority=low&status=pending"))
	require.Equal(t, []string{}, titles("/api/todos?status=completed"))

	var suggestions []string

	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/todos/suggestions?q=rep", "", &suggestions))
	require.Equal(t, []string{"Write report"}, suggestions)

	var errResp rest.ErrorResponse

	require.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/api/todos?sort=title", "", &errResp))
	require.Contains(t, errResp.Validations, "sort")
}

func TestTodoHandler_Errors(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		name        string
		method      string
		path        string
		body        string
		status      int
		validations []string
	}{
		{"create: missing title", http.MethodPost, "/api/todos", `{"due_date":"2024-03-11"}`, http.StatusBadRequest, []string{"title"}},
		{"create: past due date", http.MethodPost, "/api/todos", `{"title":"a","due_date":"2024-03-01"}`, http.StatusBadRequest, []string{"due_date"}},
		{"create: bad priority", http.MethodPost, "/api/todos", `{"title":"a","due_date":"2024-03-11","priority":"urgent"}`, http.StatusBadRequest, []string{"priority"}},
		{"create: malformed json", http.MethodPost, "/api/todos", `{"title":`, http.StatusBadRequest, nil},
		{"read: bad id", http.MethodGet, "/api/todos/123", "", http.StatusBadRequest, nil},
		{"read: missing", http.MethodGet, "/api/todos/" + uuid.NewString(), "", http.StatusNotFound, nil},
		{"update: bad id", http.MethodPut, "/api/todos/abc", `{"title":"b"}`, http.StatusBadRequest, nil},
		{"update: missing", http.MethodPut, "/api/todos/" + uuid.NewString(), `{"title":"b"}`, http.StatusNotFound, nil},
		{"delete: bad id", http.MethodDelete, "/api/todos/abc", "", http.StatusBadRequest, nil},
		{"toggle: missing", http.MethodPut, "/api/todos/" + uuid.NewString() + "/toggle", "", http.StatusNotFound, nil},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			var errResp rest.ErrorResponse

			require.Equal(t, tt.status, do(t, srv, tt.method, tt.path, tt.body, &errResp))
			require.NotEmpty(t, errResp.Error)

			for _, field := range tt.validations {
				require.Contains(t, errResp.Validations, field)
			}
		})
	}
}

func TestRegisterOpenAPI(t *testing.T) {
	srv := newServer(t)

	var doc map[string]interface{}

	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/openapi3.json", "", &doc))
	require.Equal(t, "3.0.0", doc["openapi"])
	require.Contains(t, doc["paths"], "/api/todos/{id}/toggle")

	resp, err := srv.Client().Get(srv.URL + "/openapi3.yaml")
	require.NoError(t, err)

	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(b), "openapi: 3.0.0")
}
