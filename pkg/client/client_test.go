package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
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
	"github.com/sanLimbu/todo-tracker/pkg/client"
)

func newClient(t *testing.T) *client.ClientWithResponses {
	t.Helper()

	var mu sync.Mutex

	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()

		now = now.Add(time.Second)

		return now
	}

	r := chi.NewRouter()
	rest.NewTodoHandler(service.NewTodo(zap.NewNop(), memory.NewTodo(), events.Noop{}, service.WithClock(clock))).Register(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c, err := client.NewClientWithResponses(srv.URL, client.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	return c
}

func ptr[T any](v T) *T {
	return &v
}

func TestClient(t *testing.T) {
	t.Parallel()

	c := newClient(t)
	ctx := context.Background()

	created, err := c.CreateTodoWithResponse(ctx, client.CreateTodoJSONRequestBody{
		Title:    ptr("Write report"),
		DueDate:  ptr("2024-03-15"),
		Priority: ptr(client.High),
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, created.StatusCode())
	require.NotNil(t, created.JSON201.Id)

	id := *created.JSON201.Id

	updated, err := c.UpdateTodoWithResponse(ctx, id, client.UpdateTodoJSONRequestBody{
		Description: ptr("Quarterly numbers"),
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, updated.StatusCode())
	require.Equal(t, "Quarterly numbers", *updated.JSON200.Description)
	require.Equal(t, client.High, *updated.JSON200.Priority)

	toggled, err := c.ToggleTodoWithResponse(ctx, id)
	require.NoError(t, err)
	require.True(t, *toggled.JSON200.IsCompleted)

	list, err := c.ListTodosWithResponse(ctx, &client.ListTodosParams{
		Status: ptr(client.Completed),
		Q:      ptr("report"),
	})
	require.NoError(t, err)
	require.Len(t, *list.JSON200, 1)

	suggestions, err := c.TodoSuggestionsWithResponse(ctx, &client.TodoSuggestionsParams{Q: ptr("wri")})
	require.NoError(t, err)
	require.Equal(t, []string{"Write report"}, *suggestions.JSON200)

	stats, err := c.TodoStatsWithResponse(ctx)
	require.NoError(t, err)
	require.Equal(t, 100, *stats.JSON200.Percent)

	deleted, err := c.DeleteTodoWithResponse(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Todo deleted successfully", *deleted.JSON200.Message)

	read, err := c.ReadTodoWithResponse(ctx, id)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, read.StatusCode())
	require.Equal(t, "todo not found", *read.JSON404.Error)
}

func TestClient_Errors(t *testing.T) {
	t.Parallel()

	c := newClient(t)

	created, err := c.CreateTodoWithResponse(context.Background(), client.CreateTodoJSONRequestBody{
		DueDate: ptr("2024-03-15"),
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, created.StatusCode())
	require.Contains(t, *created.JSON400.Validations, "title")

	list, err := c.ListTodosWithResponse(context.Background(), &client.ListTodosParams{
		Sort: ptr(client.ListTodosParamsSort("title")),
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, list.StatusCode())

	toggled, err := c.ToggleTodoWithResponse(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, toggled.StatusCode())
}
