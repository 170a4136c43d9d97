package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sanLimbu/todo-tracker/internal"
	"github.com/sanLimbu/todo-tracker/internal/memory"
	"github.com/sanLimbu/todo-tracker/internal/service"
)

type broker struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (b *broker) record(event string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.events = append(b.events, event)

	return b.err
}

func (b *broker) Created(_ context.Context, todo internal.Todo) error { return b.record("created:" + todo.ID) }
func (b *broker) Updated(_ context.Context, todo internal.Todo) error { return b.record("updated:" + todo.ID) }
func (b *broker) Deleted(_ context.Context, id string) error         { return b.record("deleted:" + id) }

// failingRepository reports every operation as a driver failure.
type failingRepository struct{}

var errDriver = errors.New("dial tcp 10.0.0.1:5432: connection refused")

func (failingRepository) Create(context.Context, internal.Todo) (internal.Todo, error) {
	return internal.Todo{}, errDriver
}

func (failingRepository) Find(context.Context, string) (internal.Todo, error) {
	return internal.Todo{}, errDriver
}

func (failingRepository) All(context.Context) ([]internal.Todo, error) { return nil, errDriver }

func (failingRepository) Update(context.Context, string, internal.UpdateFunc) (internal.Todo, error) {
	return internal.Todo{}, errDriver
}

func (failingRepository) Delete(context.Context, string) error { return errDriver }

// clock returns a strictly increasing time, starting at 2024-03-10 09:00 UTC.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(time.Second)

	return c.now
}

func newService(t *testing.T) (*service.Todo, *broker) {
	t.Helper()

	b := &broker{}

	return service.NewTodo(zap.NewNop(), memory.NewTodo(), b, service.WithClock(newClock().Now)), b
}

func TestTodo_Create(t *testing.T) {
	t.Parallel()

	t.Run("OK: create then fetch", func(t *testing.T) {
		t.Parallel()

		svc, b := newService(t)

		created, err := svc.Create(context.Background(), internal.CreateParams{
			Title:    "A",
			DueDate:  "2024-03-11",
			Priority: internal.PriorityHigh,
		})
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		require.False(t, created.IsCompleted)
		require.Equal(t, created.CreatedAt, created.UpdatedAt)
		require.Equal(t, []string{"created:" + created.ID}, b.events)

		found, err := svc.Todo(context.Background(), created.ID)
		require.NoError(t, err)
		require.Equal(t, created, found)
		require.Equal(t, "A", found.Title)
		require.Equal(t, internal.PriorityHigh, found.Priority)
	})

	t.Run("ERR: validation", func(t *testing.T) {
		t.Parallel()

		svc, b := newService(t)

		_, err := svc.Create(context.Background(), internal.CreateParams{Title: " ", DueDate: "2024-03-11"})
		require.Equal(t, internal.ErrorCodeInvalidArgument, internal.CodeOf(err))
		require.Contains(t, internal.ValidationErrors(err), "title")
		require.Empty(t, b.events)

		todos, err := svc.By(context.Background(), internal.ListParams{})
		require.NoError(t, err)
		require.Empty(t, todos)
	})

	t.Run("OK: publish failure is not returned", func(t *testing.T) {
		t.Parallel()

		b := &broker{err: errors.New("broker down")}
		svc := service.NewTodo(zap.NewNop(), memory.NewTodo(), b, service.WithClock(newClock().Now))

		_, err := svc.Create(context.Background(), internal.CreateParams{Title: "A", DueDate: "2024-03-11"})
		require.NoError(t, err)
	})
}

func TestTodo_Update(t *testing.T) {
	t.Parallel()

	svc, b := newService(t)

	created, err := svc.Create(context.Background(), internal.CreateParams{Title: "A", DueDate: "2024-03-11"})
	require.NoError(t, err)

	title := "B"

	t.Run("ERR: malformed id", func(t *testing.T) {
		_, err := svc.Update(context.Background(), "not-an-id", internal.UpdateParams{Title: &title})
		require.Equal(t, internal.ErrorCodeInvalidIdentifier, internal.CodeOf(err))
	})

	t.Run("ERR: missing", func(t *testing.T) {
		_, err := svc.Update(context.Background(), uuid.NewString(), internal.UpdateParams{Title: &title})
		require.Equal(t, internal.ErrorCodeNotFound, internal.CodeOf(err))
	})

	t.Run("ERR: validation", func(t *testing.T) {
		empty := ""

		_, err := svc.Update(context.Background(), created.ID, internal.UpdateParams{Title: &empty})
		require.Equal(t, internal.ErrorCodeInvalidArgument, internal.CodeOf(err))

		found, err := svc.Todo(context.Background(), created.ID)
		require.NoError(t, err)
		require.Equal(t, created, found)
	})

	t.Run("OK", func(t *testing.T) {
		res, err := svc.Update(context.Background(), created.ID, internal.UpdateParams{Title: &title})
		require.NoError(t, err)
		require.Equal(t, "B", res.Title)
		require.Equal(t, created.ID, res.ID)
		require.Equal(t, created.CreatedAt, res.CreatedAt)
		require.True(t, res.UpdatedAt.After(created.UpdatedAt))
		require.Contains(t, b.events, "updated:"+created.ID)
	})
}

func TestTodo_Toggle(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)

	created, err := svc.Create(context.Background(), internal.CreateParams{Title: "A", DueDate: "2024-03-11"})
	require.NoError(t, err)

	once, err := svc.Toggle(context.Background(), created.ID)
	require.NoError(t, err)
	require.True(t, once.IsCompleted)
	require.True(t, once.UpdatedAt.After(created.UpdatedAt))

	twice, err := svc.Toggle(context.Background(), created.ID)
	require.NoError(t, err)
	require.False(t, twice.IsCompleted)
	require.True(t, twice.UpdatedAt.After(once.UpdatedAt))

	_, err = svc.Toggle(context.Background(), "x")
	require.Equal(t, internal.ErrorCodeInvalidIdentifier, internal.CodeOf(err))
}

func TestTodo_Delete(t *testing.T) {
	t.Parallel()

	svc, b := newService(t)

	created, err := svc.Create(context.Background(), internal.CreateParams{Title: "A", DueDate: "2024-03-11"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	require.Contains(t, b.events, "deleted:"+created.ID)

	_, err = svc.Todo(context.Background(), created.ID)
	require.Equal(t, internal.ErrorCodeNotFound, internal.CodeOf(err))

	todos, err := svc.By(context.Background(), internal.ListParams{})
	require.NoError(t, err)
	require.Empty(t, todos)

	err = svc.Delete(context.Background(), created.ID)
	require.Equal(t, internal.ErrorCodeNotFound, internal.CodeOf(err))
}

func TestTodo_By(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)

	for _, params := range []internal.CreateParams{
		{Title: "Buy groceries", DueDate: "2024-03-12", Priority: internal.PriorityLow},
		{Title: "Write report", DueDate: "2024-03-15", Priority: internal.PriorityHigh},
		{Title: "Call plumber", DueDate: "2024-03-11", Priority: internal.PriorityMedium},
	} {
		_, err := svc.Create(context.Background(), params)
		require.NoError(t, err)
	}

	titles := func(todos []internal.Todo) []string {
		res := []string{}
		for _, t := range todos {
			res = append(res, t.Title)
		}
		return res
	}

	t.Run("OK: search", func(t *testing.T) {
		res, err := svc.By(context.Background(), internal.ListParams{Search: "report"})
		require.NoError(t, err)
		require.Equal(t, []string{"Write report"}, titles(res))
	})

	t.Run("OK: priority desc", func(t *testing.T) {
		res, err := svc.By(context.Background(), internal.ListParams{
			SortKey:   internal.SortKeyPriority,
			SortOrder: internal.SortOrderDesc,
		})
		require.NoError(t, err)
		require.Equal(t, []string{"Write report", "Call plumber", "Buy groceries"}, titles(res))
	})

	t.Run("OK: default order", func(t *testing.T) {
		res, err := svc.By(context.Background(), internal.ListParams{})
		require.NoError(t, err)
		require.Equal(t, []string{"Call plumber", "Buy groceries", "Write report"}, titles(res))
	})

	t.Run("ERR: invalid params", func(t *testing.T) {
		_, err := svc.By(context.Background(), internal.ListParams{Status: "archived"})
		require.Equal(t, internal.ErrorCodeInvalidArgument, internal.CodeOf(err))
	})
}

func TestTodo_SuggestionsAndStats(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, internal.Stats{}, stats)

	created, err := svc.Create(context.Background(), internal.CreateParams{Title: "Write report", DueDate: "2024-03-11"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), internal.CreateParams{Title: "Read book", DueDate: "2024-03-11"})
	require.NoError(t, err)

	_, err = svc.Toggle(context.Background(), created.ID)
	require.NoError(t, err)

	stats, err = svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, internal.Stats{Total: 2, Completed: 1, Pending: 1, Percent: 50}, stats)

	res, err := svc.Suggestions(context.Background(), "rep")
	require.NoError(t, err)
	require.Equal(t, []string{"Write report"}, res)
}

func TestTodo_StorageErrors(t *testing.T) {
	t.Parallel()

	svc := service.NewTodo(zap.NewNop(), failingRepository{}, &broker{})
	id := uuid.NewString()

	check := func(t *testing.T, err error) {
		t.Helper()

		require.Equal(t, internal.ErrorCodeStorage, internal.CodeOf(err))
		require.ErrorIs(t, err, errDriver)
	}

	_, err := svc.Create(context.Background(), internal.CreateParams{Title: "A", DueDate: "2999-01-01"})
	check(t, err)

	_, err = svc.Todo(context.Background(), id)
	check(t, err)

	_, err = svc.By(context.Background(), internal.ListParams{})
	check(t, err)

	_, err = svc.Update(context.Background(), id, internal.UpdateParams{})
	check(t, err)

	_, err = svc.Toggle(context.Background(), id)
	check(t, err)

	check(t, svc.Delete(context.Background(), id))

	_, err = svc.Stats(context.Background())
	check(t, err)
}

type slowRepository struct {
	failingRepository
}

func (slowRepository) All(ctx context.Context) ([]internal.Todo, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestTodo_StoreTimeout(t *testing.T) {
	t.Parallel()

	svc := service.NewTodo(zap.NewNop(), slowRepository{}, &broker{}, service.WithStoreTimeout(10*time.Millisecond))

	_, err := svc.By(context.Background(), internal.ListParams{})
	require.Equal(t, internal.ErrorCodeStorage, internal.CodeOf(err))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
