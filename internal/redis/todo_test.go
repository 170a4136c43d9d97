package redis_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sanLimbu/todo-tracker/internal"
	"github.com/sanLimbu/todo-tracker/internal/memory"
	iredis "github.com/sanLimbu/todo-tracker/internal/redis"
)

// counting tracks the All calls reaching the decorated store.
type counting struct {
	*memory.Todo
	alls int32
}

func (c *counting) All(ctx context.Context) ([]internal.Todo, error) {
	atomic.AddInt32(&c.alls, 1)
	return c.Todo.All(ctx)
}

// blocking holds the first All call after reading the decorated store until release is closed.
type blocking struct {
	*memory.Todo
	once    sync.Once
	reached chan struct{}
	release chan struct{}
}

func (b *blocking) All(ctx context.Context) ([]internal.Todo, error) {
	res, err := b.Todo.All(ctx)

	b.once.Do(func() {
		close(b.reached)
		<-b.release
	})

	return res, err
}

// contextual fails when the context reaching the decorated store is already done.
type contextual struct {
	*memory.Todo
}

func (c *contextual) All(ctx context.Context) ([]internal.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return c.Todo.All(ctx)
}

func newStore(t *testing.T) (*iredis.Todo, *counting) {
	t.Helper()

	orig := &counting{Todo: memory.NewTodo()}

	return newStoreWith(t, orig), orig
}

func newStoreWith(t *testing.T, orig iredis.TodoStore) *iredis.Todo {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return iredis.NewTodo(client, orig, zap.NewNop(), time.Minute)
}

func newTodo(title string) internal.Todo {
	stamp := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	return internal.Todo{Title: title, Priority: internal.PriorityLow, CreatedAt: stamp, UpdatedAt: stamp}
}

func TestTodo_All(t *testing.T) {
	t.Parallel()

	store, orig := newStore(t)

	res, err := store.All(context.Background())
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Empty(t, res)

	created, err := store.Create(context.Background(), newTodo("a"))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		res, err = store.All(context.Background())
		require.NoError(t, err)
		require.Equal(t, []internal.Todo{created}, res)
	}

	require.EqualValues(t, 2, atomic.LoadInt32(&orig.alls))

	updated, err := store.Update(context.Background(), created.ID, func(current internal.Todo) (internal.Todo, error) {
		current.Title = "b"
		return current, nil
	})
	require.NoError(t, err)

	res, err = store.All(context.Background())
	require.NoError(t, err)
	require.Equal(t, []internal.Todo{updated}, res)

	require.NoError(t, store.Delete(context.Background(), created.ID))

	res, err = store.All(context.Background())
	require.NoError(t, err)
	require.Empty(t, res)
	require.EqualValues(t, 4, atomic.LoadInt32(&orig.alls))
}

func TestTodo_AllConcurrent(t *testing.T) {
	t.Parallel()

	store, _ := newStore(t)

	_, err := store.Create(context.Background(), newTodo("a"))
	require.NoError(t, err)

	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			res, err := store.All(context.Background())
			if err != nil || len(res) != 1 {
				t.Errorf("unexpected result: %v %v", res, err)
			}
		}()
	}

	wg.Wait()
}

func TestTodo_AllWriteDuringFill(t *testing.T) {
	t.Parallel()

	orig := &blocking{
		Todo:    memory.NewTodo(),
		reached: make(chan struct{}),
		release: make(chan struct{}),
	}
	store := newStoreWith(t, orig)

	created, err := store.Create(context.Background(), newTodo("a"))
	require.NoError(t, err)

	done := make(chan []internal.Todo)

	go func() {
		res, err := store.All(context.Background())
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		done <- res
	}()

	<-orig.reached

	require.NoError(t, store.Delete(context.Background(), created.ID))

	close(orig.release)

	// started before the delete
	require.Len(t, <-done, 1)

	res, err := store.All(context.Background())
	require.NoError(t, err)
	require.Empty(t, res)
}

func TestTodo_AllOutlivesCanceledCaller(t *testing.T) {
	t.Parallel()

	store := newStoreWith(t, &contextual{Todo: memory.NewTodo()})

	_, err := store.Create(context.Background(), newTodo("a"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, res, 1)

	res, err = store.All(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 1)
}

func TestTodo_Errors(t *testing.T) {
	t.Parallel()

	store, _ := newStore(t)

	_, err := store.Update(context.Background(), "nope", func(current internal.Todo) (internal.Todo, error) {
		return current, nil
	})
	require.Equal(t, internal.ErrorCodeInvalidIdentifier, internal.CodeOf(err))
}
