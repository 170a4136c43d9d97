package memcached

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sanLimbu/todo-tracker/internal"
)

// TodoStore defines the datastore decorated by Todo.
type TodoStore interface {
	Create(ctx context.Context, todo internal.Todo) (internal.Todo, error)
	Find(ctx context.Context, id string) (internal.Todo, error)
	All(ctx context.Context) ([]internal.Todo, error)
	Update(ctx context.Context, id string, fn internal.UpdateFunc) (internal.Todo, error)
	Delete(ctx context.Context, id string) error
}

// Todo caches individual Todo records in memcached, reads are cache-aside.
// Writes always overwrite the key while fills only add to an empty one.
type Todo struct {
	client     Client
	orig       TodoStore
	expiration time.Duration
	logger     *zap.Logger
}

// NewTodo instantiates the memcached decorator.
func NewTodo(client Client, orig TodoStore, logger *zap.Logger) *Todo {
	return &Todo{
		client:     client,
		orig:       orig,
		expiration: 15 * time.Minute,
		logger:     logger,
	}
}

// Create inserts the record and caches it.
func (t *Todo) Create(ctx context.Context, todo internal.Todo) (internal.Todo, error) {
	defer newOTELSpan(ctx, "Todo.Create").End()

	todo, err := t.orig.Create(ctx, todo)
	if err != nil {
		return internal.Todo{}, internal.WrapErrorf(err, internal.CodeOf(err), "orig.Create")
	}

	if key, ok := cacheKey(todo.ID); ok {
		setTodo(ctx, t.client, key, &todo, t.expiration)
	}

	return todo, nil
}

// Delete removes the record and evicts it.
func (t *Todo) Delete(ctx context.Context, id string) error {
	defer newOTELSpan(ctx, "Todo.Delete").End()

	if err := t.orig.Delete(ctx, id); err != nil {
		return internal.WrapErrorf(err, internal.CodeOf(err), "orig.Delete")
	}

	if key, ok := cacheKey(id); ok {
		deleteTodo(ctx, t.client, key, t.expiration)
	}

	return nil
}

// Find returns the cached record, falling back to the decorated store.
func (t *Todo) Find(ctx context.Context, id string) (internal.Todo, error) {
	defer newOTELSpan(ctx, "Todo.Find").End()

	key, ok := cacheKey(id)
	if !ok {
		return t.find(ctx, id)
	}

	var res internal.Todo

	if err := getTodo(ctx, t.client, key, &res); err == nil {
		return res, nil
	}

	t.logger.Debug("Find: cache miss", zap.String("id", id))

	res, err := t.find(ctx, id)
	if err != nil {
		return internal.Todo{}, err
	}

	// A write that finished while reading from orig already owns the key.
	if err := addTodo(ctx, t.client, key, &res, t.expiration); err != nil {
		t.logger.Debug("Find: not cached", zap.String("id", id), zap.Error(err))
	}

	return res, nil
}

// All is not cached.
func (t *Todo) All(ctx context.Context) ([]internal.Todo, error) {
	return t.orig.All(ctx)
}

// Update writes through and refreshes the cached value.
func (t *Todo) Update(ctx context.Context, id string, fn internal.UpdateFunc) (internal.Todo, error) {
	defer newOTELSpan(ctx, "Todo.Update").End()

	todo, err := t.orig.Update(ctx, id, fn)
	if err != nil {
		return internal.Todo{}, internal.WrapErrorf(err, internal.CodeOf(err), "orig.Update")
	}

	if key, ok := cacheKey(todo.ID); ok {
		setTodo(ctx, t.client, key, &todo, t.expiration)
	}

	return todo, nil
}

func (t *Todo) find(ctx context.Context, id string) (internal.Todo, error) {
	res, err := t.orig.Find(ctx, id)
	if err != nil {
		return internal.Todo{}, internal.WrapErrorf(err, internal.CodeOf(err), "orig.Find")
	}

	return res, nil
}
