// Package memory implements an in-process Todo store, used when no database is configured and in tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/sanLimbu/todo-tracker/internal"
)

// Todo represents the in-memory repository used for interacting with Todo records.
type Todo struct {
	mu    sync.RWMutex
	ids   []string
	todos map[string]internal.Todo
}

// NewTodo instantiates the Todo repository.
func NewTodo() *Todo {
	return &Todo{
		todos: make(map[string]internal.Todo),
	}
}

// Create inserts a new todo record, the ID is generated.
func (t *Todo) Create(ctx context.Context, todo internal.Todo) (internal.Todo, error) {
	if err := ctx.Err(); err != nil {
		return internal.Todo{}, internal.WrapErrorf(err, internal.ErrorCodeStorage, "ctx.Err")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return internal.Todo{}, internal.WrapErrorf(err, internal.ErrorCodeStorage, "uuid.NewV7")
	}

	todo.ID = id.String()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.todos[todo.ID] = clone(todo)
	t.ids = append(t.ids, todo.ID)

	return clone(todo), nil
}

// Find returns the requested todo by searching its id.
func (t *Todo) Find(ctx context.Context, id string) (internal.Todo, error) {
	if err := ctx.Err(); err != nil {
		return internal.Todo{}, internal.WrapErrorf(err, internal.ErrorCodeStorage, "ctx.Err")
	}

	key, err := parseID(id)
	if err != nil {
		return internal.Todo{}, err
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	todo, ok := t.todos[key]
	if !ok {
		return internal.Todo{}, internal.NewErrorf(internal.ErrorCodeNotFound, "todo not found")
	}

	return clone(todo), nil
}

// All returns every record in insertion order.
func (t *Todo) All(ctx context.Context) ([]internal.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeStorage, "ctx.Err")
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	res := make([]internal.Todo, 0, len(t.ids))
	for _, id := range t.ids {
		res = append(res, clone(t.todos[id]))
	}

	return res, nil
}

// Update replaces the record with the value returned by fn, while holding the store lock.
func (t *Todo) Update(ctx context.Context, id string, fn internal.UpdateFunc) (internal.Todo, error) {
	if err := ctx.Err(); err != nil {
		return internal.Todo{}, internal.WrapErrorf(err, internal.ErrorCodeStorage, "ctx.Err")
	}

	key, err := parseID(id)
	if err != nil {
		return internal.Todo{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	current, ok := t.todos[key]
	if !ok {
		return internal.Todo{}, internal.NewErrorf(internal.ErrorCodeNotFound, "todo not found")
	}

	next, err := fn(clone(current))
	if err != nil {
		return internal.Todo{}, err
	}

	next.ID = current.ID
	next.CreatedAt = current.CreatedAt

	t.todos[key] = clone(next)

	return clone(next), nil
}

// Delete deletes the existing record matching the id.
func (t *Todo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeStorage, "ctx.Err")
	}

	key, err := parseID(id)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.todos[key]; !ok {
		return internal.NewErrorf(internal.ErrorCodeNotFound, "todo not found")
	}

	delete(t.todos, key)

	for i, v := range t.ids {
		if v == key {
			t.ids = append(t.ids[:i], t.ids[i+1:]...)
			break
		}
	}

	return nil
}

// parseID returns the canonical form of id, so differently cased ids address the same record.
func parseID(id string) (string, error) {
	val, err := uuid.Parse(id)
	if err != nil {
		return "", internal.WrapErrorf(err, internal.ErrorCodeInvalidIdentifier, "invalid todo id")
	}

	return val.String(), nil
}

func clone(todo internal.Todo) internal.Todo {
	if todo.DueDate != nil {
		due := *todo.DueDate
		todo.DueDate = &due
	}

	return todo
}
