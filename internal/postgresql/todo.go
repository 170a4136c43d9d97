package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/sanLimbu/todo-tracker/internal"
	"github.com/sanLimbu/todo-tracker/internal/postgresql/db"
)

// Pool is the subset of *pgxpool.Pool used by Todo.
type Pool interface {
	db.DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Todo represents the repository used for interacting with Todo records.
type Todo struct {
	pool Pool
	q    *db.Queries
}

// NewTodo instantiates the Todo repository.
func NewTodo(pool Pool) *Todo {
	return &Todo{
		pool: pool,
		q:    db.New(pool),
	}
}

// Create inserts a new todo record.
func (t *Todo) Create(ctx context.Context, todo internal.Todo) (internal.Todo, error) {
	defer newOTELSpan(ctx, "Todo.Create").End()

	id, err := t.q.InsertTodo(ctx, db.InsertTodoParams{
		Title:       todo.Title,
		Description: todo.Description,
		DueDate:     newNullTimestamp(todo.DueDate),
		Priority:    newPriority(todo.Priority),
		IsCompleted: todo.IsCompleted,
		CreatedAt:   newTimestamp(todo.CreatedAt),
		UpdatedAt:   newTimestamp(todo.UpdatedAt),
	})
	if err != nil {
		return internal.Todo{}, internal.WrapErrorf(err, internal.ErrorCodeStorage, "insert todo")
	}

	row, err := t.q.SelectTodo(ctx, id)
	if err != nil {
		return internal.Todo{}, internal.WrapErrorf(err, internal.ErrorCodeStorage, "select todo")
	}

	return convertTodo(row)
}

// Delete deletes the existing record matching the id.
func (t *Todo) Delete(ctx context.Context, id string) error {
	defer newOTELSpan(ctx, "Todo.Delete").End()

	val, err := newUUID(id)
	if err != nil {
		return err
	}

	count, err := t.q.DeleteTodo(ctx, val)
	if err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeStorage, "delete todo")
	}

	if count == 0 {
		return internal.NewErrorf(internal.ErrorCodeNotFound, "todo not found")
	}

	return nil
}

// Find returns the requested todo by searching its id.
func (t *Todo) Find(ctx context.Context, id string) (internal.Todo, error) {
	defer newOTELSpan(ctx, "Todo.Find").End()

	val, err := newUUID(id)
	if err != nil {
		return internal.Todo{}, err
	}

	row, err := t.q.SelectTodo(ctx, val)
	if err != nil {
		return internal.Todo{}, selectError(err)
	}

	return convertTodo(row)
}

// All returns every record ordered by creation.
func (t *Todo) All(ctx context.Context) ([]internal.Todo, error) {
	defer newOTELSpan(ctx, "Todo.All").End()

	rows, err := t.q.SelectTodos(ctx)
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeStorage, "select todos")
	}

	res := make([]internal.Todo, 0, len(rows))

	for _, row := range rows {
		todo, err := convertTodo(row)
		if err != nil {
			return nil, err
		}

		res = append(res, todo)
	}

	return res, nil
}

// Update locks the record, replaces it with the value returned by fn and commits.
func (t *Todo) Update(ctx context.Context, id string, fn internal.UpdateFunc) (internal.Todo, error) {
	defer newOTELSpan(ctx, "Todo.Update").End()

	val, err := newUUID(id)
	if err != nil {
		return internal.Todo{}, err
	}

	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return internal.Todo{}, internal.WrapErrorf(err, internal.ErrorCodeStorage, "pool.Begin")
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	q := t.q.WithTx(tx)

	row, err := q.SelectTodoForUpdate(ctx, val)
	if err != nil {
		return internal.Todo{}, selectError(err)
	}

	current, err := convertTodo(row)
	if err != nil {
		return internal.Todo{}, err
	}

	next, err := fn(current)
	if err != nil {
		return internal.Todo{}, err
	}

	next.ID = current.ID
	next.CreatedAt = current.CreatedAt

	if _, err := q.UpdateTodo(ctx, db.UpdateTodoParams{
		ID:          val,
		Title:       next.Title,
		Description: next.Description,
		DueDate:     newNullTimestamp(next.DueDate),
		Priority:    newPriority(next.Priority),
		IsCompleted: next.IsCompleted,
		UpdatedAt:   newTimestamp(next.UpdatedAt),
	}); err != nil {
		return internal.Todo{}, internal.WrapErrorf(err, internal.ErrorCodeStorage, "update todo")
	}

	if err := tx.Commit(ctx); err != nil {
		return internal.Todo{}, internal.WrapErrorf(err, internal.ErrorCodeStorage, "tx.Commit")
	}

	return next, nil
}

func selectError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return internal.WrapErrorf(err, internal.ErrorCodeNotFound, "todo not found")
	}

	return internal.WrapErrorf(err, internal.ErrorCodeStorage, "select todo")
}
