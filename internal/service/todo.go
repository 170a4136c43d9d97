package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/sanLimbu/todo-tracker/internal"
	"github.com/sanLimbu/todo-tracker/internal/query"
)

const defaultStoreTimeout = 5 * time.Second

// TodoRepository defines the datastore handling persisting Todo records.
type TodoRepository interface {
	Create(ctx context.Context, todo internal.Todo) (internal.Todo, error)
	Find(ctx context.Context, id string) (internal.Todo, error)
	All(ctx context.Context) ([]internal.Todo, error)
	Update(ctx context.Context, id string, fn internal.UpdateFunc) (internal.Todo, error)
	Delete(ctx context.Context, id string) error
}

// TodoMessageBrokerRepository defines the message broker notified about changes to Todo records.
type TodoMessageBrokerRepository interface {
	Created(ctx context.Context, todo internal.Todo) error
	Deleted(ctx context.Context, id string) error
	Updated(ctx context.Context, todo internal.Todo) error
}

// Todo defines the application service in charge of interacting with Todos.
type Todo struct {
	logger    *zap.Logger
	repo      TodoRepository
	msgBroker TodoMessageBrokerRepository
	now       func() time.Time
	timeout   time.Duration
}

// Option configures the Todo service.
type Option func(*Todo)

// WithClock replaces the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(t *Todo) {
		t.now = now
	}
}

// WithStoreTimeout bounds every call to the repository.
func WithStoreTimeout(d time.Duration) Option {
	return func(t *Todo) {
		t.timeout = d
	}
}

// NewTodo instantiates the Todo service.
func NewTodo(logger *zap.Logger, repo TodoRepository, msgBroker TodoMessageBrokerRepository, opts ...Option) *Todo {
	t := &Todo{
		logger:    logger,
		repo:      repo,
		msgBroker: msgBroker,
		now:       func() time.Time { return time.Now().UTC() },
		timeout:   defaultStoreTimeout,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// By returns the Todos matching the filters, search term and ordering in params.
func (t *Todo) By(ctx context.Context, params internal.ListParams) ([]internal.Todo, error) {
	ctx, span := trace.SpanFromContext(ctx).Tracer().Start(ctx, "Todo.By")
	defer span.End()

	if err := params.Validate(); err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "params.Validate")
	}

	todos, err := t.all(ctx)
	if err != nil {
		return nil, err
	}

	return query.Run(todos, params), nil
}

// Suggestions returns autocomplete entries for term.
func (t *Todo) Suggestions(ctx context.Context, term string) ([]string, error) {
	ctx, span := trace.SpanFromContext(ctx).Tracer().Start(ctx, "Todo.Suggestions")
	defer span.End()

	todos, err := t.all(ctx)
	if err != nil {
		return nil, err
	}

	return query.Suggestions(todos, term, query.DefaultSuggestionsLimit), nil
}

// Stats returns the completion progress of all Todos.
func (t *Todo) Stats(ctx context.Context) (internal.Stats, error) {
	ctx, span := trace.SpanFromContext(ctx).Tracer().Start(ctx, "Todo.Stats")
	defer span.End()

	todos, err := t.all(ctx)
	if err != nil {
		return internal.Stats{}, err
	}

	return query.Summarize(todos), nil
}

// Create stores a new record.
func (t *Todo) Create(ctx context.Context, params internal.CreateParams) (internal.Todo, error) {
	ctx, span := trace.SpanFromContext(ctx).Tracer().Start(ctx, "Todo.Create")
	defer span.End()

	todo, err := internal.NormalizeForCreate(params, t.now())
	if err != nil {
		return internal.Todo{}, internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "internal.NormalizeForCreate")
	}

	sctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	todo, err = t.repo.Create(sctx, todo)
	if err != nil {
		return internal.Todo{}, repoError(err, "repo create")
	}

	if err := t.msgBroker.Created(ctx, todo); err != nil {
		t.logger.Warn("Couldn't publish event", zap.String("type", "created"), zap.String("id", todo.ID), zap.Error(err))
	}

	return todo, nil
}

// Delete removes an existing Todo from the datastore.
func (t *Todo) Delete(ctx context.Context, id string) error {
	ctx, span := trace.SpanFromContext(ctx).Tracer().Start(ctx, "Todo.Delete")
	defer span.End()

	sctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	if err := t.repo.Delete(sctx, id); err != nil {
		return repoError(err, "repo delete")
	}

	if err := t.msgBroker.Deleted(ctx, id); err != nil {
		t.logger.Warn("Couldn't publish event", zap.String("type", "deleted"), zap.String("id", id), zap.Error(err))
	}

	return nil
}

// Todo gets an existing Todo from the datastore.
func (t *Todo) Todo(ctx context.Context, id string) (internal.Todo, error) {
	ctx, span := trace.SpanFromContext(ctx).Tracer().Start(ctx, "Todo.Todo")
	defer span.End()

	sctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	todo, err := t.repo.Find(sctx, id)
	if err != nil {
		return internal.Todo{}, repoError(err, "repo find")
	}

	return todo, nil
}

// Update merges the supplied fields into an existing Todo.
func (t *Todo) Update(ctx context.Context, id string, params internal.UpdateParams) (internal.Todo, error) {
	ctx, span := trace.SpanFromContext(ctx).Tracer().Start(ctx, "Todo.Update")
	defer span.End()

	return t.update(ctx, id, func(current internal.Todo) (internal.Todo, error) {
		return internal.NormalizeForUpdate(current, params, t.now())
	})
}

// Toggle flips the completion status of an existing Todo.
func (t *Todo) Toggle(ctx context.Context, id string) (internal.Todo, error) {
	ctx, span := trace.SpanFromContext(ctx).Tracer().Start(ctx, "Todo.Toggle")
	defer span.End()

	return t.update(ctx, id, func(current internal.Todo) (internal.Todo, error) {
		return internal.Toggle(current, t.now()), nil
	})
}

func (t *Todo) update(ctx context.Context, id string, fn internal.UpdateFunc) (internal.Todo, error) {
	sctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	todo, err := t.repo.Update(sctx, id, fn)
	if err != nil {
		return internal.Todo{}, repoError(err, "repo update")
	}

	if err := t.msgBroker.Updated(ctx, todo); err != nil {
		t.logger.Warn("Couldn't publish event", zap.String("type", "updated"), zap.String("id", todo.ID), zap.Error(err))
	}

	return todo, nil
}

func (t *Todo) all(ctx context.Context) ([]internal.Todo, error) {
	sctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	todos, err := t.repo.All(sctx)
	if err != nil {
		return nil, repoError(err, "repo all")
	}

	return todos, nil
}

// repoError keeps the errors callers can correct and reports everything else as a storage failure.
func repoError(err error, msg string) error {
	switch code := internal.CodeOf(err); code {
	case internal.ErrorCodeNotFound, internal.ErrorCodeInvalidArgument, internal.ErrorCodeInvalidIdentifier:
		return internal.WrapErrorf(err, code, msg)
	}

	return internal.WrapErrorf(err, internal.ErrorCodeStorage, msg)
}
