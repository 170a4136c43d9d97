// Package redis caches the full list of Todo records in Redis.
package redis

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/sanLimbu/todo-tracker/internal"
)

const (
	otelName    = "github.com/sanLimbu/todo-tracker/internal/redis"
	allKey      = "todos:all"
	versionKey  = "todos:all:version"
	fillTimeout = 5 * time.Second
)

var errStale = errors.New("cached todos are stale")

// getter is implemented by both *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// TodoStore defines the datastore decorated by Todo.
type TodoStore interface {
	Create(ctx context.Context, todo internal.Todo) (internal.Todo, error)
	Find(ctx context.Context, id string) (internal.Todo, error)
	All(ctx context.Context) ([]internal.Todo, error)
	Update(ctx context.Context, id string, fn internal.UpdateFunc) (internal.Todo, error)
	Delete(ctx context.Context, id string) error
}

// Todo caches the result of All, every write invalidates it and bumps a version that guards in-flight fills.
type Todo struct {
	client     *redis.Client
	orig       TodoStore
	expiration time.Duration
	logger     *zap.Logger
	group      singleflight.Group
}

// NewTodo instantiates the Redis decorator.
func NewTodo(client *redis.Client, orig TodoStore, logger *zap.Logger, expiration time.Duration) *Todo {
	return &Todo{
		client:     client,
		orig:       orig,
		expiration: expiration,
		logger:     logger,
	}
}

// All returns the cached list, concurrent misses share one call to the decorated store.
func (t *Todo) All(ctx context.Context) ([]internal.Todo, error) {
	defer newOTELSpan(ctx, "Todo.All").End()

	if res, err := t.get(ctx); err == nil {
		return res, nil
	} else if !errors.Is(err, redis.Nil) {
		t.logger.Warn("Couldn't read cached todos", zap.Error(err))
	}

	v, err, _ := t.group.Do(allKey, func() (interface{}, error) {
		// Shared by every caller waiting on the key.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fillTimeout)
		defer cancel()

		version, verr := t.version(ctx)
		if verr != nil {
			t.logger.Warn("Couldn't read cached todos version", zap.Error(verr))
		}

		res, err := t.orig.All(ctx)
		if err != nil {
			return nil, err
		}

		if verr == nil {
			t.set(ctx, version, res)
		}

		return res, nil
	})
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.CodeOf(err), "orig.All")
	}

	return clone(v.([]internal.Todo)), nil
}

// Find is not cached.
func (t *Todo) Find(ctx context.Context, id string) (internal.Todo, error) {
	return t.orig.Find(ctx, id)
}

// Create inserts the record and invalidates the cached list.
func (t *Todo) Create(ctx context.Context, todo internal.Todo) (internal.Todo, error) {
	defer newOTELSpan(ctx, "Todo.Create").End()

	res, err := t.orig.Create(ctx, todo)
	if err != nil {
		return internal.Todo{}, internal.WrapErrorf(err, internal.CodeOf(err), "orig.Create")
	}

	t.invalidate(ctx)

	return res, nil
}

// Update replaces the record and invalidates the cached list.
func (t *Todo) Update(ctx context.Context, id string, fn internal.UpdateFunc) (internal.Todo, error) {
	defer newOTELSpan(ctx, "Todo.Update").End()

	res, err := t.orig.Update(ctx, id, fn)
	if err != nil {
		return internal.Todo{}, internal.WrapErrorf(err, internal.CodeOf(err), "orig.Update")
	}

	t.invalidate(ctx)

	return res, nil
}

// Delete removes the record and invalidates the cached list.
func (t *Todo) Delete(ctx context.Context, id string) error {
	defer newOTELSpan(ctx, "Todo.Delete").End()

	if err := t.orig.Delete(ctx, id); err != nil {
		return internal.WrapErrorf(err, internal.CodeOf(err), "orig.Delete")
	}

	t.invalidate(ctx)

	return nil
}

func (t *Todo) get(ctx context.Context) ([]internal.Todo, error) {
	b, err := t.client.Get(ctx, allKey).Bytes()
	if err != nil {
		return nil, err
	}

	var res []internal.Todo

	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&res); err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "gob.Decode")
	}

	if res == nil {
		res = []internal.Todo{}
	}

	return res, nil
}

func (t *Todo) version(ctx context.Context) (int64, error) {
	return readVersion(ctx, t.client)
}

// set caches todos only when no write invalidated the list after version was read.
func (t *Todo) set(ctx context.Context, version int64, todos []internal.Todo) {
	var b bytes.Buffer

	if err := gob.NewEncoder(&b).Encode(todos); err != nil {
		return
	}

	err := t.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readVersion(ctx, tx)
		if err != nil {
			return err
		}

		if current != version {
			return errStale
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, allKey, b.Bytes(), t.expiration)
			return nil
		})

		return err
	}, versionKey)

	switch {
	case err == nil:
	case errors.Is(err, errStale), errors.Is(err, redis.TxFailedErr):
		t.logger.Debug("Skipped caching stale todos")
	default:
		t.logger.Warn("Couldn't cache todos", zap.Error(err))
	}
}

func (t *Todo) invalidate(ctx context.Context) {
	t.group.Forget(allKey)

	_, err := t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey)
		pipe.Del(ctx, allKey)
		return nil
	})
	if err != nil {
		t.logger.Warn("Couldn't invalidate cached todos", zap.Error(err))
	}
}

func readVersion(ctx context.Context, client getter) (int64, error) {
	res, err := client.Get(ctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, err
	}

	return res, nil
}

func clone(todos []internal.Todo) []internal.Todo {
	res := make([]internal.Todo, len(todos))

	for i, todo := range todos {
		if todo.DueDate != nil {
			due := *todo.DueDate
			todo.DueDate = &due
		}

		res[i] = todo
	}

	return res
}

func newOTELSpan(ctx context.Context, name string) trace.Span {
	_, span := otel.Tracer(otelName).Start(ctx, name)

	span.SetAttributes(semconv.DBSystemRedis)

	return span
}
