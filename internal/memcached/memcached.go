package memcached

import (
	"bytes"
	"context"
	"encoding/gob"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/sanLimbu/todo-tracker/internal"
)

const (
	otelName = "github.com/sanLimbu/todo-tracker/internal/memcached"

	// tombstoneFlags marks the item left behind by a deleted record.
	tombstoneFlags uint32 = 1
)

// Client is the subset of *memcache.Client used for caching.
type Client interface {
	Get(key string) (*memcache.Item, error)
	Set(item *memcache.Item) error
	Add(item *memcache.Item) error
}

// cacheKey returns the key for id, false when id can't be a stored record.
func cacheKey(id string) (string, bool) {
	val, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}

	return "todo:" + val.String(), true
}

// deleteTodo replaces the cached value with a tombstone so in-flight fills can't restore it.
func deleteTodo(ctx context.Context, client Client, key string, expiration time.Duration) {
	defer newOTELSpan(ctx, "deleteTodo").End()

	_ = client.Set(&memcache.Item{
		Key:        key,
		Flags:      tombstoneFlags,
		Expiration: int32(expiration.Seconds()),
	})
}

func getTodo(ctx context.Context, client Client, key string, target interface{}) error {
	defer newOTELSpan(ctx, "getTodo").End()

	item, err := client.Get(key)
	if err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "client.Get")
	}

	if item.Flags == tombstoneFlags {
		return internal.WrapErrorf(memcache.ErrCacheMiss, internal.ErrorCodeNotFound, "deleted")
	}

	if err := gob.NewDecoder(bytes.NewReader(item.Value)).Decode(target); err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "gob.NewDecoder")
	}

	return nil
}

func setTodo(ctx context.Context, client Client, key string, value interface{}, expiration time.Duration) {
	defer newOTELSpan(ctx, "setTodo").End()

	var b bytes.Buffer

	if err := gob.NewEncoder(&b).Encode(value); err != nil {
		return
	}

	_ = client.Set(&memcache.Item{
		Key:        key,
		Value:      b.Bytes(),
		Expiration: int32(expiration.Seconds()),
	})
}

// addTodo caches value only when key holds nothing, memcache.ErrNotStored otherwise.
func addTodo(ctx context.Context, client Client, key string, value interface{}, expiration time.Duration) error {
	defer newOTELSpan(ctx, "addTodo").End()

	var b bytes.Buffer

	if err := gob.NewEncoder(&b).Encode(value); err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "gob.NewEncoder")
	}

	return client.Add(&memcache.Item{
		Key:        key,
		Value:      b.Bytes(),
		Expiration: int32(expiration.Seconds()),
	})
}

func newOTELSpan(ctx context.Context, name string) trace.Span {
	_, span := otel.Tracer(otelName).Start(ctx, name)

	span.SetAttributes(semconv.DBSystemMemcached)

	return span
}
