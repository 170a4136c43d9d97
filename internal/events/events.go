// Package events defines the messages published when Todo records change.
package events

import (
	"context"
	"time"

	"github.com/mercari/go-circuitbreaker"
	"go.uber.org/zap"

	"github.com/sanLimbu/todo-tracker/internal"
)

const (
	TypeCreated = "todos.event.created"
	TypeUpdated = "todos.event.updated"
	TypeDeleted = "todos.event.deleted"
)

// Event is the message published to the broker, deleted events only carry the ID.
type Event struct {
	Type  string
	Value internal.Todo
}

// Publisher defines the message broker notified about changes to Todo records.
type Publisher interface {
	Created(ctx context.Context, todo internal.Todo) error
	Deleted(ctx context.Context, id string) error
	Updated(ctx context.Context, todo internal.Todo) error
}

// Noop discards every event, used when no message broker is configured.
type Noop struct{}

func (Noop) Created(context.Context, internal.Todo) error { return nil }
func (Noop) Deleted(context.Context, string) error        { return nil }
func (Noop) Updated(context.Context, internal.Todo) error { return nil }

// Breaker stops calling the wrapped Publisher after consecutive failures.
type Breaker struct {
	orig Publisher
	cb   *circuitbreaker.CircuitBreaker
}

// BreakerOption configures the circuit breaker.
type BreakerOption func(*breakerConfig)

type breakerConfig struct {
	failures    int64
	openTimeout time.Duration
}

// WithFailures sets the number of consecutive failures that open the circuit.
func WithFailures(n int64) BreakerOption {
	return func(c *breakerConfig) {
		c.failures = n
	}
}

// WithOpenTimeout sets how long the circuit stays open before probing the broker again.
func WithOpenTimeout(d time.Duration) BreakerOption {
	return func(c *breakerConfig) {
		c.openTimeout = d
	}
}

// NewBreaker instantiates the circuit breaker decorator.
func NewBreaker(logger *zap.Logger, orig Publisher, opts ...BreakerOption) *Breaker {
	cfg := breakerConfig{
		failures:    3,
		openTimeout: 10 * time.Second,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Breaker{
		orig: orig,
		cb: circuitbreaker.New(
			circuitbreaker.WithTripFunc(circuitbreaker.NewTripFuncConsecutiveFailures(cfg.failures)),
			circuitbreaker.WithOpenTimeout(cfg.openTimeout),
			circuitbreaker.WithOnStateChangeHookFn(func(from, to circuitbreaker.State) {
				logger.Info("Message broker circuit changed",
					zap.String("from", string(from)),
					zap.String("to", string(to)))
			}),
		),
	}
}

// Created publishes a message indicating a todo was created.
func (b *Breaker) Created(ctx context.Context, todo internal.Todo) error {
	return b.do(ctx, func() error { return b.orig.Created(ctx, todo) })
}

// Deleted publishes a message indicating a todo was deleted.
func (b *Breaker) Deleted(ctx context.Context, id string) error {
	return b.do(ctx, func() error { return b.orig.Deleted(ctx, id) })
}

// Updated publishes a message indicating a todo was updated.
func (b *Breaker) Updated(ctx context.Context, todo internal.Todo) error {
	return b.do(ctx, func() error { return b.orig.Updated(ctx, todo) })
}

func (b *Breaker) do(ctx context.Context, fn func() error) error {
	if _, err := b.cb.Do(ctx, func() (interface{}, error) {
		return nil, fn()
	}); err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "cb.Do")
	}

	return nil
}
