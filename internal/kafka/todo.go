package kafka

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/sanLimbu/todo-tracker/internal"
	"github.com/sanLimbu/todo-tracker/internal/events"
)

// Producer is the subset of *kafka.Producer used for publishing.
type Producer interface {
	Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error
}

// Todo represents the repository used for publishing Todo records.
type Todo struct {
	producer  Producer
	topicName string
}

// NewTodo instantiates the Todo repository.
func NewTodo(producer Producer, topicName string) *Todo {
	return &Todo{
		topicName: topicName,
		producer:  producer,
	}
}

// Created publishes a message indicating a todo was created.
func (t *Todo) Created(ctx context.Context, todo internal.Todo) error {
	return t.publish(ctx, "Todo.Created", events.TypeCreated, todo)
}

// Deleted publishes a message indicating a todo was deleted.
func (t *Todo) Deleted(ctx context.Context, id string) error {
	return t.publish(ctx, "Todo.Deleted", events.TypeDeleted, internal.Todo{ID: id})
}

// Updated publishes a message indicating a todo was updated.
func (t *Todo) Updated(ctx context.Context, todo internal.Todo) error {
	return t.publish(ctx, "Todo.Updated", events.TypeUpdated, todo)
}

func (t *Todo) publish(ctx context.Context, spanName, msgType string, todo internal.Todo) error {
	_, span := trace.SpanFromContext(ctx).Tracer().Start(ctx, spanName)
	defer span.End()

	span.SetAttributes(
		attribute.KeyValue{
			Key:   semconv.MessagingSystemKey,
			Value: attribute.StringValue("kafka"),
		},
		attribute.KeyValue{
			Key:   semconv.MessagingDestinationKey,
			Value: attribute.StringValue(t.topicName),
		},
	)

	var b bytes.Buffer

	evt := events.Event{
		Type:  msgType,
		Value: todo,
	}

	if err := json.NewEncoder(&b).Encode(evt); err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "json.Encode")
	}

	if err := t.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &t.topicName,
			Partition: kafka.PartitionAny,
		},
		Key:   []byte(todo.ID),
		Value: b.Bytes(),
	}, nil); err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "producer.Produce")
	}

	return nil
}
