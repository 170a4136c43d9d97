package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	esv7 "github.com/elastic/go-elasticsearch/v7"
	esv7api "github.com/elastic/go-elasticsearch/v7/esapi"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/sanLimbu/todo-tracker/internal"
	"github.com/sanLimbu/todo-tracker/internal/events"
)

const otelName = "github.com/sanLimbu/todo-tracker/internal/elasticsearch"

// IndexName is the index holding Todo documents.
const IndexName = "todos"

// Todo represents the repository used for indexing Todo records.
type Todo struct {
	client *esv7.Client
	index  string
}

type indexedTodo struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Priority    internal.Priority `json:"priority"`
	IsCompleted bool              `json:"is_completed"`
	DueDate     *int64            `json:"due_date,omitempty"`
	CreatedAt   int64             `json:"created_at"`
	UpdatedAt   int64             `json:"updated_at"`
}

// NewTodo instantiates the Todo repository.
func NewTodo(client *esv7.Client) *Todo {
	return &Todo{
		client: client,
		index:  IndexName,
	}
}

// Index creates or updates a todo in the index.
func (t *Todo) Index(ctx context.Context, todo internal.Todo) error {
	defer newOTELSpan(ctx, "Todo.Index").End()

	body := indexedTodo{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		Priority:    todo.Priority,
		IsCompleted: todo.IsCompleted,
		CreatedAt:   todo.CreatedAt.UnixNano(),
		UpdatedAt:   todo.UpdatedAt.UnixNano(),
	}

	if todo.DueDate != nil {
		due := todo.DueDate.UnixNano()
		body.DueDate = &due
	}

	var buf bytes.Buffer

	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "json.NewEncoder.Encode")
	}

	req := esv7api.IndexRequest{
		Index:      t.index,
		Body:       &buf,
		DocumentID: todo.ID,
		Refresh:    "true",
	}

	resp, err := req.Do(ctx, t.client)
	if err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "IndexRequest.Do")
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return internal.NewErrorf(internal.ErrorCodeUnknown, "IndexRequest.Do %d", resp.StatusCode)
	}

	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

// Delete removes a todo from the index, missing documents are not an error.
func (t *Todo) Delete(ctx context.Context, id string) error {
	defer newOTELSpan(ctx, "Todo.Delete").End()

	req := esv7api.DeleteRequest{
		Index:      t.index,
		DocumentID: id,
	}

	resp, err := req.Do(ctx, t.client)
	if err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "DeleteRequest.Do")
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != http.StatusNotFound {
		return internal.NewErrorf(internal.ErrorCodeUnknown, "DeleteRequest.Do %d", resp.StatusCode)
	}

	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

// Handle applies a published event to the index.
func (t *Todo) Handle(ctx context.Context, evt events.Event) error {
	switch evt.Type {
	case events.TypeCreated, events.TypeUpdated:
		return t.Index(ctx, evt.Value)
	case events.TypeDeleted:
		return t.Delete(ctx, evt.Value.ID)
	}

	return internal.NewErrorf(internal.ErrorCodeInvalidArgument, "unknown event type %q", evt.Type)
}

func newOTELSpan(ctx context.Context, name string) trace.Span {
	_, span := otel.Tracer(otelName).Start(ctx, name)
	span.SetAttributes(semconv.DBSystemElasticsearch)

	return span
}
