package postgresql

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/sanLimbu/todo-tracker/internal"
	"github.com/sanLimbu/todo-tracker/internal/postgresql/db"
)

//go:generate sqlc generate

const otelName = "github.com/sanLimbu/todo-tracker/internal/postgresql"

func convertPriority(p db.Priority) (internal.Priority, error) {
	switch p {
	case db.PriorityLow:
		return internal.PriorityLow, nil
	case db.PriorityMedium:
		return internal.PriorityMedium, nil
	case db.PriorityHigh:
		return internal.PriorityHigh, nil
	}

	return "", internal.NewErrorf(internal.ErrorCodeStorage, "unknown priority value: %s", p)
}

func newPriority(p internal.Priority) db.Priority {
	switch p {
	case internal.PriorityLow:
		return db.PriorityLow
	case internal.PriorityHigh:
		return db.PriorityHigh
	}

	return db.PriorityMedium
}

func newTimestamp(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{
		Time:  t,
		Valid: !t.IsZero(),
	}
}

func newNullTimestamp(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}

	return newTimestamp(*t)
}

func newUUID(id string) (pgtype.UUID, error) {
	val, err := uuid.Parse(id)
	if err != nil {
		return pgtype.UUID{}, internal.WrapErrorf(err, internal.ErrorCodeInvalidIdentifier, "invalid todo id")
	}

	return pgtype.UUID{Bytes: val, Valid: true}, nil
}

func convertTodo(row db.Todo) (internal.Todo, error) {
	priority, err := convertPriority(row.Priority)
	if err != nil {
		return internal.Todo{}, err
	}

	res := internal.Todo{
		ID:          uuid.UUID(row.ID.Bytes).String(),
		Title:       row.Title,
		Description: row.Description,
		Priority:    priority,
		IsCompleted: row.IsCompleted,
		CreatedAt:   row.CreatedAt.Time.UTC(),
		UpdatedAt:   row.UpdatedAt.Time.UTC(),
	}

	if row.DueDate.Valid {
		due := row.DueDate.Time.UTC()
		res.DueDate = &due
	}

	return res, nil
}

func newOTELSpan(ctx context.Context, name string) trace.Span {
	_, span := otel.Tracer(otelName).Start(ctx, name)

	span.SetAttributes(semconv.DBSystemPostgreSQL)

	return span
}
