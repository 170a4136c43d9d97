package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sanLimbu/todo-tracker/internal"
	"github.com/sanLimbu/todo-tracker/internal/events"
	"github.com/sanLimbu/todo-tracker/internal/memory"
	"github.com/sanLimbu/todo-tracker/internal/seed"
	"github.com/sanLimbu/todo-tracker/internal/service"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	entries, err := seed.Default()
	require.NoError(t, err)
	require.Len(t, entries, 5)
	require.Equal(t, seed.Entry{
		Title:       "Buy groceries",
		Description: "Milk, eggs, bread",
		DueInDays:   7,
		Priority:    internal.PriorityMedium,
	}, entries[0])
}

func TestParse(t *testing.T) {
	t.Parallel()

	_, err := seed.Parse([]byte("title: [unterminated"))
	require.Equal(t, internal.ErrorCodeInvalidArgument, internal.CodeOf(err))
}

func TestApply(t *testing.T) {
	t.Parallel()

	svc := service.NewTodo(zap.NewNop(), memory.NewTodo(), events.Noop{})

	entries, err := seed.Default()
	require.NoError(t, err)

	n, err := seed.Apply(context.Background(), svc, entries)
	require.NoError(t, err)
	require.Equal(t, 5, n)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, internal.Stats{Total: 5, Completed: 1, Pending: 4, Percent: 20}, stats)

	completed, err := svc.By(context.Background(), internal.ListParams{Status: internal.StatusCompleted})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	require.Equal(t, "Schedule team meeting", completed[0].Title)

	n, err = seed.Apply(context.Background(), svc, entries)
	require.NoError(t, err)
	require.Zero(t, n)

	stats, err = svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, stats.Total)
}

func TestApply_Invalid(t *testing.T) {
	t.Parallel()

	svc := service.NewTodo(zap.NewNop(), memory.NewTodo(), events.Noop{})

	n, err := seed.Apply(context.Background(), svc, []seed.Entry{
		{Title: "ok", DueInDays: 1},
		{Title: "past", DueInDays: -2},
	})
	require.Equal(t, 1, n)
	require.Equal(t, internal.ErrorCodeInvalidArgument, internal.CodeOf(err))
}
