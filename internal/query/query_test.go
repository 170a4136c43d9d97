package query_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sanLimbu/todo-tracker/internal"
	"github.com/sanLimbu/todo-tracker/internal/query"
)

var base = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

func day(n int) *time.Time {
	t := base.AddDate(0, 0, n)
	return &t
}

func fixtures() []internal.Todo {
	return []internal.Todo{
		{ID: "1", Title: "Buy groceries", Description: "milk and eggs", DueDate: day(3), Priority: internal.PriorityLow, CreatedAt: base.Add(1 * time.Hour)},
		{ID: "2", Title: "Write report", Description: "quarterly numbers", DueDate: day(1), Priority: internal.PriorityHigh, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "3", Title: "Call plumber", DueDate: day(2), Priority: internal.PriorityMedium, IsCompleted: true, CreatedAt: base.Add(3 * time.Hour)},
		{ID: "4", Title: "Read book", Description: "Go in practice", Priority: internal.PriorityMedium, CreatedAt: base.Add(4 * time.Hour)},
		{ID: "5", Title: "Pay bills", DueDate: day(1), Priority: internal.PriorityHigh, IsCompleted: true, CreatedAt: base.Add(5 * time.Hour)},
		{ID: "6", Title: "Plan trip", DueDate: day(5), Priority: internal.PriorityLow, CreatedAt: base.Add(6 * time.Hour)},
	}
}

func ids(todos []internal.Todo) []string {
	res := make([]string, 0, len(todos))
	for _, t := range todos {
		res = append(res, t.ID)
	}

	return res
}

func TestFilter(t *testing.T) {
	t.Parallel()

	statuses := []internal.Status{"", internal.StatusAll, internal.StatusPending, internal.StatusCompleted}
	priorities := []internal.Priority{"", internal.PriorityLow, internal.PriorityMedium, internal.PriorityHigh}

	for _, status := range statuses {
		for _, priority := range priorities {
			status, priority := status, priority

			t.Run(fmt.Sprintf("%s/%s", status, priority), func(t *testing.T) {
				t.Parallel()

				todos := fixtures()
				res := query.Filter(todos, status, priority)

				var expected []string

				for _, todo := range todos {
					if status == internal.StatusPending && todo.IsCompleted {
						continue
					}
					if status == internal.StatusCompleted && !todo.IsCompleted {
						continue
					}
					if priority != "" && todo.Priority != priority {
						continue
					}
					expected = append(expected, todo.ID)
				}

				if expected == nil {
					expected = []string{}
				}

				require.Equal(t, expected, ids(res))
			})
		}
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		term     string
		expected []string
	}{
		{"empty", "", []string{"1", "2", "3", "4", "5", "6"}},
		{"blank", "   ", []string{"1", "2", "3", "4", "5", "6"}},
		{"title case insensitive", "REPORT", []string{"2"}},
		{"description", "eggs", []string{"1"}},
		{"priority", "high", []string{"2", "5"}},
		{"substring", "pl", []string{"3", "6"}},
		{"trimmed", "  book ", []string{"4"}},
		{"none", "zzz", []string{}},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.expected, ids(query.Search(fixtures(), tt.term)))
		})
	}
}

func TestSort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      internal.SortKey
		order    internal.SortOrder
		expected []string
	}{
		{"default", "", "", []string{"2", "1", "6", "4", "5", "3"}},
		{"due date asc", internal.SortKeyDueDate, internal.SortOrderAsc, []string{"2", "1", "6", "4", "5", "3"}},
		{"due date desc", internal.SortKeyDueDate, internal.SortOrderDesc, []string{"6", "1", "2", "4", "3", "5"}},
		{"priority asc", internal.SortKeyPriority, internal.SortOrderAsc, []string{"1", "6", "4", "2", "3", "5"}},
		{"priority desc", internal.SortKeyPriority, internal.SortOrderDesc, []string{"2", "4", "1", "6", "5", "3"}},
		{"created at asc", internal.SortKeyCreatedAt, internal.SortOrderAsc, []string{"6", "4", "2", "1", "5", "3"}},
		{"created at desc", internal.SortKeyCreatedAt, internal.SortOrderDesc, []string{"1", "2", "4", "6", "3", "5"}},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			todos := fixtures()
			query.Sort(todos, tt.key, tt.order)

			require.Equal(t, tt.expected, ids(todos))
		})
	}
}

func TestSort_CompletedAlwaysLast(t *testing.T) {
	t.Parallel()

	for _, key := range []internal.SortKey{internal.SortKeyDueDate, internal.SortKeyPriority, internal.SortKeyCreatedAt} {
		for _, order := range []internal.SortOrder{internal.SortOrderAsc, internal.SortOrderDesc} {
			todos := fixtures()
			query.Sort(todos, key, order)

			seenCompleted := false

			for _, todo := range todos {
				if todo.IsCompleted {
					seenCompleted = true
					continue
				}

				require.False(t, seenCompleted, "%s %s: pending after completed", key, order)
			}
		}
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	todos := fixtures()

	res := query.Run(todos, internal.ListParams{
		Status:    internal.StatusAll,
		Search:    "p",
		SortKey:   internal.SortKeyPriority,
		SortOrder: internal.SortOrderDesc,
	})

	require.Equal(t, []string{"2", "4", "6", "5", "3"}, ids(res))

	// input untouched
	require.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, ids(todos))

	res = query.Run(todos, internal.ListParams{Status: internal.StatusPending, Priority: internal.PriorityHigh})
	require.Equal(t, []string{"2"}, ids(res))
}

func TestSuggestions(t *testing.T) {
	t.Parallel()

	todos := fixtures()

	require.Equal(t, []string{}, query.Suggestions(todos, "", 0))
	require.Equal(t, []string{"Write report"}, query.Suggestions(todos, "rep", 0))
	require.Equal(t, []string{"milk and eggs"}, query.Suggestions(todos, "egg", 0))
	require.Equal(t, []string{"Buy groceries"}, query.Suggestions(todos, "ies", 0))
	require.Equal(t, []string{"Priority: high"}, query.Suggestions(todos, "hig", 0))
	require.Equal(t, []string{"Plan trip"}, query.Suggestions(todos, "pla", 1))

	// only a two letter word contains "in"
	require.Equal(t, []string{}, query.Suggestions(todos, "in", 5))

	require.Len(t, query.Suggestions(todos, "e", 0), query.DefaultSuggestionsLimit)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	require.Equal(t, internal.Stats{}, query.Summarize(nil))
	require.Equal(t, internal.Stats{Total: 6, Completed: 2, Pending: 4, Percent: 33}, query.Summarize(fixtures()))
}
