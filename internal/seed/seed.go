// Package seed inserts sample Todo records into an empty store.
package seed

import (
	"context"
	_ "embed"
	"time"

	"github.com/ghodss/yaml"

	"github.com/sanLimbu/todo-tracker/internal"
)

//go:embed todos.yaml
var todos []byte

// Entry is a sample Todo, the due date is relative to the day it is applied.
type Entry struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	DueInDays   int               `json:"due_in_days"`
	Priority    internal.Priority `json:"priority"`
	Completed   bool              `json:"completed"`
}

// Service defines the operations used for seeding.
type Service interface {
	Create(ctx context.Context, params internal.CreateParams) (internal.Todo, error)
	Stats(ctx context.Context) (internal.Stats, error)
	Toggle(ctx context.Context, id string) (internal.Todo, error)
}

// Default returns the embedded sample entries.
func Default() ([]Entry, error) {
	return Parse(todos)
}

// Parse decodes YAML entries.
func Parse(data []byte) ([]Entry, error) {
	var res []Entry

	if err := yaml.Unmarshal(data, &res); err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "yaml.Unmarshal")
	}

	return res, nil
}

// Apply creates entries when the store is empty, it returns the number of records created.
func Apply(ctx context.Context, svc Service, entries []Entry) (int, error) {
	stats, err := svc.Stats(ctx)
	if err != nil {
		return 0, internal.WrapErrorf(err, internal.CodeOf(err), "svc.Stats")
	}

	if stats.Total > 0 {
		return 0, nil
	}

	today := time.Now().UTC()

	for i, entry := range entries {
		todo, err := svc.Create(ctx, internal.CreateParams{
			Title:       entry.Title,
			Description: entry.Description,
			DueDate:     today.AddDate(0, 0, entry.DueInDays).Format("2006-01-02"),
			Priority:    entry.Priority,
		})
		if err != nil {
			return i, internal.WrapErrorf(err, internal.CodeOf(err), "svc.Create")
		}

		if entry.Completed {
			if _, err := svc.Toggle(ctx, todo.ID); err != nil {
				return i + 1, internal.WrapErrorf(err, internal.CodeOf(err), "svc.Toggle")
			}
		}
	}

	return len(entries), nil
}
