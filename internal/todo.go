package internal

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Priority indicates how important a Todo is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var priorities = []interface{}{PriorityLow, PriorityMedium, PriorityHigh}

// Weight returns the ordinal used when sorting by priority, 0 for unknown values.
func (p Priority) Weight() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	}

	return 0
}

// Todo is a task that needs to be completed, optionally before a due date.
type Todo struct {
	ID          string
	Title       string
	Description string
	DueDate     *time.Time
	Priority    Priority
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UpdateFunc receives the current record and returns the one to persist.
type UpdateFunc func(current Todo) (Todo, error)

// CreateParams defines the arguments used for creating Todo records.
type CreateParams struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     string   `json:"due_date"`
	Priority    Priority `json:"priority"`
}

// UpdateParams defines the arguments used for updating Todo records, nil fields are left untouched.
type UpdateParams struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	DueDate     *string   `json:"due_date"`
	Priority    *Priority `json:"priority"`
	IsCompleted *bool     `json:"is_completed"`
}

// Status filters Todo records by completion.
type Status string

const (
	StatusAll       Status = "all"
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// SortKey selects the secondary ordering applied when listing.
type SortKey string

const (
	SortKeyDueDate   SortKey = "dueDate"
	SortKeyPriority  SortKey = "priority"
	SortKeyCreatedAt SortKey = "createdAt"
)

// SortOrder inverts the secondary ordering when SortOrderDesc.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// ListParams defines the arguments used for listing Todo records. Zero values mean: all statuses,
// any priority, no search term, sorted by due date ascending.
type ListParams struct {
	Status    Status    `json:"status"`
	Priority  Priority  `json:"priority"`
	Search    string    `json:"q"`
	SortKey   SortKey   `json:"sort"`
	SortOrder SortOrder `json:"order"`
}

// Validate indicates whether the fields are valid or not.
func (p ListParams) Validate() error {
	if err := validation.ValidateStruct(&p,
		validation.Field(&p.Status, validation.In(StatusAll, StatusPending, StatusCompleted)),
		validation.Field(&p.Priority, validation.In(priorities...)),
		validation.Field(&p.SortKey, validation.In(SortKeyDueDate, SortKeyPriority, SortKeyCreatedAt)),
		validation.Field(&p.SortOrder, validation.In(SortOrderAsc, SortOrderDesc)),
	); err != nil {
		return WrapErrorf(err, ErrorCodeInvalidArgument, "invalid values")
	}

	return nil
}

// Stats summarizes the completion progress of a set of Todo records.
type Stats struct {
	Total     int
	Completed int
	Pending   int
	Percent   int
}
