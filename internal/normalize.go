package internal

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var dueDateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDueDate parses a date ("2006-01-02") or a timestamp (RFC3339). Date-only values are the
// start of that day in loc.
func ParseDueDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)

	var (
		res time.Time
		err error
	)

	for _, layout := range dueDateLayouts {
		if res, err = time.ParseInLocation(layout, value, loc); err == nil {
			return res, nil
		}
	}

	return time.Time{}, WrapErrorf(err, ErrorCodeInvalidArgument, "time.Parse")
}

// NormalizeForCreate validates params and returns the record to persist, ID is assigned by the store.
func NormalizeForCreate(params CreateParams, now time.Time) (Todo, error) {
	now = timestamp(now)

	params.Title = strings.TrimSpace(params.Title)
	if params.Priority == "" {
		params.Priority = PriorityMedium
	}

	var due time.Time

	if err := validation.ValidateStruct(&params,
		validation.Field(&params.Title, validation.Required),
		validation.Field(&params.DueDate, validation.Required, validation.By(dueDateRule(now, nil, &due))),
		validation.Field(&params.Priority, validation.In(priorities...)),
	); err != nil {
		return Todo{}, WrapErrorf(err, ErrorCodeInvalidArgument, "invalid values")
	}

	due = due.UTC()

	return Todo{
		Title:       params.Title,
		Description: params.Description,
		DueDate:     &due,
		Priority:    params.Priority,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}, nil
}

// NormalizeForUpdate validates the supplied fields in params and merges them into existing.
// ID and CreatedAt are never modified.
func NormalizeForUpdate(existing Todo, params UpdateParams, now time.Time) (Todo, error) {
	now = timestamp(now)

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		params.Title = &title
	}

	var due time.Time

	if err := validation.ValidateStruct(&params,
		validation.Field(&params.Title, validation.NilOrNotEmpty),
		validation.Field(&params.DueDate, validation.NilOrNotEmpty, validation.By(dueDateRule(now, existing.DueDate, &due))),
		validation.Field(&params.Priority, validation.NilOrNotEmpty, validation.In(priorities...)),
	); err != nil {
		return Todo{}, WrapErrorf(err, ErrorCodeInvalidArgument, "invalid values")
	}

	res := existing

	if params.Title != nil {
		res.Title = *params.Title
	}

	if params.Description != nil {
		res.Description = *params.Description
	}

	if params.DueDate != nil {
		due = due.UTC()
		res.DueDate = &due
	}

	if params.Priority != nil {
		res.Priority = *params.Priority
	}

	if params.IsCompleted != nil {
		res.IsCompleted = *params.IsCompleted
	}

	res.UpdatedAt = touch(existing.UpdatedAt, now).UTC()

	return res, nil
}

// Toggle flips the completion flag of existing.
func Toggle(existing Todo, now time.Time) Todo {
	existing.IsCompleted = !existing.IsCompleted
	existing.UpdatedAt = touch(existing.UpdatedAt, timestamp(now)).UTC()

	return existing
}

// dueDateRule parses the value into dst and rejects dates before the start of now's day, unless the
// value equals current.
func dueDateRule(now time.Time, current *time.Time, dst *time.Time) validation.RuleFunc {
	return func(value interface{}) error {
		v, isNil := validation.Indirect(value)
		if isNil {
			return nil
		}

		s, _ := v.(string)

		t, err := ParseDueDate(s, now.Location())
		if err != nil {
			return validation.NewError("validation_due_date_format", "must be a date (YYYY-MM-DD) or an RFC3339 timestamp")
		}

		t = timestamp(t)
		*dst = t

		if current != nil && current.Equal(t) {
			return nil
		}

		if t.Before(startOfDay(now)) {
			return validation.NewError("validation_due_date_past", "cannot be in the past")
		}

		return nil
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// timestamp truncates t to the precision supported by every store.
func timestamp(t time.Time) time.Time {
	return t.Truncate(time.Microsecond)
}

// touch returns now, or the instant right after prev when the clock did not move forward.
func touch(prev, now time.Time) time.Time {
	if next := prev.Add(time.Microsecond); now.Before(next) {
		return next
	}

	return now
}
