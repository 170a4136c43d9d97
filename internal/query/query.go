// Package query implements filtering, searching and ordering of Todo records.
package query

import (
	"sort"
	"strings"

	"github.com/sanLimbu/todo-tracker/internal"
)

// DefaultSuggestionsLimit is the number of suggestions returned when no limit is requested.
const DefaultSuggestionsLimit = 5

// Run filters, searches and sorts todos, in that order. The input slice is not modified.
func Run(todos []internal.Todo, params internal.ListParams) []internal.Todo {
	res := Filter(todos, params.Status, params.Priority)
	res = Search(res, params.Search)
	Sort(res, params.SortKey, params.SortOrder)

	return res
}

// Filter returns the records matching status and, when not empty, priority.
func Filter(todos []internal.Todo, status internal.Status, priority internal.Priority) []internal.Todo {
	res := make([]internal.Todo, 0, len(todos))

	for _, t := range todos {
		switch status {
		case internal.StatusPending:
			if t.IsCompleted {
				continue
			}
		case internal.StatusCompleted:
			if !t.IsCompleted {
				continue
			}
		}

		if priority != "" && t.Priority != priority {
			continue
		}

		res = append(res, t)
	}

	return res
}

// Search returns the records whose title, description or priority contain term, case insensitive.
func Search(todos []internal.Todo, term string) []internal.Todo {
	term = normalizeTerm(term)
	if term == "" {
		return todos
	}

	res := make([]internal.Todo, 0, len(todos))

	for _, t := range todos {
		if contains(t.Title, term) || contains(t.Description, term) || contains(string(t.Priority), term) {
			res = append(res, t)
		}
	}

	return res
}

// Sort orders todos in place: incomplete records always go first, then the secondary key selected by
// key applies, inverted when order is descending. Equal records keep their relative order.
func Sort(todos []internal.Todo, key internal.SortKey, order internal.SortOrder) {
	if key != internal.SortKeyPriority && key != internal.SortKeyCreatedAt {
		key = internal.SortKeyDueDate
	}

	sort.SliceStable(todos, func(i, j int) bool {
		a, b := todos[i], todos[j]

		if a.IsCompleted != b.IsCompleted {
			return !a.IsCompleted
		}

		if key == internal.SortKeyDueDate {
			// Records with a due date go before the ones without, regardless of order.
			switch {
			case a.DueDate != nil && b.DueDate == nil:
				return true
			case a.DueDate == nil && b.DueDate != nil:
				return false
			case a.DueDate == nil && b.DueDate == nil:
				return false
			}
		}

		c := compare(a, b, key)
		if order == internal.SortOrderDesc {
			c = -c
		}

		return c < 0
	})
}

func compare(a, b internal.Todo, key internal.SortKey) int {
	switch key {
	case internal.SortKeyPriority:
		return a.Priority.Weight() - b.Priority.Weight()
	case internal.SortKeyCreatedAt:
		return b.CreatedAt.Compare(a.CreatedAt)
	}

	return a.DueDate.Compare(*b.DueDate)
}

// Suggestions returns up to limit autocomplete entries for term: titles and descriptions with a word
// longer than two characters containing term, and "Priority: <value>" for matching priorities.
func Suggestions(todos []internal.Todo, term string, limit int) []string {
	term = normalizeTerm(term)
	if term == "" {
		return []string{}
	}

	if limit <= 0 {
		limit = DefaultSuggestionsLimit
	}

	var (
		res  []string
		seen = make(map[string]struct{})
	)

	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		res = append(res, s)
	}

	for _, t := range todos {
		if hasWord(t.Title, term) {
			add(t.Title)
		}

		if t.Description != "" && hasWord(t.Description, term) {
			add(t.Description)
		}

		if contains(string(t.Priority), term) {
			add("Priority: " + string(t.Priority))
		}
	}

	if len(res) > limit {
		res = res[:limit]
	}

	if res == nil {
		return []string{}
	}

	return res
}

// Summarize returns the completion progress of todos.
func Summarize(todos []internal.Todo) internal.Stats {
	var res internal.Stats

	res.Total = len(todos)

	for _, t := range todos {
		if t.IsCompleted {
			res.Completed++
		}
	}

	res.Pending = res.Total - res.Completed

	if res.Total > 0 {
		res.Percent = res.Completed * 100 / res.Total
	}

	return res
}

func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

func contains(s, term string) bool {
	return strings.Contains(strings.ToLower(s), term)
}

func hasWord(s, term string) bool {
	for _, word := range strings.Split(strings.ToLower(s), " ") {
		if len(word) > 2 && strings.Contains(word, term) {
			return true
		}
	}

	return false
}
