package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/sanLimbu/todo-tracker/internal"
)

// TodoService defines the application service handling Todo records.
type TodoService interface {
	By(ctx context.Context, params internal.ListParams) ([]internal.Todo, error)
	Create(ctx context.Context, params internal.CreateParams) (internal.Todo, error)
	Delete(ctx context.Context, id string) error
	Todo(ctx context.Context, id string) (internal.Todo, error)
	Update(ctx context.Context, id string, params internal.UpdateParams) (internal.Todo, error)
	Toggle(ctx context.Context, id string) (internal.Todo, error)
	Suggestions(ctx context.Context, term string) ([]string, error)
	Stats(ctx context.Context) (internal.Stats, error)
}

// TodoHandler exposes TodoService over HTTP.
type TodoHandler struct {
	svc TodoService
}

// NewTodoHandler instantiates the handler.
func NewTodoHandler(svc TodoService) *TodoHandler {
	return &TodoHandler{
		svc: svc,
	}
}

// Register connects the handlers to the router.
func (t *TodoHandler) Register(r chi.Router) {
	r.Route("/api/todos", func(r chi.Router) {
		r.Get("/", t.list)
		r.Post("/", t.create)
		r.Get("/stats", t.stats)
		r.Get("/suggestions", t.suggestions)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", t.todo)
			r.Put("/", t.update)
			r.Delete("/", t.delete)
			r.Put("/toggle", t.toggle)
		})
	})
}

// Todo is the wire representation of a todo.
type Todo struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	DueDate     *time.Time        `json:"due_date"`
	Priority    internal.Priority `json:"priority"`
	IsCompleted bool              `json:"is_completed"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NewTodo converts the domain type into its wire representation.
func NewTodo(todo internal.Todo) Todo {
	return Todo{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		DueDate:     todo.DueDate,
		Priority:    todo.Priority,
		IsCompleted: todo.IsCompleted,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
}

// CreateTodoRequest defines the request used for creating todos.
type CreateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
}

// Bind implements render.Binder.
func (*CreateTodoRequest) Bind(*http.Request) error { return nil }

// UpdateTodoRequest defines the request used for updating todos, omitted fields are left untouched.
type UpdateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Priority    *string `json:"priority"`
	IsCompleted *bool   `json:"is_completed"`
}

// Bind implements render.Binder.
func (*UpdateTodoRequest) Bind(*http.Request) error { return nil }

// DeleteTodoResponse defines the response returned after deleting a todo.
type DeleteTodoResponse struct {
	Message string `json:"message"`
}

// StatsResponse defines the completion progress returned.
type StatsResponse struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Percent   int `json:"percent"`
}

func (t *TodoHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	todos, err := t.svc.By(r.Context(), internal.ListParams{
		Status:    internal.Status(q.Get("status")),
		Priority:  internal.Priority(q.Get("priority")),
		Search:    q.Get("q"),
		SortKey:   internal.SortKey(q.Get("sort")),
		SortOrder: internal.SortOrder(q.Get("order")),
	})
	if err != nil {
		renderErrorResponse(r.Context(), w, r, "failed to fetch todos", err)
		return
	}

	res := make([]Todo, len(todos))
	for i, todo := range todos {
		res[i] = NewTodo(todo)
	}

	renderResponse(w, r, res, http.StatusOK)
}

func (t *TodoHandler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateTodoRequest
	if err := render.Bind(r, &req); err != nil {
		renderErrorResponse(r.Context(), w, r, "invalid request",
			internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "render.Bind"))
		return
	}

	todo, err := t.svc.Create(r.Context(), internal.CreateParams{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    internal.Priority(req.Priority),
	})
	if err != nil {
		renderErrorResponse(r.Context(), w, r, "failed to create todo", err)
		return
	}

	renderResponse(w, r, NewTodo(todo), http.StatusCreated)
}

func (t *TodoHandler) todo(w http.ResponseWriter, r *http.Request) {
	todo, err := t.svc.Todo(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		renderErrorResponse(r.Context(), w, r, "failed to fetch todo", err)
		return
	}

	renderResponse(w, r, NewTodo(todo), http.StatusOK)
}

func (t *TodoHandler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdateTodoRequest
	if err := render.Bind(r, &req); err != nil {
		renderErrorResponse(r.Context(), w, r, "invalid request",
			internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "render.Bind"))
		return
	}

	params := internal.UpdateParams{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		IsCompleted: req.IsCompleted,
	}

	if req.Priority != nil {
		p := internal.Priority(*req.Priority)
		params.Priority = &p
	}

	todo, err := t.svc.Update(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		renderErrorResponse(r.Context(), w, r, "failed to update todo", err)
		return
	}

	renderResponse(w, r, NewTodo(todo), http.StatusOK)
}

func (t *TodoHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := t.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		renderErrorResponse(r.Context(), w, r, "failed to delete todo", err)
		return
	}

	renderResponse(w, r, DeleteTodoResponse{Message: "Todo deleted successfully"}, http.StatusOK)
}

func (t *TodoHandler) toggle(w http.ResponseWriter, r *http.Request) {
	todo, err := t.svc.Toggle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		renderErrorResponse(r.Context(), w, r, "failed to toggle completion", err)
		return
	}

	renderResponse(w, r, NewTodo(todo), http.StatusOK)
}

func (t *TodoHandler) suggestions(w http.ResponseWriter, r *http.Request) {
	res, err := t.svc.Suggestions(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		renderErrorResponse(r.Context(), w, r, "failed to fetch suggestions", err)
		return
	}

	renderResponse(w, r, res, http.StatusOK)
}

func (t *TodoHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := t.svc.Stats(r.Context())
	if err != nil {
		renderErrorResponse(r.Context(), w, r, "failed to fetch stats", err)
		return
	}

	renderResponse(w, r, StatsResponse{
		Total:     stats.Total,
		Completed: stats.Completed,
		Pending:   stats.Pending,
		Percent:   stats.Percent,
	}, http.StatusOK)
}
