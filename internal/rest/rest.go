package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"go.opentelemetry.io/otel"

	"github.com/sanLimbu/todo-tracker/internal"
)

const otelName = "github.com/sanLimbu/todo-tracker/internal/rest"

// ErrorResponse represents a response containing an error message.
type ErrorResponse struct {
	Error       string            `json:"error"`
	Validations map[string]string `json:"validations,omitempty"`
}

func renderErrorResponse(ctx context.Context, w http.ResponseWriter, r *http.Request, msg string, err error) {
	resp := ErrorResponse{Error: msg}
	status := http.StatusInternalServerError

	var ierr *internal.Error
	if !errors.As(err, &ierr) {
		resp.Error = "internal error"
	} else {
		switch ierr.Code() {
		case internal.ErrorCodeNotFound:
			status = http.StatusNotFound
			resp.Error = "todo not found"
		case internal.ErrorCodeInvalidIdentifier:
			status = http.StatusBadRequest
			resp.Error = "invalid todo id format"
		case internal.ErrorCodeInvalidArgument:
			status = http.StatusBadRequest
			resp.Validations = internal.ValidationErrors(err)
		default:
			resp.Error = "internal error"
		}
	}

	if err != nil {
		_, span := otel.Tracer(otelName).Start(ctx, "rest.renderErrorResponse")
		defer span.End()

		span.RecordError(err)
	}

	renderResponse(w, r, resp, status)
}

func renderResponse(w http.ResponseWriter, r *http.Request, res interface{}, status int) {
	render.Status(r, status)
	render.JSON(w, r, res)
}
