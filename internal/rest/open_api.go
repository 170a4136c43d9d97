package rest

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/ghodss/yaml"
	"github.com/go-chi/chi/v5"
)

//go:generate go run ../../cmd/openapi-gen/main.go -path .
//go:generate oapi-codegen -package client -generate client -o ../../pkg/client/client.gen.go     openapi3.yaml

// NewOpenAPI3 instantiates the OpenAPI specification for this service.
func NewOpenAPI3() openapi3.T {
	swagger := openapi3.T{
		OpenAPI: "3.0.0",
		Info: &openapi3.Info{
			Title:       "Todo Tracker API",
			Description: "REST APIs used for tracking todos",
			Version:     "0.0.0",
			License: &openapi3.License{
				Name: "MIT",
				URL:  "https://opensource.org/licenses/MIT",
			},
		},
		Servers: openapi3.Servers{
			&openapi3.Server{
				Description: "Local development",
				URL:         "http://127.0.0.1:9234",
			},
		},
	}

	swagger.Components.Schemas = openapi3.Schemas{
		"Priority": openapi3.NewSchemaRef("",
			openapi3.NewStringSchema().
				WithEnum("low", "medium", "high")),
		"Todo": openapi3.NewSchemaRef("",
			openapi3.NewObjectSchema().
				WithProperty("id", openapi3.NewUUIDSchema()).
				WithProperty("title", openapi3.NewStringSchema()).
				WithProperty("description", openapi3.NewStringSchema()).
				WithProperty("due_date", openapi3.NewDateTimeSchema().WithNullable()).
				WithPropertyRef("priority", &openapi3.SchemaRef{
					Ref: "#/components/schemas/Priority",
				}).
				WithProperty("is_completed", openapi3.NewBoolSchema()).
				WithProperty("created_at", openapi3.NewDateTimeSchema()).
				WithProperty("updated_at", openapi3.NewDateTimeSchema())),
		"Stats": openapi3.NewSchemaRef("",
			openapi3.NewObjectSchema().
				WithProperty("total", openapi3.NewIntegerSchema()).
				WithProperty("completed", openapi3.NewIntegerSchema()).
				WithProperty("pending", openapi3.NewIntegerSchema()).
				WithProperty("percent", openapi3.NewIntegerSchema())),
	}

	swagger.Components.RequestBodies = openapi3.RequestBodies{
		"CreateTodoRequest": &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithDescription("Request used for creating a todo.").
				WithRequired(true).
				WithJSONSchema(openapi3.NewObjectSchema().
					WithProperty("title", openapi3.NewStringSchema().WithMinLength(1)).
					WithProperty("description", openapi3.NewStringSchema()).
					WithProperty("due_date", openapi3.NewStringSchema().WithMinLength(1)).
					WithPropertyRef("priority", &openapi3.SchemaRef{
						Ref: "#/components/schemas/Priority",
					})),
		},
		"UpdateTodoRequest": &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithDescription("Request used for updating a todo, omitted fields are left untouched.").
				WithRequired(true).
				WithJSONSchema(openapi3.NewObjectSchema().
					WithProperty("title", openapi3.NewStringSchema().WithMinLength(1)).
					WithProperty("description", openapi3.NewStringSchema()).
					WithProperty("due_date", openapi3.NewStringSchema().WithMinLength(1)).
					WithPropertyRef("priority", &openapi3.SchemaRef{
						Ref: "#/components/schemas/Priority",
					}).
					WithProperty("is_completed", openapi3.NewBoolSchema())),
		},
	}

	todoResponse := func(description string) *openapi3.ResponseRef {
		return &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription(description).
				WithContent(openapi3.NewContentWithJSONSchemaRef(&openapi3.SchemaRef{
					Ref: "#/components/schemas/Todo",
				})),
		}
	}

	swagger.Components.Responses = openapi3.Responses{
		"ErrorResponse": &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("Response when errors happen.").
				WithContent(openapi3.NewContentWithJSONSchema(openapi3.NewObjectSchema().
					WithProperty("error", openapi3.NewStringSchema()).
					WithProperty("validations", openapi3.NewObjectSchema().
						WithAdditionalProperties(openapi3.NewStringSchema())))),
		},
		"TodoResponse": todoResponse("Response returning a todo."),
		"TodosResponse": &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("Response returning todos.").
				WithContent(openapi3.NewContentWithJSONSchema(&openapi3.Schema{
					Type: "array",
					Items: &openapi3.SchemaRef{
						Ref: "#/components/schemas/Todo",
					},
				})),
		},
	}

	errorResponse := &openapi3.ResponseRef{Ref: "#/components/responses/ErrorResponse"}
	todoResponseRef := &openapi3.ResponseRef{Ref: "#/components/responses/TodoResponse"}

	idParameter := openapi3.Parameters{
		{
			Value: openapi3.NewPathParameter("id").
				WithSchema(openapi3.NewUUIDSchema()),
		},
	}

	swagger.Paths = openapi3.Paths{
		"/api/todos": &openapi3.PathItem{
			Get: &openapi3.Operation{
				OperationID: "ListTodos",
				Parameters: openapi3.Parameters{
					{Value: openapi3.NewQueryParameter("status").
						WithSchema(openapi3.NewStringSchema().WithEnum("all", "pending", "completed"))},
					{Value: openapi3.NewQueryParameter("priority").
						WithSchema(openapi3.NewStringSchema().WithEnum("low", "medium", "high"))},
					{Value: openapi3.NewQueryParameter("q").
						WithSchema(openapi3.NewStringSchema())},
					{Value: openapi3.NewQueryParameter("sort").
						WithSchema(openapi3.NewStringSchema().WithEnum("dueDate", "priority", "createdAt"))},
					{Value: openapi3.NewQueryParameter("order").
						WithSchema(openapi3.NewStringSchema().WithEnum("asc", "desc"))},
				},
				Responses: openapi3.Responses{
					"200": &openapi3.ResponseRef{Ref: "#/components/responses/TodosResponse"},
					"400": errorResponse,
					"500": errorResponse,
				},
			},
			Post: &openapi3.Operation{
				OperationID: "CreateTodo",
				RequestBody: &openapi3.RequestBodyRef{
					Ref: "#/components/requestBodies/CreateTodoRequest",
				},
				Responses: openapi3.Responses{
					"201": todoResponseRef,
					"400": errorResponse,
					"500": errorResponse,
				},
			},
		},
		"/api/todos/stats": &openapi3.PathItem{
			Get: &openapi3.Operation{
				OperationID: "TodoStats",
				Responses: openapi3.Responses{
					"200": &openapi3.ResponseRef{
						Value: openapi3.NewResponse().
							WithDescription("Completion progress.").
							WithContent(openapi3.NewContentWithJSONSchemaRef(&openapi3.SchemaRef{
								Ref: "#/components/schemas/Stats",
							})),
					},
					"500": errorResponse,
				},
			},
		},
		"/api/todos/suggestions": &openapi3.PathItem{
			Get: &openapi3.Operation{
				OperationID: "TodoSuggestions",
				Parameters: openapi3.Parameters{
					{Value: openapi3.NewQueryParameter("q").
						WithSchema(openapi3.NewStringSchema())},
				},
				Responses: openapi3.Responses{
					"200": &openapi3.ResponseRef{
						Value: openapi3.NewResponse().
							WithDescription("Autocomplete entries.").
							WithContent(openapi3.NewContentWithJSONSchema(
								openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()))),
					},
					"500": errorResponse,
				},
			},
		},
		"/api/todos/{id}": &openapi3.PathItem{
			Get: &openapi3.Operation{
				OperationID: "ReadTodo",
				Parameters:  idParameter,
				Responses: openapi3.Responses{
					"200": todoResponseRef,
					"400": errorResponse,
					"404": errorResponse,
					"500": errorResponse,
				},
			},
			Put: &openapi3.Operation{
				OperationID: "UpdateTodo",
				Parameters:  idParameter,
				RequestBody: &openapi3.RequestBodyRef{
					Ref: "#/components/requestBodies/UpdateTodoRequest",
				},
				Responses: openapi3.Responses{
					"200": todoResponseRef,
					"400": errorResponse,
					"404": errorResponse,
					"500": errorResponse,
				},
			},
			Delete: &openapi3.Operation{
				OperationID: "DeleteTodo",
				Parameters:  idParameter,
				Responses: openapi3.Responses{
					"200": &openapi3.ResponseRef{
						Value: openapi3.NewResponse().
							WithDescription("Todo deleted.").
							WithContent(openapi3.NewContentWithJSONSchema(openapi3.NewObjectSchema().
								WithProperty("message", openapi3.NewStringSchema()))),
					},
					"400": errorResponse,
					"404": errorResponse,
					"500": errorResponse,
				},
			},
		},
		"/api/todos/{id}/toggle": &openapi3.PathItem{
			Put: &openapi3.Operation{
				OperationID: "ToggleTodo",
				Parameters:  idParameter,
				Responses: openapi3.Responses{
					"200": todoResponseRef,
					"400": errorResponse,
					"404": errorResponse,
					"500": errorResponse,
				},
			},
		},
	}

	return swagger
}

// RegisterOpenAPI serves the OpenAPI document as JSON and YAML.
func RegisterOpenAPI(r chi.Router) {
	swagger := NewOpenAPI3()

	r.Get("/openapi3.json", func(w http.ResponseWriter, r *http.Request) {
		renderResponse(w, r, &swagger, http.StatusOK)
	})

	r.Get("/openapi3.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-yaml")

		data, err := yaml.Marshal(&swagger)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)

		_, _ = w.Write(data)
	})
}
