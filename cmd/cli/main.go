package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/sanLimbu/todo-tracker/pkg/client"
)

func main() {
	var address, jaegerEndpoint string

	flag.StringVar(&address, "address", "http://127.0.0.1:9234", "REST server address")
	flag.StringVar(&jaegerEndpoint, "jaeger", "", "Jaeger collector endpoint, e.g. http://localhost:14268/api/traces")
	flag.Parse()

	tp := initTracer(jaegerEndpoint)
	defer func() {
		_ = tp.Shutdown(context.Background())
	}()

	clientOA3 := http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

	c, err := client.NewClientWithResponses(address, client.WithHTTPClient(&clientOA3))
	if err != nil {
		log.Fatalf("Couldn't instantiate client: %s", err)
	}

	newPtrStr := func(s string) *string {
		return &s
	}

	ctx := context.Background()

	// Create

	priority := client.Low

	respC, err := c.CreateTodoWithResponse(ctx,
		client.CreateTodoJSONRequestBody{
			Title:       newPtrStr("Sleep early"),
			Description: newPtrStr("Before 11pm"),
			DueDate:     newPtrStr(time.Now().Add(24 * time.Hour).Format("2006-01-02")),
			Priority:    &priority,
		})
	if err != nil {
		log.Fatalf("Couldn't create todo: %s", err)
	}

	if respC.JSON201 == nil {
		log.Fatalf("Couldn't create todo: %d %s", respC.StatusCode(), respC.Body)
	}

	id := *respC.JSON201.Id

	printTodo("New Todo", respC.JSON201)

	// Toggle

	if _, err := c.ToggleTodoWithResponse(ctx, id); err != nil {
		log.Fatalf("Couldn't toggle todo: %s", err)
	}

	// Update

	priority = client.High

	respU, err := c.UpdateTodoWithResponse(ctx, id,
		client.UpdateTodoJSONRequestBody{
			Description: newPtrStr("Before 10pm"),
			Priority:    &priority,
		})
	if err != nil {
		log.Fatalf("Couldn't update todo: %s", err)
	}

	if respU.JSON200 == nil {
		log.Fatalf("Couldn't update todo: %d %s", respU.StatusCode(), respU.Body)
	}

	// Read

	respR, err := c.ReadTodoWithResponse(ctx, id)
	if err != nil {
		log.Fatalf("Couldn't read todo: %s", err)
	}

	if respR.JSON200 == nil {
		log.Fatalf("Couldn't read todo: %d %s", respR.StatusCode(), respR.Body)
	}

	printTodo("Updated Todo", respR.JSON200)

	// Stats

	respS, err := c.TodoStatsWithResponse(ctx)
	if err != nil {
		log.Fatalf("Couldn't read stats: %s", err)
	}

	if respS.JSON200 != nil {
		fmt.Printf("Stats\n\tTotal: %d\n\tCompleted: %d\n\tPercent: %d%%\n",
			*respS.JSON200.Total, *respS.JSON200.Completed, *respS.JSON200.Percent)
	}
}

func printTodo(header string, todo *client.Todo) {
	fmt.Printf("%s\n\tID: %s\n", header, todo.Id)
	fmt.Printf("\tTitle: %s\n", *todo.Title)
	fmt.Printf("\tDescription: %s\n", *todo.Description)
	fmt.Printf("\tPriority: %s\n", *todo.Priority)

	if todo.DueDate != nil {
		fmt.Printf("\tDue: %s\n", todo.DueDate.Format(time.RFC3339))
	}

	fmt.Printf("\tCompleted: %t\n", *todo.IsCompleted)
}

// initTracer sends traces to stdout, and to Jaeger when an endpoint is given.
func initTracer(jaegerEndpoint string) *sdktrace.TracerProvider {
	stdoutExporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		log.Fatalf("Couldn't initialize stdout exporter: %s", err)
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(stdoutExporter),
	}

	if jaegerEndpoint != "" {
		jaegerExporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(jaegerEndpoint)))
		if err != nil {
			log.Fatalf("Couldn't initialize jaeger exporter: %s", err)
		}

		opts = append(opts, sdktrace.WithBatcher(jaegerExporter))
	}

	tp := sdktrace.NewTracerProvider(opts...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return tp
}
