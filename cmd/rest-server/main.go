package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/didip/tollbooth/v6"
	"github.com/didip/tollbooth/v6/limiter"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riandyrn/otelchi"
	"go.uber.org/zap"

	"github.com/sanLimbu/todo-tracker/cmd/internal"
	internaldomain "github.com/sanLimbu/todo-tracker/internal"
	"github.com/sanLimbu/todo-tracker/internal/envvar"
	"github.com/sanLimbu/todo-tracker/internal/events"
	"github.com/sanLimbu/todo-tracker/internal/kafka"
	"github.com/sanLimbu/todo-tracker/internal/memcached"
	"github.com/sanLimbu/todo-tracker/internal/memory"
	"github.com/sanLimbu/todo-tracker/internal/postgresql"
	"github.com/sanLimbu/todo-tracker/internal/rabbitmq"
	"github.com/sanLimbu/todo-tracker/internal/redis"
	"github.com/sanLimbu/todo-tracker/internal/rest"
	"github.com/sanLimbu/todo-tracker/internal/seed"
	"github.com/sanLimbu/todo-tracker/internal/service"
)

func main() {
	var env, address string
	var seedEmpty bool

	flag.StringVar(&env, "env", "", "Environment Variables filename")
	flag.StringVar(&address, "address", ":9234", "HTTP Server Address")
	flag.BoolVar(&seedEmpty, "seed", false, "Insert sample todos when the store is empty")
	flag.Parse()

	errC, err := run(env, address, seedEmpty)
	if err != nil {
		log.Fatalf("Couldn't run: %s", err)
	}

	if err := <-errC; err != nil {
		log.Fatalf("Error while running: %s", err)
	}
}

func run(env, address string, seedEmpty bool) (<-chan error, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "zap.NewProduction")
	}

	if env != "" {
		if err := envvar.Load(env); err != nil {
			return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "envvar.Load")
		}
	}

	vault, err := internal.NewVaultProvider()
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewVaultProvider")
	}

	conf := envvar.New(vault)

	tp, err := internal.NewOTExporter(conf, "todo-tracker-rest-server")
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewOTExporter")
	}

	var closers []func()

	repo, closeRepo, err := newRepository(conf, logger)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "newRepository")
	}

	closers = append(closers, closeRepo)

	msgBroker, closeBroker, err := newMessageBroker(conf, logger)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "newMessageBroker")
	}

	closers = append(closers, closeBroker)

	svc := service.NewTodo(logger, repo, msgBroker)

	if seedEmpty {
		entries, err := seed.Default()
		if err != nil {
			return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "seed.Default")
		}

		n, err := seed.Apply(context.Background(), svc, entries)
		if err != nil {
			return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "seed.Apply")
		}

		logger.Info("Seeded", zap.Int("todos", n))
	}

	logging := func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Info(r.Method,
				zap.Time("time", time.Now()),
				zap.String("url", r.URL.String()),
			)

			h.ServeHTTP(w, r)
		})
	}

	srv := newServer(serverConfig{
		Address:     address,
		Service:     svc,
		Metrics:     promhttp.Handler(),
		Middlewares: []func(next http.Handler) http.Handler{otelchi.Middleware("todo-tracker-rest-server"), logging},
	})

	errC := make(chan error, 1)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT)

	go func() {
		<-ctx.Done()

		logger.Info("Shutdown signal received")

		ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)

		defer func() {
			_ = tp.Shutdown(context.Background())

			for _, fn := range closers {
				fn()
			}

			_ = logger.Sync()

			stop()
			cancel()
			close(errC)
		}()

		srv.SetKeepAlivesEnabled(false)

		if err := srv.Shutdown(ctxTimeout); err != nil {
			errC <- err
		}

		logger.Info("Shutdown completed")
	}()

	go func() {
		logger.Info("Listening and serving", zap.String("address", address))

		// "ListenAndServe always returns a non-nil error. After Shutdown or Close, the returned error is
		// ErrServerClosed."
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errC <- err
		}
	}()

	return errC, nil
}

// newRepository builds the store chain: PostgreSQL when DATABASE_NAME is set, memory otherwise, optionally
// decorated by memcached and Redis.
func newRepository(conf *envvar.Configuration, logger *zap.Logger) (service.TodoRepository, func(), error) {
	var (
		repo   service.TodoRepository
		closer = func() {}
	)

	dbName, err := conf.Get("DATABASE_NAME")
	if err != nil {
		return nil, nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "conf.Get DATABASE_NAME")
	}

	if dbName != "" {
		pool, err := internal.NewPostgreSQL(conf)
		if err != nil {
			return nil, nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewPostgreSQL")
		}

		repo = postgresql.NewTodo(pool)
		closer = pool.Close
	} else {
		logger.Info("DATABASE_NAME not set, using the in-memory store")

		repo = memory.NewTodo()
	}

	memcachedHost, err := conf.Get("MEMCACHED_HOST")
	if err != nil {
		return nil, nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "conf.Get MEMCACHED_HOST")
	}

	if memcachedHost != "" {
		mc, err := internal.NewMemcached(conf)
		if err != nil {
			return nil, nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewMemcached")
		}

		repo = memcached.NewTodo(mc, repo, logger)
	}

	redisHost, err := conf.Get("REDIS_HOST")
	if err != nil {
		return nil, nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "conf.Get REDIS_HOST")
	}

	if redisHost != "" {
		rdb, err := internal.NewRedis(conf)
		if err != nil {
			return nil, nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewRedis")
		}

		repo = redis.NewTodo(rdb, repo, logger, 5*time.Minute)

		prev := closer
		closer = func() {
			_ = rdb.Close()
			prev()
		}
	}

	return repo, closer, nil
}

// newMessageBroker instantiates the broker selected by MESSAGE_BROKER: "kafka", "rabbitmq" or "none".
func newMessageBroker(conf *envvar.Configuration, logger *zap.Logger) (service.TodoMessageBrokerRepository, func(), error) {
	broker, err := conf.GetDefault("MESSAGE_BROKER", "none")
	if err != nil {
		return nil, nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "conf.Get MESSAGE_BROKER")
	}

	switch broker {
	case "kafka":
		producer, err := internal.NewKafkaProducer(conf)
		if err != nil {
			return nil, nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewKafkaProducer")
		}

		closer := func() {
			producer.Producer.Flush(5000)
			producer.Producer.Close()
		}

		return events.NewBreaker(logger, kafka.NewTodo(producer.Producer, producer.Topic)), closer, nil
	case "rabbitmq":
		rmq, err := internal.NewRabbitMQ(conf)
		if err != nil {
			return nil, nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewRabbitMQ")
		}

		return events.NewBreaker(logger, rabbitmq.NewTodo(rmq.Channel)), rmq.Close, nil
	case "none":
		return events.Noop{}, func() {}, nil
	}

	return nil, nil, internaldomain.NewErrorf(internaldomain.ErrorCodeInvalidArgument, "unknown message broker %q", broker)
}

type serverConfig struct {
	Address     string
	Service     rest.TodoService
	Metrics     http.Handler
	Middlewares []func(next http.Handler) http.Handler
}

func newServer(conf serverConfig) *http.Server {
	router := chi.NewRouter()
	router.Use(render.SetContentType(render.ContentTypeJSON))

	for _, mw := range conf.Middlewares {
		router.Use(mw)
	}

	rest.RegisterOpenAPI(router)
	rest.NewTodoHandler(conf.Service).Register(router)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})

	router.Handle("/metrics", conf.Metrics)

	lmt := tollbooth.NewLimiter(3, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Second})
	lmtmw := tollbooth.LimitHandler(lmt, router)

	return &http.Server{
		Handler:           lmtmw,
		Addr:              conf.Address,
		ReadTimeout:       1 * time.Second,
		ReadHeaderTimeout: 1 * time.Second,
		WriteTimeout:      1 * time.Second,
		IdleTimeout:       1 * time.Second,
	}
}
